package bible

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

const loadBatchSize = 500

// LoadCSV imports verses from a CSV file with columns
// book_code,chapter,verse,translation,text into the store, creating the
// verse table if needed. A header row is skipped when present. Returns the
// number of imported rows.
func LoadCSV(ctx context.Context, store *SQLiteVerseStore, csvPath string) (int, error) {
	if err := store.Init(); err != nil {
		return 0, err
	}

	f, err := os.Open(csvPath)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 5

	var batch []VerseRecord
	total := 0
	line := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return total, fmt.Errorf("failed to read csv: %w", err)
		}
		line++

		if line == 1 && record[0] == "book_code" {
			continue
		}

		v, err := parseVerseRow(record)
		if err != nil {
			return total, fmt.Errorf("line %d: %w", line, err)
		}
		batch = append(batch, v)

		if len(batch) >= loadBatchSize {
			if err := store.Add(ctx, batch); err != nil {
				return total, err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := store.Add(ctx, batch); err != nil {
			return total, err
		}
		total += len(batch)
	}

	return total, nil
}

func parseVerseRow(record []string) (VerseRecord, error) {
	chapter, err := strconv.Atoi(record[1])
	if err != nil {
		return VerseRecord{}, fmt.Errorf("bad chapter %q: %w", record[1], err)
	}
	verse, err := strconv.Atoi(record[2])
	if err != nil {
		return VerseRecord{}, fmt.Errorf("bad verse %q: %w", record[2], err)
	}
	return VerseRecord{
		BookCode:    record[0],
		Chapter:     chapter,
		Verse:       verse,
		Translation: record[3],
		Text:        record[4],
	}, nil
}
