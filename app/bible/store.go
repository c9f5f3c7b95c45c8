package bible

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// VerseStore looks up verses by exact book/chapter, inclusive verse range
// and translation set. The store is read-only at serving time; Add exists
// for the bulk loader.
type VerseStore interface {
	Query(ctx context.Context, req SearchRequest) ([]VerseRecord, error)
	Add(ctx context.Context, verses []VerseRecord) error
	Close() error
}

type SQLiteVerseStore struct {
	db *sql.DB
}

func NewSQLiteVerseStore(db *sql.DB) *SQLiteVerseStore {
	return &SQLiteVerseStore{db: db}
}

var _ VerseStore = &SQLiteVerseStore{}

func (s *SQLiteVerseStore) Init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS bible_search_bible (
			book_code TEXT,
			chapter INTEGER,
			verse INTEGER,
			translation TEXT,
			text TEXT,
			PRIMARY KEY (book_code, chapter, verse, translation)
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create bible_search_bible table: %w", err)
	}
	return nil
}

// Query binds every value as a parameter; the translation filter uses a
// dynamically sized placeholder list, never string concatenation of values.
func (s *SQLiteVerseStore) Query(ctx context.Context, req SearchRequest) ([]VerseRecord, error) {
	if s.db == nil {
		return nil, errors.New("verse database unavailable")
	}
	if len(req.Translations) == 0 {
		return nil, errors.New("empty translation list")
	}

	query := `
		SELECT book_code, chapter, verse, translation, text FROM bible_search_bible
		WHERE book_code = ? AND chapter = ? AND verse BETWEEN ? AND ?
		AND translation IN (?` + strings.Repeat(",?", len(req.Translations)-1) + `)
		ORDER BY translation, verse`

	params := make([]any, 0, 4+len(req.Translations))
	params = append(params, req.Book, req.Chapter, req.StartVerse, req.EndVerse)
	for _, tr := range req.Translations {
		params = append(params, tr)
	}

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("sqlite verse query failed: %w", err)
	}
	defer rows.Close()

	var verses []VerseRecord
	for rows.Next() {
		var v VerseRecord
		if err := rows.Scan(&v.BookCode, &v.Chapter, &v.Verse, &v.Translation, &v.Text); err != nil {
			return nil, err
		}
		verses = append(verses, v)
	}

	return verses, rows.Err()
}

// Add bulk-inserts verses inside a single transaction. Re-imported rows
// replace existing ones.
func (s *SQLiteVerseStore) Add(ctx context.Context, verses []VerseRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO bible_search_bible (book_code, chapter, verse, translation, text)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, v := range verses {
		if _, err := stmt.ExecContext(ctx, v.BookCode, v.Chapter, v.Verse, v.Translation, v.Text); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteVerseStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
