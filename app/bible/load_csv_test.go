package bible

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCSV_ImportsRows(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "verses.csv")
	content := "book_code,chapter,verse,translation,text\n" +
		"GEN,1,1,KJV,In the beginning God created the heaven and the earth.\n" +
		"GEN,1,2,KJV,And the earth was without form.\n" +
		"PSA,23,1,CUV,耶和華是我的牧者，我必不致缺乏。\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(content), 0o644))

	store := newTestStore(t)
	n, err := LoadCSV(context.Background(), store, csvPath)

	require.NoError(t, err)
	assert.Equal(t, 3, n)

	verses, err := store.Query(context.Background(), SearchRequest{
		Book: "PSA", Chapter: 23, StartVerse: 1, EndVerse: 1,
		Translations: []string{"CUV"},
	})
	require.NoError(t, err)
	require.Len(t, verses, 1)
	assert.Equal(t, "耶和華是我的牧者，我必不致缺乏。", verses[0].Text)
}

func TestLoadCSV_RejectsBadRows(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "verses.csv")
	require.NoError(t, os.WriteFile(csvPath,
		[]byte("GEN,one,1,KJV,text\n"), 0o644))

	store := newTestStore(t)
	_, err := LoadCSV(context.Background(), store, csvPath)
	assert.ErrorContains(t, err, "bad chapter")
}

func TestBookName(t *testing.T) {
	testCases := []struct {
		code string
		want string
	}{
		{"GEN", "創世記"},
		{"REV", "啟示錄"},
		{"ZZZ", "ZZZ"},
		{"", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.code, func(t *testing.T) {
			assert.Equal(t, tc.want, BookName(tc.code))
		})
	}
}
