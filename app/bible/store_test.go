package bible

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteVerseStore {
	t.Helper()
	db, err := NewSQLiteDB(filepath.Join(t.TempDir(), "verses.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := NewSQLiteVerseStore(db)
	require.NoError(t, store.Init())
	return store
}

func genesisFixture() []VerseRecord {
	return []VerseRecord{
		{BookCode: "GEN", Chapter: 1, Verse: 1, Translation: "KJV", Text: "In the beginning God created the heaven and the earth."},
		{BookCode: "GEN", Chapter: 1, Verse: 2, Translation: "KJV", Text: "And the earth was without form, and void."},
		{BookCode: "GEN", Chapter: 1, Verse: 3, Translation: "KJV", Text: "And God said, Let there be light: and there was light."},
		{BookCode: "GEN", Chapter: 1, Verse: 4, Translation: "KJV", Text: "And God saw the light, that it was good."},
		{BookCode: "GEN", Chapter: 1, Verse: 5, Translation: "KJV", Text: "And God called the light Day."},
	}
}

func TestSQLiteVerseStore_QueryRange(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Add(ctx, genesisFixture()))

	verses, err := store.Query(ctx, SearchRequest{
		Book:         "GEN",
		Chapter:      1,
		StartVerse:   1,
		EndVerse:     3,
		Translations: []string{"KJV"},
	})

	require.NoError(t, err)
	require.Len(t, verses, 3)
	for i, v := range verses {
		assert.Equal(t, "GEN", v.BookCode)
		assert.Equal(t, 1, v.Chapter)
		assert.Equal(t, i+1, v.Verse)
		assert.Equal(t, "KJV", v.Translation)
	}
}

func TestSQLiteVerseStore_QueryOrdersByTranslationThenVerse(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	fixture := []VerseRecord{
		{BookCode: "JHN", Chapter: 3, Verse: 17, Translation: "KJV", Text: "k17"},
		{BookCode: "JHN", Chapter: 3, Verse: 16, Translation: "KJV", Text: "k16"},
		{BookCode: "JHN", Chapter: 3, Verse: 16, Translation: "CUV", Text: "c16"},
		{BookCode: "JHN", Chapter: 3, Verse: 17, Translation: "CUV", Text: "c17"},
	}
	require.NoError(t, store.Add(ctx, fixture))

	verses, err := store.Query(ctx, SearchRequest{
		Book:         "JHN",
		Chapter:      3,
		StartVerse:   16,
		EndVerse:     17,
		Translations: []string{"KJV", "CUV"},
	})

	require.NoError(t, err)
	require.Len(t, verses, 4)
	assert.Equal(t, []string{"c16", "c17", "k16", "k17"}, []string{
		verses[0].Text, verses[1].Text, verses[2].Text, verses[3].Text,
	})
}

func TestSQLiteVerseStore_QueryFiltersTranslations(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	fixture := append(genesisFixture(), VerseRecord{
		BookCode: "GEN", Chapter: 1, Verse: 1, Translation: "CUV", Text: "起初神創造天地。",
	})
	require.NoError(t, store.Add(ctx, fixture))

	verses, err := store.Query(ctx, SearchRequest{
		Book: "GEN", Chapter: 1, StartVerse: 1, EndVerse: 1,
		Translations: []string{"CUV"},
	})

	require.NoError(t, err)
	require.Len(t, verses, 1)
	assert.Equal(t, "起初神創造天地。", verses[0].Text)
}

func TestSQLiteVerseStore_QueryUnknownBookReturnsEmpty(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Add(ctx, genesisFixture()))

	verses, err := store.Query(ctx, SearchRequest{
		Book: "ZZZ", Chapter: 1, StartVerse: 1, EndVerse: 10,
		Translations: []string{"KJV"},
	})

	require.NoError(t, err)
	assert.Empty(t, verses)
}

func TestSQLiteVerseStore_QueryEmptyTranslationsFails(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Query(context.Background(), SearchRequest{
		Book: "GEN", Chapter: 1, StartVerse: 1, EndVerse: 3,
	})

	assert.Error(t, err)
}

func TestSQLiteVerseStore_AddReplacesExistingRows(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Add(ctx, genesisFixture()))
	require.NoError(t, store.Add(ctx, []VerseRecord{
		{BookCode: "GEN", Chapter: 1, Verse: 1, Translation: "KJV", Text: "revised"},
	}))

	verses, err := store.Query(ctx, SearchRequest{
		Book: "GEN", Chapter: 1, StartVerse: 1, EndVerse: 1,
		Translations: []string{"KJV"},
	})

	require.NoError(t, err)
	require.Len(t, verses, 1)
	assert.Equal(t, "revised", verses[0].Text)
}
