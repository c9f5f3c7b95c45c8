package bible

import "github.com/hoklam-ng/proclaim/app/sermon"

// VerseRecord is one row of the verse table. Identity is
// (book_code, chapter, verse, translation): the same chapter/verse pair may
// appear once per translation.
type VerseRecord struct {
	BookCode    string `json:"book_code"`
	Chapter     int    `json:"chapter"`
	Verse       int    `json:"verse"`
	Translation string `json:"translation"`
	Text        string `json:"text"`
}

// SearchRequest is the operator's verse query. StartVerse/EndVerse are an
// inclusive range. Translations is ordered and expected non-empty; the
// request is passed to the store without further validation.
type SearchRequest struct {
	Book         string   `json:"book"`
	Chapter      int      `json:"chapter"`
	StartVerse   int      `json:"startVerse"`
	EndVerse     int      `json:"endVerse"`
	Translations []string `json:"translations"`
}

// SearchResult is returned to the operator and broadcast verbatim to every
// viewer session. Verses are sorted by (translation, verse) ascending.
type SearchResult struct {
	Verses     []VerseRecord `json:"verses"`
	SermonMeta sermon.Meta   `json:"sermonMeta"`
	BookName   string        `json:"bookName"`
}
