package bible

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hoklam-ng/proclaim/app/common"
	"github.com/hoklam-ng/proclaim/app/sermon"
	"github.com/patrickmn/go-cache"
)

// Publisher pushes state changes to connected viewer sessions.
type Publisher interface {
	Publish(name string, data any)
}

// Service is the verse query service. It resolves a SearchRequest against
// the store, shapes the result with the current sermon meta and display
// book name, and broadcasts it before returning.
type Service struct {
	store  VerseStore
	holder *sermon.Holder
	hub    Publisher

	// verse text is immutable at serving time, so a short TTL cache on the
	// raw store rows is safe
	results *cache.Cache
}

func NewService(store VerseStore, holder *sermon.Holder, hub Publisher) *Service {
	return &Service{
		store:   store,
		holder:  holder,
		hub:     hub,
		results: cache.New(30*time.Second, time.Minute),
	}
}

func cacheKey(req SearchRequest) string {
	return fmt.Sprintf("%s:%d:%d:%d:%s",
		req.Book, req.Chapter, req.StartVerse, req.EndVerse,
		strings.Join(req.Translations, ","))
}

// Search returns the verses matching req, sorted by (translation, verse).
// On success the full result is also published to every viewer session; the
// caller and the viewers receive identical payloads. Any store failure
// surfaces as a generic lookup error with no partial result.
func (s *Service) Search(ctx context.Context, req SearchRequest) (SearchResult, error) {
	var verses []VerseRecord

	key := cacheKey(req)
	if cached, found := s.results.Get(key); found {
		verses = cached.([]VerseRecord)
	} else {
		var err error
		verses, err = s.store.Query(ctx, req)
		if err != nil {
			slog.Error("verse store query failed", "book", req.Book, "chapter", req.Chapter, "err", err)
			return SearchResult{}, common.NewLookupFailedError()
		}
		s.results.Set(key, verses, cache.DefaultExpiration)
	}

	// display clients iterate verses, so it must serialize as [] not null
	if verses == nil {
		verses = []VerseRecord{}
	}

	result := SearchResult{
		Verses:     verses,
		SermonMeta: s.holder.Get(),
		BookName:   BookName(req.Book),
	}

	s.hub.Publish("bible-results", result)
	return result, nil
}
