package announcements

import (
	"bytes"
	"log/slog"
	"time"

	"github.com/yuin/goldmark"
)

// Announcement is one item of the weekly announcement list. Content is
// authored as markdown; ContentHTML carries the rendered form the display
// page shows.
type Announcement struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	ContentHTML string `json:"contentHtml"`
	Date        string `json:"date"`
}

// Publisher pushes state changes to connected viewer sessions.
type Publisher interface {
	Publish(name string, data any)
}

type Service struct {
	hub Publisher
	md  goldmark.Markdown
	now func() time.Time
}

func NewService(hub Publisher) *Service {
	return &Service{
		hub: hub,
		md:  goldmark.New(),
		now: time.Now,
	}
}

// The announcement texts are fixed until a real data source (church office
// spreadsheet) is hooked up.
var fixedItems = []struct {
	title   string
	content string
}{
	{
		"Welcome to Sunday Service",
		"We are glad you are here today. Please join us for *fellowship* after the service.",
	},
	{
		"Prayer Meeting",
		"Join us every **Wednesday at 7 PM** for our weekly prayer meeting.",
	},
	{
		"Youth Group",
		"Youth group meets every Friday at 6 PM. All teenagers welcome!",
	},
}

// List returns the announcement list, dated at call time, and broadcasts it
// to all viewer sessions.
func (s *Service) List() []Announcement {
	date := s.now().Format("1/2/2006")

	items := make([]Announcement, 0, len(fixedItems))
	for _, it := range fixedItems {
		items = append(items, Announcement{
			Title:       it.title,
			Content:     it.content,
			ContentHTML: s.render(it.content),
			Date:        date,
		})
	}

	s.hub.Publish("announcements-updated", items)
	return items
}

func (s *Service) render(markdown string) string {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(markdown), &buf); err != nil {
		slog.Warn("failed to render announcement markdown", "err", err)
		return markdown
	}
	return buf.String()
}
