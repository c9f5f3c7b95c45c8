// Package hymn serves hymn lookups for the control panel. There is no hymn
// database yet: Search returns a fixed placeholder payload shaped like a
// real result, so the display side can be built against it.
package hymn

// Request is the operator's hymn lookup: free-text query and/or hymn number.
type Request struct {
	Query  string `json:"query"`
	Number string `json:"number"`
}

// Result is the payload returned to the operator and broadcast to viewers.
type Result struct {
	Number string   `json:"number"`
	Title  string   `json:"title"`
	Verses []string `json:"verses"`
}

const defaultNumber = "324"

var cannedVerses = []string{
	"Amazing grace! How sweet the sound That saved a wretch like me!",
	"I once was lost, but now am found; Was blind, but now I see.",
	"'Twas grace that taught my heart to fear, And grace my fears relieved;",
	"How precious did that grace appear The hour I first believed!",
}

// Publisher pushes state changes to connected viewer sessions.
type Publisher interface {
	Publish(name string, data any)
}

type Service struct {
	hub Publisher
}

func NewService(hub Publisher) *Service {
	return &Service{hub: hub}
}

// Search returns the canned result. The query text is echoed into the title
// and the number defaults when empty; no actual search happens. The result
// is broadcast to all viewers before returning.
func (s *Service) Search(req Request) Result {
	result := Result{
		Number: req.Number,
		Title:  req.Query,
		Verses: cannedVerses,
	}
	if result.Number == "" {
		result.Number = defaultNumber
	}
	if result.Title == "" {
		result.Title = "Amazing Grace"
	}

	s.hub.Publish("hymn-results", result)
	return result
}
