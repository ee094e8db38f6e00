package entity

import (
	"time"
)

// SummaryMaxRunes is the length of a summary derived from the post body.
// The cut is a plain character slice, not word-aware.
const SummaryMaxRunes = 100

// Post is a published text entry. Author is a non-owning reference to the
// User who created it; AuthorName carries the display name when the record
// was loaded with a join. ID and CreatedAt are assigned by the store at
// persistence time and never change afterwards.
type Post struct {
	ID         int64
	Title      string
	Summary    string
	Content    string
	AuthorID   int64
	AuthorName string
	CreatedAt  time.Time
}

// EnsureSummary fills Summary from the first SummaryMaxRunes characters of
// Content when the caller supplied none. A non-empty summary is kept as-is.
// After this call Summary is never empty for a post with content.
func (p *Post) EnsureSummary() {
	if p.Summary != "" {
		return
	}
	r := []rune(p.Content)
	if len(r) <= SummaryMaxRunes {
		p.Summary = p.Content
		return
	}
	p.Summary = string(r[:SummaryMaxRunes])
}
