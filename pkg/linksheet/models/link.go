// Package models defines the data structures shared by the link sheet packages.
package models

import "time"

// Link is a shortened link as listed by the shortening provider.
type Link struct {
	// ID is the provider identifier of the link (e.g., "bit.ly/3xYzAbC").
	ID string `json:"id"`
	// ShortURL is the full short URL handed out to readers.
	ShortURL string `json:"link"`
	// LongURL is the destination the short URL redirects to.
	LongURL string `json:"long_url"`
	// CreatedAt is the creation time reported by the provider.
	CreatedAt time.Time `json:"created_at"`
}

// LinkRecord is one row of the link directory. It is rebuilt from the
// provider's current state on every sync and never mutated afterwards.
type LinkRecord struct {
	// Title is the resolved display title (nil if none could be found).
	Title *string `json:"title"`
	// Comment is owned by the sheet user and never produced by a sync.
	Comment *string `json:"comment"`
	// ClickCount is the all-time click count.
	ClickCount int64 `json:"counts"`
	// LongURL is the destination URL.
	LongURL string `json:"long"`
	// ShortID identifies the short link.
	ShortID string `json:"short"`
}

// Row returns the record as a positional table row.
func (r LinkRecord) Row() Row {
	return Row{optional(r.Title), optional(r.Comment), r.ClickCount, r.LongURL, r.ShortID}
}

func optional(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
