// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-tracker tool.
// See docs/ARCHITECTURE.md § Data Structures.
package types

// LinkKind records which source produced an entry's display link.
type LinkKind string

const (
	// KindDOI means the link was built from a DOI via the doi.org resolver.
	KindDOI LinkKind = "doi"

	// KindURL means the link is the entry's own URL, normalized.
	KindURL LinkKind = "url"

	// KindSearch means the link is a search-engine query built from the title.
	KindSearch LinkKind = "search"

	// KindNone means no usable link could be derived.
	KindNone LinkKind = "none"
)

// Status classifies an entry against the two progress sets.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Entry is one row of an uploaded bibliography table.
type Entry struct {
	// Key is the unique identifier for the entry (source column "Bib Key").
	// Rows without a key are rejected at load time.
	Key string `json:"key" yaml:"key"`

	// Title is the optional display title.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// DOI is the persistent-identifier suffix (e.g. "10.1145/3534678.3539081").
	// It may come from the source DOI column or be recovered from a
	// doi.org-hosted URL.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// URL is the direct or fallback link from the source table.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Link is the derived link presented to the user, computed once at load.
	Link string `json:"link,omitempty" yaml:"link,omitempty"`

	// LinkKind records which source produced Link.
	LinkKind LinkKind `json:"link_kind" yaml:"link_kind"`

	// Fields preserves the raw source columns so results export can write
	// the original table back out.
	Fields map[string]string `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Filename returns the expected on-disk name for the entry's PDF.
func (e Entry) Filename() string {
	return e.Key + ".pdf"
}

// Table is an ordered sequence of entries in source row order. It is
// replaced wholesale on each new load; progress sets persist independently.
type Table struct {
	// Columns lists the source header names in order.
	Columns []string `json:"columns" yaml:"columns"`

	// Entries holds the rows that survived loading.
	Entries []Entry `json:"entries" yaml:"entries"`
}

// Lookup returns the first entry with the given key.
func (t *Table) Lookup(key string) (Entry, bool) {
	for _, e := range t.Entries {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}

// Keys returns all entry keys in table order.
func (t *Table) Keys() []string {
	keys := make([]string, len(t.Entries))
	for i, e := range t.Entries {
		keys[i] = e.Key
	}
	return keys
}

// ProgressSnapshot is a derived view of the progress sets against a table.
// It is recomputed on demand and never stored, so it cannot go stale.
type ProgressSnapshot struct {
	Total            int     `json:"total" yaml:"total"`
	Completed        int     `json:"completed" yaml:"completed"`
	Failed           int     `json:"failed" yaml:"failed"`
	Pending          int     `json:"pending" yaml:"pending"`
	PercentProcessed float64 `json:"percent_processed" yaml:"percent_processed"`
}

// Done reports whether every entry has been processed.
func (p ProgressSnapshot) Done() bool {
	return p.Total > 0 && p.Pending == 0
}
