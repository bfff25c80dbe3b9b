package db

import "time"

// Entry is one headword of the lexicon.
type Entry struct {
	Word       string
	Definition string
}

// Import records a lexicon file loaded into the database and how far it got.
type Import struct {
	ID            int64
	Path          string
	EntryCount    int
	LastProcessed int
	ImportedAt    time.Time
	Completed     bool
}
