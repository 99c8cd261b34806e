package domain

// ID identifies an entity. Its format is owned by the backend that assigned
// it: relational stores use decimal integers, the document store uses hex
// ObjectIDs. An ID that a backend cannot parse never matches an entity.
type ID string

// String returns the raw identifier.
func (id ID) String() string { return string(id) }

// IsZero reports whether the id is empty.
func (id ID) IsZero() bool { return id == "" }

// Dictionary is the root of the hierarchy.
type Dictionary struct {
	ID   ID
	Name string
}

// Wordlist belongs to exactly one Dictionary.
type Wordlist struct {
	ID     ID
	Name   string
	DictID ID
}

// WordlistRow is a phrase with its meaning, belonging to exactly one Wordlist.
type WordlistRow struct {
	ID         ID
	Phrase     string
	Meaning    string
	WordlistID ID
}

// MaxNameLength bounds dictionary and wordlist names.
const MaxNameLength = 30
