package domain

import (
	"strings"
	"time"
)

// FileField is an attribute of an indexed file a clause can test.
type FileField string

// Indexed fields.
const (
	// FieldName is the display name (file name without extension).
	FieldName FileField = "name"

	// FieldFileName is the full file name including extension.
	FieldFileName FileField = "filename"
)

// MatchOp is a string comparison used by a FileClause.
// All comparisons are case-insensitive.
type MatchOp string

// Supported comparisons.
const (
	OpEquals   MatchOp = "equals"
	OpPrefix   MatchOp = "prefix"
	OpContains MatchOp = "contains"
)

// ContentTypeApplication marks application bundles and launcher entries in the file index.
const ContentTypeApplication = "application"

// FileClause is one comparison of a FileQuery.
type FileClause struct {
	Field FileField
	Op    MatchOp
	Value string
}

// FileQuery is a disjunctive predicate over the file index.
// A file matches when any clause matches and its content type is not excluded.
type FileQuery struct {
	// AnyOf lists the alternative clauses.
	AnyOf []FileClause

	// ExcludeContentTypes lists content types never returned.
	ExcludeContentTypes []string
}

// Matches reports whether e satisfies the clause.
func (c FileClause) Matches(e FileEntry) bool {
	var field string
	switch c.Field {
	case FieldName:
		field = e.Name
	case FieldFileName:
		field = e.FileName
	default:
		return false
	}
	field, value := strings.ToLower(field), strings.ToLower(c.Value)
	switch c.Op {
	case OpEquals:
		return field == value
	case OpPrefix:
		return strings.HasPrefix(field, value)
	case OpContains:
		return strings.Contains(field, value)
	}
	return false
}

// Matches reports whether e satisfies the query.
func (q FileQuery) Matches(e FileEntry) bool {
	for _, ct := range q.ExcludeContentTypes {
		if strings.EqualFold(ct, e.ContentType) {
			return false
		}
	}
	for _, c := range q.AnyOf {
		if c.Matches(e) {
			return true
		}
	}
	return false
}

// FileEntry is one row of the file index.
type FileEntry struct {
	// Path is the absolute filesystem path.
	Path string

	// Name is the display name.
	Name string

	// FileName is the base name including extension.
	FileName string

	// ContentType is a coarse type tag (application, folder, document, file).
	ContentType string

	// LastUsed is the last access or modification time, if known.
	LastUsed *time.Time
}

// ChangeKind describes what happened to a watched path.
type ChangeKind string

// Change kinds.
const (
	ChangeUpsert ChangeKind = "upsert"
	ChangeRemove ChangeKind = "remove"
)

// FileChange is one coalesced filesystem event.
type FileChange struct {
	// Kind tells whether the path was created or modified, or removed.
	Kind ChangeKind

	// Entry describes the path. Only Path is set for removals.
	Entry FileEntry
}
