package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/launchpad/internal/core/domain"
	"github.com/custodia-labs/launchpad/internal/core/ports/driven"
)

// fileIndex implements driven.FileIndex.
type fileIndex struct {
	store *Store
}

var _ driven.FileIndex = (*fileIndex)(nil)

// likeEscaper escapes LIKE wildcards; patterns use ESCAPE '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// StartFileQuery runs q against the files table and streams matching rows.
// The error, if any, is sent before the entry channel closes.
func (f *fileIndex) StartFileQuery(ctx context.Context, q domain.FileQuery) (<-chan domain.FileEntry, <-chan error) {
	out := make(chan domain.FileEntry)
	errs := make(chan error, 1)

	go func() {
		defer close(out)

		query, args, err := buildFileQuery(q)
		if err != nil {
			errs <- err
			return
		}
		if query == "" {
			return
		}

		rows, err := f.store.db.QueryContext(ctx, query, args...)
		if err != nil {
			errs <- fmt.Errorf("querying files: %w", err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			entry, err := scanFileEntry(rows)
			if err != nil {
				errs <- err
				return
			}
			select {
			case out <- entry:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
		}
		if err := rows.Err(); err != nil {
			errs <- fmt.Errorf("iterating files: %w", err)
		}
	}()

	return out, errs
}

// Upsert adds or replaces entries keyed by path in one transaction.
func (f *fileIndex) Upsert(ctx context.Context, entries ...domain.FileEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := f.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO files (path, name, filename, name_lower, filename_lower, content_type, last_used)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			name = excluded.name,
			filename = excluded.filename,
			name_lower = excluded.name_lower,
			filename_lower = excluded.filename_lower,
			content_type = excluded.content_type,
			last_used = excluded.last_used
	`)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if e.Path == "" {
			return fmt.Errorf("%w: file entry without path", domain.ErrInvalidInput)
		}
		fileName := e.FileName
		if fileName == "" {
			fileName = filepath.Base(e.Path)
		}
		name := e.Name
		if name == "" {
			name = strings.TrimSuffix(fileName, filepath.Ext(fileName))
		}
		if _, err := stmt.ExecContext(ctx, e.Path, name, fileName,
			strings.ToLower(name), strings.ToLower(fileName),
			e.ContentType, nullableUnix(e.LastUsed)); err != nil {
			return fmt.Errorf("upserting %s: %w", e.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing upsert: %w", err)
	}
	return nil
}

// Remove deletes the entry for path and every entry below it.
func (f *fileIndex) Remove(ctx context.Context, path string) error {
	path = filepath.Clean(path)
	prefix := path
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}

	_, err := f.store.db.ExecContext(ctx,
		`DELETE FROM files WHERE path = ? OR path LIKE ? ESCAPE '\'`,
		path, likeEscaper.Replace(prefix)+"%")
	if err != nil {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

// Count returns the number of indexed entries.
func (f *fileIndex) Count(ctx context.Context) (int, error) {
	var n int
	if err := f.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM files").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting files: %w", err)
	}
	return n, nil
}

// Close closes the underlying store.
func (f *fileIndex) Close() error {
	return f.store.Close()
}

// buildFileQuery translates a predicate into SQL over the lowercased columns.
// A query without clauses matches nothing and yields an empty statement.
func buildFileQuery(q domain.FileQuery) (string, []any, error) {
	if len(q.AnyOf) == 0 {
		return "", nil, nil
	}

	var (
		ors  []string
		args []any
	)
	for _, c := range q.AnyOf {
		var column string
		switch c.Field {
		case domain.FieldName:
			column = "name_lower"
		case domain.FieldFileName:
			column = "filename_lower"
		default:
			return "", nil, fmt.Errorf("%w: file field %q", domain.ErrInvalidInput, c.Field)
		}

		value := strings.ToLower(c.Value)
		switch c.Op {
		case domain.OpEquals:
			ors = append(ors, column+" = ?")
			args = append(args, value)
		case domain.OpPrefix:
			ors = append(ors, column+` LIKE ? ESCAPE '\'`)
			args = append(args, likeEscaper.Replace(value)+"%")
		case domain.OpContains:
			ors = append(ors, column+` LIKE ? ESCAPE '\'`)
			args = append(args, "%"+likeEscaper.Replace(value)+"%")
		default:
			return "", nil, fmt.Errorf("%w: match op %q", domain.ErrInvalidInput, c.Op)
		}
	}

	var sb strings.Builder
	sb.WriteString("SELECT path, name, filename, content_type, last_used FROM files WHERE (")
	sb.WriteString(strings.Join(ors, " OR "))
	sb.WriteString(")")

	if n := len(q.ExcludeContentTypes); n > 0 {
		sb.WriteString(" AND lower(content_type) NOT IN (")
		sb.WriteString(strings.TrimSuffix(strings.Repeat("?, ", n), ", "))
		sb.WriteString(")")
		for _, ct := range q.ExcludeContentTypes {
			args = append(args, strings.ToLower(ct))
		}
	}
	sb.WriteString(" ORDER BY last_used IS NULL, last_used DESC")

	return sb.String(), args, nil
}

func scanFileEntry(rows *sql.Rows) (domain.FileEntry, error) {
	var e domain.FileEntry
	var lastUsed sql.NullInt64
	if err := rows.Scan(&e.Path, &e.Name, &e.FileName, &e.ContentType, &lastUsed); err != nil {
		return domain.FileEntry{}, fmt.Errorf("scanning file entry: %w", err)
	}
	if lastUsed.Valid {
		t := time.Unix(0, lastUsed.Int64)
		e.LastUsed = &t
	}
	return e, nil
}

// nullableUnix stores a time as Unix nanoseconds, or NULL.
func nullableUnix(t *time.Time) any {
	if t == nil || t.IsZero() {
		return nil
	}
	return t.UnixNano()
}
