package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/SBleeyouk/deepfake-daily/internal/entry"
	"github.com/SBleeyouk/deepfake-daily/pkg/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS entries (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    category TEXT NOT NULL,
    tags TEXT NOT NULL DEFAULT '[]',
    comments TEXT NOT NULL DEFAULT '',
    attachment_url TEXT NOT NULL DEFAULT '',
    attachment_file TEXT NOT NULL DEFAULT '',
    thumbnail_url TEXT NOT NULL DEFAULT '',
    submitted_by TEXT NOT NULL DEFAULT '',
    related_ids TEXT NOT NULL DEFAULT '[]',
    time_added INTEGER NOT NULL,
    time_occurred INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_entries_category ON entries(category);
CREATE INDEX IF NOT EXISTS idx_entries_time_added ON entries(time_added);
`

// SQLiteStore is the default record store backend.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if necessary initializes) the database at path.
// Use ":memory:" for an ephemeral store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.NewStoreConnectionFailed("sqlite", err)
	}
	// modernc.org/sqlite serializes writes itself but a single connection
	// avoids SQLITE_BUSY on concurrent request handlers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.NewStoreQueryFailed("init schema", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const entryColumns = `id, title, category, tags, comments, attachment_url,
	attachment_file, thumbnail_url, submitted_by, related_ids, time_added, time_occurred`

func scanEntry(row interface{ Scan(...any) error }) (*entry.Entry, error) {
	var e entry.Entry
	var tagsJSON, relatedJSON string
	var added, occurred int64

	err := row.Scan(&e.ID, &e.Title, &e.Category, &tagsJSON, &e.Comments,
		&e.AttachmentURL, &e.AttachmentFile, &e.ThumbnailURL, &e.SubmittedBy,
		&relatedJSON, &added, &occurred)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(tagsJSON), &e.Tags); err != nil {
		e.Tags = nil
	}
	if err := json.Unmarshal([]byte(relatedJSON), &e.RelatedIDs); err != nil {
		e.RelatedIDs = nil
	}
	e.TimeAdded = time.UnixMilli(added).UTC()
	if occurred > 0 {
		e.TimeOccurred = time.UnixMilli(occurred).UTC()
	}
	return &e, nil
}

// List returns entries matching f, newest first.
func (s *SQLiteStore) List(ctx context.Context, f Filters) ([]entry.Entry, error) {
	query := "SELECT " + entryColumns + " FROM entries"
	var args []any
	if f.Category != "" {
		query += " WHERE category = ?"
		args = append(args, string(f.Category))
	}
	query += " ORDER BY time_added DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewStoreQueryFailed("list entries", err)
	}
	defer rows.Close()

	var entries []entry.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, errors.NewStoreQueryFailed("scan entry", err)
		}
		// Tags live in a JSON column, so tag filtering happens here rather
		// than in SQL.
		if !matchesTag(e.Tags, f.Tag) {
			continue
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreQueryFailed("list entries", err)
	}
	return entries, nil
}

// Get returns a single entry by id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*entry.Entry, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+entryColumns+" FROM entries WHERE id = ?", id)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewEntryNotFound(id)
	}
	if err != nil {
		return nil, errors.NewStoreQueryFailed("get entry", err)
	}
	return e, nil
}

// Create inserts a new entry, assigning its id and TimeAdded.
func (s *SQLiteStore) Create(ctx context.Context, in entry.CreateInput) (*entry.Entry, error) {
	e := entry.Entry{
		ID:             uuid.NewString(),
		Title:          in.Title,
		Category:       in.Category,
		Tags:           in.Tags,
		Comments:       in.Comments,
		AttachmentURL:  in.AttachmentURL,
		AttachmentFile: in.AttachmentFile,
		ThumbnailURL:   in.ThumbnailURL,
		TimeAdded:      time.Now().UTC(),
		TimeOccurred:   in.TimeOccurred,
		SubmittedBy:    in.SubmittedBy,
		RelatedIDs:     in.RelatedIDs,
	}
	if e.Title == "" {
		e.Title = "Untitled"
	}

	if err := s.insert(ctx, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *SQLiteStore) insert(ctx context.Context, e *entry.Entry) error {
	tagsJSON := marshalList(e.Tags)
	relatedJSON := marshalList(e.RelatedIDs)

	var occurred int64
	if !e.TimeOccurred.IsZero() {
		occurred = e.TimeOccurred.UnixMilli()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (id, title, category, tags, comments, attachment_url,
			attachment_file, thumbnail_url, submitted_by, related_ids, time_added, time_occurred)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Title, string(e.Category), tagsJSON, e.Comments, e.AttachmentURL,
		e.AttachmentFile, e.ThumbnailURL, e.SubmittedBy, relatedJSON,
		e.TimeAdded.UnixMilli(), occurred)
	if err != nil {
		return errors.NewStoreQueryFailed("create entry", err)
	}
	return nil
}

// Update applies a partial edit and returns the stored result.
// ID and TimeAdded are never touched.
func (s *SQLiteStore) Update(ctx context.Context, id string, in entry.UpdateInput) (*entry.Entry, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		e.Title = *in.Title
	}
	if in.Category != nil {
		e.Category = *in.Category
	}
	if in.Tags != nil {
		e.Tags = *in.Tags
	}
	if in.Comments != nil {
		e.Comments = *in.Comments
	}
	if in.AttachmentURL != nil {
		e.AttachmentURL = *in.AttachmentURL
	}
	if in.AttachmentFile != nil {
		e.AttachmentFile = *in.AttachmentFile
	}
	if in.ThumbnailURL != nil {
		e.ThumbnailURL = *in.ThumbnailURL
	}
	if in.TimeOccurred != nil {
		e.TimeOccurred = *in.TimeOccurred
	}
	if in.RelatedIDs != nil {
		e.RelatedIDs = *in.RelatedIDs
	}

	var occurred int64
	if !e.TimeOccurred.IsZero() {
		occurred = e.TimeOccurred.UnixMilli()
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE entries SET title = ?, category = ?, tags = ?, comments = ?,
			attachment_url = ?, attachment_file = ?, thumbnail_url = ?,
			related_ids = ?, time_occurred = ?
		WHERE id = ?`,
		e.Title, string(e.Category), marshalList(e.Tags), e.Comments,
		e.AttachmentURL, e.AttachmentFile, e.ThumbnailURL,
		marshalList(e.RelatedIDs), occurred, id)
	if err != nil {
		return nil, errors.NewStoreQueryFailed("update entry", err)
	}
	return e, nil
}

// AllTags returns the distinct tags used across all entries, in first-seen
// order (newest entry first).
func (s *SQLiteStore) AllTags(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT tags FROM entries ORDER BY time_added DESC")
	if err != nil {
		return nil, errors.NewStoreQueryFailed("list tags", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	var all []string
	for rows.Next() {
		var tagsJSON string
		if err := rows.Scan(&tagsJSON); err != nil {
			return nil, errors.NewStoreQueryFailed("scan tags", err)
		}
		var tags []string
		if err := json.Unmarshal([]byte(tagsJSON), &tags); err != nil {
			continue
		}
		for _, t := range tags {
			if !seen[t] {
				seen[t] = true
				all = append(all, t)
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreQueryFailed("list tags", err)
	}
	return all, nil
}

func marshalList(items []string) string {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(b)
}
