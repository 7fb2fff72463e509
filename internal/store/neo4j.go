package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/SBleeyouk/deepfake-daily/internal/entry"
	"github.com/SBleeyouk/deepfake-daily/pkg/errors"
	"github.com/SBleeyouk/deepfake-daily/pkg/logger"
)

// Neo4jStore keeps entries as (:Entry) nodes and manual relations as
// [:RELATED_TO] relationships, which makes the correlation view's manual
// links first-class graph data.
type Neo4jStore struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

// NewNeo4jStore connects to the given bolt URI and verifies connectivity.
func NewNeo4jStore(ctx context.Context, uri, user, password string) (*Neo4jStore, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, errors.NewStoreConnectionFailed("neo4j", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, errors.NewStoreConnectionFailed("neo4j", err)
	}
	return &Neo4jStore{driver: driver, logger: logger.Get()}, nil
}

// Close closes the Neo4j driver connection.
func (s *Neo4jStore) Close() error {
	return s.driver.Close(context.Background())
}

const entryReturn = `
	e.id as id, e.title as title, e.category as category, e.tags as tags,
	e.comments as comments, e.attachment_url as attachment_url,
	e.attachment_file as attachment_file, e.thumbnail_url as thumbnail_url,
	e.submitted_by as submitted_by, e.time_added as time_added,
	e.time_occurred as time_occurred,
	[(e)-[:RELATED_TO]->(r:Entry) | r.id] as related_ids
`

// List returns entries matching f, newest first.
func (s *Neo4jStore) List(ctx context.Context, f Filters) ([]entry.Entry, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := "MATCH (e:Entry)"
	params := map[string]interface{}{}
	if f.Category != "" {
		query += " WHERE e.category = $category"
		params["category"] = string(f.Category)
	}
	query += " RETURN " + entryReturn + " ORDER BY e.time_added DESC"

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, errors.NewStoreQueryFailed("list entries", err)
	}

	var entries []entry.Entry
	for result.Next(ctx) {
		e := recordToEntry(result.Record())
		if !matchesTag(e.Tags, f.Tag) {
			continue
		}
		entries = append(entries, e)
	}
	if err := result.Err(); err != nil {
		return nil, errors.NewStoreQueryFailed("list entries", err)
	}
	return entries, nil
}

// Get returns a single entry by id.
func (s *Neo4jStore) Get(ctx context.Context, id string) (*entry.Entry, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx,
		"MATCH (e:Entry {id: $id}) RETURN "+entryReturn,
		map[string]interface{}{"id": id})
	if err != nil {
		return nil, errors.NewStoreQueryFailed("get entry", err)
	}
	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, errors.NewStoreQueryFailed("get entry", err)
		}
		return nil, errors.NewEntryNotFound(id)
	}
	e := recordToEntry(result.Record())
	return &e, nil
}

// Create inserts a new entry node and its RELATED_TO relationships.
func (s *Neo4jStore) Create(ctx context.Context, in entry.CreateInput) (*entry.Entry, error) {
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

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.Run(ctx, `
		CREATE (e:Entry {
			id: $id, title: $title, category: $category, tags: $tags,
			comments: $comments, attachment_url: $attachment_url,
			attachment_file: $attachment_file, thumbnail_url: $thumbnail_url,
			submitted_by: $submitted_by, time_added: $time_added,
			time_occurred: $time_occurred
		})
		WITH e
		UNWIND $related_ids as rid
		MATCH (r:Entry {id: rid})
		MERGE (e)-[:RELATED_TO]->(r)`,
		entryParams(&e))
	if err != nil {
		return nil, errors.NewStoreQueryFailed("create entry", err)
	}
	return &e, nil
}

// Update applies a partial edit and rebuilds relationships when RelatedIDs
// change. ID and TimeAdded are never touched.
func (s *Neo4jStore) Update(ctx context.Context, id string, in entry.UpdateInput) (*entry.Entry, error) {
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

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err = session.Run(ctx, `
		MATCH (e:Entry {id: $id})
		SET e.title = $title, e.category = $category, e.tags = $tags,
			e.comments = $comments, e.attachment_url = $attachment_url,
			e.attachment_file = $attachment_file, e.thumbnail_url = $thumbnail_url,
			e.time_occurred = $time_occurred
		WITH e
		OPTIONAL MATCH (e)-[old:RELATED_TO]->(:Entry)
		DELETE old
		WITH DISTINCT e
		UNWIND $related_ids as rid
		MATCH (r:Entry {id: rid})
		MERGE (e)-[:RELATED_TO]->(r)`,
		entryParams(e))
	if err != nil {
		return nil, errors.NewStoreQueryFailed("update entry", err)
	}
	return e, nil
}

// AllTags returns the distinct tags used across all entries.
func (s *Neo4jStore) AllTags(ctx context.Context) ([]string, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx,
		"MATCH (e:Entry) UNWIND e.tags as tag RETURN DISTINCT tag", nil)
	if err != nil {
		return nil, errors.NewStoreQueryFailed("list tags", err)
	}

	var tags []string
	for result.Next(ctx) {
		if tag, ok := result.Record().Get("tag"); ok {
			if s, ok := tag.(string); ok {
				tags = append(tags, s)
			}
		}
	}
	if err := result.Err(); err != nil {
		return nil, errors.NewStoreQueryFailed("list tags", err)
	}
	return tags, nil
}

func entryParams(e *entry.Entry) map[string]interface{} {
	var occurred int64
	if !e.TimeOccurred.IsZero() {
		occurred = e.TimeOccurred.UnixMilli()
	}
	related := e.RelatedIDs
	if related == nil {
		related = []string{}
	}
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return map[string]interface{}{
		"id":              e.ID,
		"title":           e.Title,
		"category":        string(e.Category),
		"tags":            tags,
		"comments":        e.Comments,
		"attachment_url":  e.AttachmentURL,
		"attachment_file": e.AttachmentFile,
		"thumbnail_url":   e.ThumbnailURL,
		"submitted_by":    e.SubmittedBy,
		"time_added":      e.TimeAdded.UnixMilli(),
		"time_occurred":   occurred,
		"related_ids":     related,
	}
}

func recordToEntry(record *neo4j.Record) entry.Entry {
	e := entry.Entry{
		ID:             getString(record, "id"),
		Title:          getString(record, "title"),
		Category:       entry.Category(getString(record, "category")),
		Tags:           getStringSlice(record, "tags"),
		Comments:       getString(record, "comments"),
		AttachmentURL:  getString(record, "attachment_url"),
		AttachmentFile: getString(record, "attachment_file"),
		ThumbnailURL:   getString(record, "thumbnail_url"),
		SubmittedBy:    getString(record, "submitted_by"),
		RelatedIDs:     getStringSlice(record, "related_ids"),
	}
	if added := getInt64(record, "time_added"); added > 0 {
		e.TimeAdded = time.UnixMilli(added).UTC()
	}
	if occurred := getInt64(record, "time_occurred"); occurred > 0 {
		e.TimeOccurred = time.UnixMilli(occurred).UTC()
	}
	return e
}

func getString(record *neo4j.Record, key string) string {
	if value, ok := record.Get(key); ok {
		if s, ok := value.(string); ok {
			return s
		}
	}
	return ""
}

func getInt64(record *neo4j.Record, key string) int64 {
	if value, ok := record.Get(key); ok {
		if n, ok := value.(int64); ok {
			return n
		}
	}
	return 0
}

func getStringSlice(record *neo4j.Record, key string) []string {
	value, ok := record.Get(key)
	if !ok {
		return nil
	}
	list, ok := value.([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
