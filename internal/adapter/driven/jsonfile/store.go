// Package jsonfile implements the PostStore port on a single JSON document
// holding the whole post collection, rewritten in full on every mutation.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/natefinch/atomic"

	"github.com/jcarver/soloblog/internal/domain/model"
	"github.com/jcarver/soloblog/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.PostStore = (*Store)(nil)

// Store is the flat-file implementation of the PostStore port. Every
// operation performs a full load of the collection; mutations persist the
// whole collection back with an atomic replace, so a reader never observes a
// torn file.
//
// There is no cross-request mutual exclusion: two concurrent mutations each
// read, modify, and rewrite the entire collection, and the last writer wins
// at whole-collection granularity. That limitation is inherent to this
// backend; deployments that need per-record atomicity under concurrent
// writers should use the sqlite or mongo backend instead.
type Store struct {
	path string
}

// record is the on-disk shape of a post. Field names match the historical
// posts.json layout and must not change.
type record struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"imageUrl"`
	VideoURL  string    `json:"videoUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// New returns a Store persisting to path. If the file does not exist it is
// initialized with an empty collection so later loads never fail on a
// missing file.
func New(path string) (*Store, error) {
	s := &Store{path: path}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.persist(nil); err != nil {
			return nil, fmt.Errorf("initialize collection file: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat collection file: %w", err)
	}

	return s, nil
}

// Create assigns a millisecond-timestamp id and the creation time, appends
// the post, and rewrites the collection.
func (s *Store) Create(ctx context.Context, title, content string, media model.MediaSlots) (*model.Post, error) {
	records, err := s.load()
	if err != nil {
		return nil, err
	}

	rec := record{
		ID:        nextID(records),
		Title:     title,
		Content:   content,
		ImageURL:  media.ImageURL,
		VideoURL:  media.VideoURL,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.persist(append(records, rec)); err != nil {
		return nil, err
	}

	post := rec.toPost()
	return &post, nil
}

// ListAll returns every post newest-first. The collection is re-read on each
// call; nothing is cached across calls.
func (s *Store) ListAll(ctx context.Context) ([]model.Post, error) {
	records, err := s.load()
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(records, func(a, b record) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	posts := make([]model.Post, 0, len(records))
	for _, rec := range records {
		posts = append(posts, rec.toPost())
	}

	return posts, nil
}

// GetByID returns the post with the given id, or nil, nil when no post
// matches.
func (s *Store) GetByID(ctx context.Context, id string) (*model.Post, error) {
	records, err := s.load()
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		if rec.ID == id {
			post := rec.toPost()
			return &post, nil
		}
	}

	return nil, nil
}

// Update overwrites title and content, replaces both media slots when media
// is non-nil, and rewrites the collection. CreatedAt is left untouched.
func (s *Store) Update(ctx context.Context, id, title, content string, media *model.MediaSlots) (*model.Post, error) {
	records, err := s.load()
	if err != nil {
		return nil, err
	}

	for i := range records {
		if records[i].ID != id {
			continue
		}

		records[i].Title = title
		records[i].Content = content
		if media != nil {
			records[i].ImageURL = media.ImageURL
			records[i].VideoURL = media.VideoURL
		}

		if err := s.persist(records); err != nil {
			return nil, err
		}

		post := records[i].toPost()
		return &post, nil
	}

	return nil, fmt.Errorf("update post %s: %w", id, driven.ErrPostNotFound)
}

// Delete removes the post with the given id and reports whether anything was
// removed. A miss leaves the collection untouched and is not an error.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	records, err := s.load()
	if err != nil {
		return false, err
	}

	kept := slices.DeleteFunc(records, func(rec record) bool {
		return rec.ID == id
	})
	if len(kept) == len(records) {
		return false, nil
	}

	if err := s.persist(kept); err != nil {
		return false, err
	}

	return true, nil
}

func (s *Store) load() ([]record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read collection file: %w", err)
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode collection file: %w", err)
	}

	return records, nil
}

func (s *Store) persist(records []record) error {
	if records == nil {
		records = []record{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}

	// Write-to-temp-then-rename so a crash mid-write cannot leave a
	// half-written collection behind.
	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write collection file: %w", err)
	}

	return nil
}

// nextID returns the current millisecond timestamp as a string, bumped past
// any id already in the collection so that two creates landing in the same
// millisecond cannot collide within one writer.
func nextID(records []record) string {
	taken := make(map[string]struct{}, len(records))
	for _, rec := range records {
		taken[rec.ID] = struct{}{}
	}

	candidate := time.Now().UnixMilli()
	for {
		id := strconv.FormatInt(candidate, 10)
		if _, ok := taken[id]; !ok {
			return id
		}
		candidate++
	}
}

func (r record) toPost() model.Post {
	return model.Post{
		ID:        r.ID,
		Title:     r.Title,
		Content:   r.Content,
		ImageURL:  r.ImageURL,
		VideoURL:  r.VideoURL,
		CreatedAt: r.CreatedAt,
	}
}
