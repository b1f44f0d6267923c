package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jcarver/soloblog/internal/domain/model"
	"github.com/jcarver/soloblog/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.PostStore = (*PostRepo)(nil)

// timeFormat is a zero-padded RFC 3339 variant. The padding keeps every
// stored timestamp the same width so ORDER BY on the TEXT column sorts
// chronologically.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// PostRepo is the SQLite implementation of the PostStore port. Identity is
// server-assigned: the posts table uses AUTOINCREMENT, so row ids are never
// reused after deletion, and the externally visible id is the decimal row id.
type PostRepo struct {
	db *DB
}

// NewPostRepo creates a new PostRepo backed by the given DB.
func NewPostRepo(db *DB) *PostRepo {
	return &PostRepo{db: db}
}

// Create inserts a new post and returns the stored record with its assigned
// id and creation time.
func (r *PostRepo) Create(ctx context.Context, title, content string, media model.MediaSlots) (*model.Post, error) {
	const query = `INSERT INTO posts (title, content, image_url, video_url, created_at) VALUES (?, ?, ?, ?, ?)`

	createdAt := time.Now().UTC()

	result, err := r.db.Writer.ExecContext(ctx, query,
		title, content, media.ImageURL, media.VideoURL, createdAt.Format(timeFormat))
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	rowID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("read post id: %w", err)
	}

	return &model.Post{
		ID:        strconv.FormatInt(rowID, 10),
		Title:     title,
		Content:   content,
		ImageURL:  media.ImageURL,
		VideoURL:  media.VideoURL,
		CreatedAt: createdAt,
	}, nil
}

// ListAll returns all posts ordered newest-first by creation time.
func (r *PostRepo) ListAll(ctx context.Context) ([]model.Post, error) {
	const query = `SELECT id, title, content, image_url, video_url, created_at FROM posts ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]model.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}

	return posts, nil
}

// GetByID retrieves a post by its id. Returns nil, nil when the post does not
// exist; an id that is not a decimal row id can match nothing and is treated
// the same way.
func (r *PostRepo) GetByID(ctx context.Context, id string) (*model.Post, error) {
	rowID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, nil
	}

	const query = `SELECT id, title, content, image_url, video_url, created_at FROM posts WHERE id = ?`

	post, err := scanPost(r.db.Reader.QueryRowContext(ctx, query, rowID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get post %s: %w", id, err)
	}

	return post, nil
}

// Update overwrites title and content, and both media slots when media is
// non-nil. Returns ErrPostNotFound when no row matches.
func (r *PostRepo) Update(ctx context.Context, id, title, content string, media *model.MediaSlots) (*model.Post, error) {
	rowID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("update post %s: %w", id, driven.ErrPostNotFound)
	}

	var result sql.Result
	if media != nil {
		const query = `UPDATE posts SET title = ?, content = ?, image_url = ?, video_url = ? WHERE id = ?`
		result, err = r.db.Writer.ExecContext(ctx, query, title, content, media.ImageURL, media.VideoURL, rowID)
	} else {
		const query = `UPDATE posts SET title = ?, content = ? WHERE id = ?`
		result, err = r.db.Writer.ExecContext(ctx, query, title, content, rowID)
	}
	if err != nil {
		return nil, fmt.Errorf("update post %s: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("update post %s: %w", id, driven.ErrPostNotFound)
	}

	post, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fmt.Errorf("update post %s: %w", id, driven.ErrPostNotFound)
	}

	return post, nil
}

// Delete removes a post by id and reports whether a row was removed.
func (r *PostRepo) Delete(ctx context.Context, id string) (bool, error) {
	rowID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return false, nil
	}

	const query = `DELETE FROM posts WHERE id = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, rowID)
	if err != nil {
		return false, fmt.Errorf("delete post %s: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("check rows affected: %w", err)
	}

	return rows > 0, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPost(s scanner) (*model.Post, error) {
	var post model.Post
	var rowID int64
	var createdAt string

	err := s.Scan(&rowID, &post.Title, &post.Content, &post.ImageURL, &post.VideoURL, &createdAt)
	if err != nil {
		return nil, err
	}

	post.ID = strconv.FormatInt(rowID, 10)

	post.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}

	return &post, nil
}

// parseTime tries multiple SQLite datetime formats.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		timeFormat,
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}
