package driven

import (
	"context"
	"errors"

	"github.com/jcarver/soloblog/internal/domain/model"
)

// ErrPostNotFound indicates the targeted post does not exist. It is a normal
// outcome for update, not an infrastructure failure.
var ErrPostNotFound = errors.New("post not found")

// PostStore defines the driven port for post persistence. All implementations
// must satisfy the same external contract:
//
//   - Create assigns the id and creation time and returns the stored record.
//   - ListAll returns every post ordered newest-first by creation time,
//     freshly read on each call.
//   - GetByID returns nil, nil when no post matches; that is not an error.
//   - Update overwrites title and content unconditionally. A nil media pointer
//     leaves both media slots untouched; a non-nil value replaces both slots
//     wholesale. CreatedAt is never modified. Returns ErrPostNotFound when the
//     id does not match.
//   - Delete reports whether a record was removed; a miss is false, nil.
//
// Any other error is an infrastructure failure from the backing storage.
type PostStore interface {
	Create(ctx context.Context, title, content string, media model.MediaSlots) (*model.Post, error)
	ListAll(ctx context.Context) ([]model.Post, error)
	GetByID(ctx context.Context, id string) (*model.Post, error)
	Update(ctx context.Context, id, title, content string, media *model.MediaSlots) (*model.Post, error)
	Delete(ctx context.Context, id string) (bool, error)
}
