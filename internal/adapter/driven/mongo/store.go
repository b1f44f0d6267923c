// Package mongo implements the PostStore port on a MongoDB collection.
// Identity is server-assigned: each post is one document keyed by ObjectID,
// and single-document operations give this backend per-record atomicity the
// flat-file backend cannot offer.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	driver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/jcarver/soloblog/internal/domain/model"
	"github.com/jcarver/soloblog/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.PostStore = (*Store)(nil)

const collectionName = "posts"

// Store is the MongoDB implementation of the PostStore port.
type Store struct {
	client *driver.Client
	coll   *driver.Collection
}

// document is the stored shape of a post. Field names match the historical
// collection layout.
type document struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Title     string        `bson:"title"`
	Content   string        `bson:"content"`
	ImageURL  string        `bson:"imageUrl"`
	VideoURL  string        `bson:"videoUrl"`
	CreatedAt time.Time     `bson:"createdAt"`
}

// New connects to the MongoDB deployment at uri and returns a Store over the
// posts collection of the named database. The connection is verified with a
// ping before the Store is returned.
func New(ctx context.Context, uri, database string) (*Store, error) {
	client, err := driver.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &Store{
		client: client,
		coll:   client.Database(database).Collection(collectionName),
	}, nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongodb: %w", err)
	}
	return nil
}

// Create inserts a new post document and returns the stored record with its
// server-assigned id. The creation time is truncated to millisecond
// precision, which is what BSON datetimes round-trip at.
func (s *Store) Create(ctx context.Context, title, content string, media model.MediaSlots) (*model.Post, error) {
	createdAt := time.Now().UTC().Truncate(time.Millisecond)

	res, err := s.coll.InsertOne(ctx, document{
		Title:     title,
		Content:   content,
		ImageURL:  media.ImageURL,
		VideoURL:  media.VideoURL,
		CreatedAt: createdAt,
	})
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return nil, fmt.Errorf("create post: unexpected inserted id type %T", res.InsertedID)
	}

	return &model.Post{
		ID:        id.Hex(),
		Title:     title,
		Content:   content,
		ImageURL:  media.ImageURL,
		VideoURL:  media.VideoURL,
		CreatedAt: createdAt,
	}, nil
}

// ListAll returns all posts ordered newest-first by creation time.
func (s *Store) ListAll(ctx context.Context) ([]model.Post, error) {
	cursor, err := s.coll.Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	var docs []document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}

	posts := make([]model.Post, 0, len(docs))
	for _, doc := range docs {
		posts = append(posts, doc.toPost())
	}

	return posts, nil
}

// GetByID retrieves a post by its id. Returns nil, nil when the post does not
// exist; an id that is not valid ObjectID hex can match nothing and is
// treated the same way.
func (s *Store) GetByID(ctx context.Context, id string) (*model.Post, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var doc document
	err = s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: objectID}}).Decode(&doc)
	if errors.Is(err, driver.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get post %s: %w", id, err)
	}

	post := doc.toPost()
	return &post, nil
}

// Update overwrites title and content, and both media slots when media is
// non-nil, in a single atomic document update. Returns ErrPostNotFound when
// no document matches.
func (s *Store) Update(ctx context.Context, id, title, content string, media *model.MediaSlots) (*model.Post, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("update post %s: %w", id, driven.ErrPostNotFound)
	}

	set := bson.D{
		{Key: "title", Value: title},
		{Key: "content", Value: content},
	}
	if media != nil {
		set = append(set,
			bson.E{Key: "imageUrl", Value: media.ImageURL},
			bson.E{Key: "videoUrl", Value: media.VideoURL},
		)
	}

	var doc document
	err = s.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: objectID}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, driver.ErrNoDocuments) {
		return nil, fmt.Errorf("update post %s: %w", id, driven.ErrPostNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update post %s: %w", id, err)
	}

	post := doc.toPost()
	return &post, nil
}

// Delete removes a post by id and reports whether a document was removed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: objectID}})
	if err != nil {
		return false, fmt.Errorf("delete post %s: %w", id, err)
	}

	return res.DeletedCount > 0, nil
}

func (d document) toPost() model.Post {
	return model.Post{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Content:   d.Content,
		ImageURL:  d.ImageURL,
		VideoURL:  d.VideoURL,
		CreatedAt: d.CreatedAt,
	}
}
