package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/klass-lk/markpost/internal/model"
	"github.com/klass-lk/markpost/internal/store"
)

const postsCollection = "posts"

// PostStore is the document backend over a mongo posts collection. Ids are
// ObjectID hex strings generated at insert; the creation date is stamped
// here since mongo has no column default to lean on.
type PostStore struct {
	collection *mongo.Collection
	now        func() time.Time
}

func New(db *mongo.Database) *PostStore {
	return &PostStore{
		collection: db.Collection(postsCollection),
		now:        time.Now,
	}
}

func (s *PostStore) Insert(ctx context.Context, post model.Post) (model.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	post.ID = primitive.NewObjectID().Hex()
	post.Date = s.now().UTC()

	if _, err := s.collection.InsertOne(ctx, post); err != nil {
		return model.Post{}, fmt.Errorf("insert post: %w", err)
	}
	return post, nil
}

func (s *PostStore) ListAll(ctx context.Context) ([]model.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := make([]model.Post, 0)
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return posts, nil
}

func (s *PostStore) FindByID(ctx context.Context, id string) (model.Post, error) {
	if err := parseID(id); err != nil {
		return model.Post{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var post model.Post
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Post{}, store.ErrNotFound
		}
		return model.Post{}, fmt.Errorf("find post: %w", err)
	}
	return post, nil
}

func (s *PostStore) UpdatePartial(ctx context.Context, id string, fields store.PostFields) (model.Post, error) {
	if err := parseID(id); err != nil {
		return model.Post{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{}
	if fields.Title != "" {
		set["title"] = fields.Title
	}
	if fields.Content != "" {
		set["content"] = fields.Content
	}
	if fields.Author != "" {
		set["author"] = fields.Author
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post model.Post
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Post{}, store.ErrNotFound
		}
		return model.Post{}, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

func (s *PostStore) DeleteByID(ctx context.Context, id string) (model.Post, error) {
	if err := parseID(id); err != nil {
		return model.Post{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var post model.Post
	err := s.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Post{}, store.ErrNotFound
		}
		return model.Post{}, fmt.Errorf("delete post: %w", err)
	}
	return post, nil
}

func parseID(id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return store.ErrInvalidID
	}
	return nil
}
