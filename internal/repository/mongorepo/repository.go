package mongorepo

import (
	"context"
	"fmt"

	"github.com/Rasika1975/socialapp/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection = "users"
	postsCollection = "posts"
)

type MongoRepository struct {
	User repository.User
	Post repository.Post

	users *mongo.Collection
	posts *mongo.Collection
}

func New(db *mongo.Database) *MongoRepository {
	users := db.Collection(usersCollection)
	posts := db.Collection(postsCollection)
	return &MongoRepository{
		User:  newUserRepo(users),
		Post:  newPostRepo(posts),
		users: users,
		posts: posts,
	}
}

func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongorepo: connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongorepo: ping: %w", err)
	}

	return client, nil
}

// EnsureIndexes creates the unique email index and the feed ordering index.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	if _, err := r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("mongorepo: users email index: %w", err)
	}

	if _, err := r.posts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
	}); err != nil {
		return fmt.Errorf("mongorepo: posts createdAt index: %w", err)
	}

	return nil
}
