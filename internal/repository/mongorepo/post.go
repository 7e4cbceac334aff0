package mongorepo

import (
	"context"
	"errors"

	"github.com/Rasika1975/socialapp/internal/model"
	"github.com/Rasika1975/socialapp/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type postRepo struct {
	coll *mongo.Collection
}

func newPostRepo(coll *mongo.Collection) *postRepo {
	return &postRepo{
		coll: coll,
	}
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	post.ID = primitive.NewObjectID()
	if post.Likes == nil {
		post.Likes = []model.Like{}
	}
	if post.Comments == nil {
		post.Comments = []model.Comment{}
	}

	if _, err := r.coll.InsertOne(ctx, post); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	return decodeOne(r.coll.FindOne(ctx, bson.M{"_id": id}))
}

func (r *postRepo) FindPage(ctx context.Context, skip int64, limit int64) ([]*model.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []*model.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postRepo) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

// userIDForms matches a user id stored either as a hex string or, in
// documents written by the earlier backend, as an ObjectId.
func userIDForms(userID string) bson.A {
	forms := bson.A{userID}
	if oid, err := primitive.ObjectIDFromHex(userID); err == nil {
		forms = append(forms, oid)
	}
	return forms
}

func (r *postRepo) PullLike(ctx context.Context, id primitive.ObjectID, userID string) (*model.Post, error) {
	forms := userIDForms(userID)
	return r.updateOne(
		ctx,
		bson.M{"_id": id, "likes.userId": bson.M{"$in": forms}},
		bson.M{"$pull": bson.M{"likes": bson.M{"userId": bson.M{"$in": forms}}}},
	)
}

func (r *postRepo) PushLike(ctx context.Context, id primitive.ObjectID, like model.Like) (*model.Post, error) {
	return r.updateOne(
		ctx,
		bson.M{"_id": id, "likes.userId": bson.M{"$nin": userIDForms(like.UserID)}},
		bson.M{"$push": bson.M{"likes": like}},
	)
}

func (r *postRepo) PushComment(ctx context.Context, id primitive.ObjectID, comment model.Comment) (*model.Post, error) {
	return r.updateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"comments": comment}},
	)
}

func (r *postRepo) DeleteOwned(ctx context.Context, id primitive.ObjectID, userID string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "userId": bson.M{"$in": userIDForms(userID)}})
	if err != nil {
		return false, err
	}

	return res.DeletedCount > 0, nil
}

func (r *postRepo) updateOne(ctx context.Context, filter bson.M, update bson.M) (*model.Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return decodeOne(r.coll.FindOneAndUpdate(ctx, filter, update, opts))
}

func decodeOne(res *mongo.SingleResult) (*model.Post, error) {
	var post model.Post
	if err := res.Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &post, nil
}
