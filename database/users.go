package database

import (
	"context"

	"blogapi/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserStore is the users collection behind the auth middleware's
// UserFinder and the handlers' credential store.
type UserStore struct{}

// FindByID looks a user up by its hex id, excluding the password hash from
// the result. An unknown or malformed id yields (nil, nil).
func (UserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	opts := options.FindOne().SetProjection(bson.M{"passwordHash": 0})

	var user models.User
	err = Users.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail returns the full user record, password hash included, so the
// login handler can run the match check. An unknown email yields (nil, nil).
func (UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := Users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (UserStore) EmailTaken(ctx context.Context, email string) (bool, error) {
	count, err := Users.CountDocuments(ctx, bson.M{"email": email})
	return count > 0, err
}

func (UserStore) Insert(ctx context.Context, user models.User) error {
	_, err := Users.InsertOne(ctx, user)
	return err
}
