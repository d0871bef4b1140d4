package database

import (
	"context"

	"blogapi/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CategoryStore is the categories collection behind the category handlers.
type CategoryStore struct{}

// List returns all categories ordered alphabetically by name.
func (CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := Categories.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var list []models.Category
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// NameTaken reports whether a category with exactly this name exists.
// Mongo equality on strings is case-sensitive, which is the contract.
func (CategoryStore) NameTaken(ctx context.Context, name string) (bool, error) {
	count, err := Categories.CountDocuments(ctx, bson.M{"name": name})
	return count > 0, err
}

func (CategoryStore) Insert(ctx context.Context, category models.Category) error {
	_, err := Categories.InsertOne(ctx, category)
	return err
}
