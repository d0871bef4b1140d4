package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Post struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Slug          string             `bson:"slug" json:"slug"`
	Content       string             `bson:"content" json:"content"`
	Excerpt       string             `bson:"excerpt" json:"excerpt"`
	FeaturedImage string             `bson:"featuredImage" json:"featuredImage"`
	Tags          []string           `bson:"tags" json:"tags"`
	IsPublished   bool               `bson:"isPublished" json:"isPublished"`
	Category      primitive.ObjectID `bson:"category" json:"category"`
	Author        primitive.ObjectID `bson:"author" json:"author"`
	Comments      []Comment          `bson:"comments" json:"comments"`
	CreatedAt     int64              `bson:"createdAt" json:"createdAt"`
	UpdatedAt     int64              `bson:"updatedAt" json:"updatedAt"`
}

// Comment lives inside its post document; it references a user but does not own it.
type Comment struct {
	User      primitive.ObjectID `bson:"user" json:"user"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt int64              `bson:"createdAt" json:"createdAt"`
}
