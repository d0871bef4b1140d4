package handlers

import (
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"blogapi/database"
	"blogapi/middleware"
	"blogapi/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CreatePostRequest struct {
	Title         string   `json:"title" binding:"required,max=100"`
	Content       string   `json:"content" binding:"required"`
	Category      string   `json:"category" binding:"required"`
	Tags          []string `json:"tags"`
	Excerpt       string   `json:"excerpt"`
	FeaturedImage string   `json:"featuredImage"`
	IsPublished   *bool    `json:"isPublished"`
}

type UpdatePostRequest struct {
	Title         *string   `json:"title" binding:"omitempty,min=1,max=100"`
	Content       *string   `json:"content" binding:"omitempty,min=1"`
	Category      *string   `json:"category"`
	Tags          *[]string `json:"tags"`
	Excerpt       *string   `json:"excerpt"`
	FeaturedImage *string   `json:"featuredImage"`
	IsPublished   *bool     `json:"isPublished"`
}

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// postView is a post with its author and category references expanded into
// limited projections by the aggregation $lookup stages.
type postView struct {
	models.Post  `bson:",inline"`
	AuthorInfo   *struct {
		Username string `bson:"username"`
	} `bson:"authorInfo"`
	CategoryInfo *struct {
		Name string `bson:"name"`
	} `bson:"categoryInfo"`
}

func (v postView) response() gin.H {
	author := gin.H{"id": v.Post.Author.Hex()}
	if v.AuthorInfo != nil {
		author["username"] = v.AuthorInfo.Username
	}
	category := gin.H{"id": v.Post.Category.Hex()}
	if v.CategoryInfo != nil {
		category["name"] = v.CategoryInfo.Name
	}

	comments := v.Post.Comments
	if comments == nil {
		comments = []models.Comment{}
	}
	tags := v.Post.Tags
	if tags == nil {
		tags = []string{}
	}

	return gin.H{
		"id":            v.Post.ID.Hex(),
		"title":         v.Post.Title,
		"slug":          v.Post.Slug,
		"content":       v.Post.Content,
		"excerpt":       v.Post.Excerpt,
		"featuredImage": v.Post.FeaturedImage,
		"tags":          tags,
		"isPublished":   v.Post.IsPublished,
		"author":        author,
		"category":      category,
		"comments":      comments,
		"createdAt":     v.Post.CreatedAt,
		"updatedAt":     v.Post.UpdatedAt,
	}
}

// findPostViews runs the shared populate pipeline: match, newest first,
// optional skip/limit, then $lookup of author and category.
func findPostViews(c *gin.Context, match bson.M, skip, limit int64) ([]postView, bool) {
	ctx, cancel := dbContext()
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
	}
	if skip > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$skip", Value: skip}})
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "author"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "authorInfo"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$authorInfo"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "categories"},
			{Key: "localField", Value: "category"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "categoryInfo"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$categoryInfo"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	)

	cursor, err := database.Posts.Aggregate(ctx, pipeline)
	if err != nil {
		log.Printf("post aggregate error: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch posts")
		return nil, false
	}
	defer cursor.Close(ctx)

	var views []postView
	if err := cursor.All(ctx, &views); err != nil {
		log.Printf("post decode error: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to decode posts")
		return nil, false
	}
	return views, true
}

func ListPosts(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}

	match := bson.M{}
	if category := c.Query("category"); category != "" {
		catID, err := primitive.ObjectIDFromHex(category)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid category id")
			return
		}
		match["category"] = catID
	}

	ctx, cancel := dbContext()
	defer cancel()

	total, err := database.Posts.CountDocuments(ctx, match)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to count posts")
		return
	}

	views, ok := findPostViews(c, match, int64(page-1)*int64(limit), int64(limit))
	if !ok {
		return
	}

	data := make([]gin.H, len(views))
	for i, v := range views {
		data[i] = v.response()
	}
	respondList(c, data, paginate(total, page, limit))
}

var hexIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

func GetPost(c *gin.Context) {
	ident := c.Param("id")

	match := bson.M{"slug": ident}
	if hexIDPattern.MatchString(ident) {
		id, err := primitive.ObjectIDFromHex(ident)
		if err != nil {
			respondError(c, http.StatusNotFound, "Post not found")
			return
		}
		match = bson.M{"_id": id}
	}

	views, ok := findPostViews(c, match, 0, 1)
	if !ok {
		return
	}
	if len(views) == 0 {
		respondError(c, http.StatusNotFound, "Post not found")
		return
	}
	respondData(c, http.StatusOK, views[0].response())
}

func CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	catID, err := primitive.ObjectIDFromHex(req.Category)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid category id")
		return
	}

	user := middleware.CurrentUser(c)
	now := time.Now().Unix()

	post := models.Post{
		ID:            primitive.NewObjectID(),
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		FeaturedImage: req.FeaturedImage,
		Tags:          req.Tags,
		Category:      catID,
		// The author is always the acting user, whatever the body says.
		Author:    user.ID,
		Comments:  []models.Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if post.Excerpt == "" {
		post.Excerpt = makeExcerpt(req.Content)
	}
	if post.FeaturedImage == "" {
		post.FeaturedImage = "default-post.jpg"
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	if req.IsPublished != nil {
		post.IsPublished = *req.IsPublished
	}

	ctx, cancel := dbContext()
	defer cancel()

	post.Slug = slugify(req.Title)
	taken, err := database.Posts.CountDocuments(ctx, bson.M{"slug": post.Slug})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if taken > 0 {
		post.Slug = post.Slug + "-" + post.ID.Hex()[18:]
	}

	if _, err := database.Posts.InsertOne(ctx, post); err != nil {
		log.Printf("CreatePost error: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to create post")
		return
	}

	respondData(c, http.StatusCreated, post)
}

func UpdatePost(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Post not found")
		return
	}

	ctx, cancel := dbContext()
	defer cancel()

	var post models.Post
	if err := database.Posts.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "Post not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Database error")
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	// All validation outcomes, including a malformed category id, are
	// surfaced before the ownership check.
	set, err := buildPostUpdate(&req)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid category id")
		return
	}

	if !isOwner(post.Author, middleware.CurrentUser(c).ID) {
		respondError(c, http.StatusForbidden, "Unauthorized")
		return
	}

	var updated models.Post
	err = database.Posts.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		log.Printf("UpdatePost error: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to update post")
		return
	}

	respondData(c, http.StatusOK, updated)
}

func DeletePost(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Post not found")
		return
	}

	ctx, cancel := dbContext()
	defer cancel()

	var post models.Post
	if err := database.Posts.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "Post not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if !isOwner(post.Author, middleware.CurrentUser(c).ID) {
		respondError(c, http.StatusForbidden, "Unauthorized")
		return
	}

	if _, err := database.Posts.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		log.Printf("DeletePost error: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to delete post")
		return
	}

	respondData(c, http.StatusOK, gin.H{})
}

func AddComment(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Post not found")
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	comment := models.Comment{
		User:      middleware.CurrentUser(c).ID,
		Content:   req.Content,
		CreatedAt: time.Now().Unix(),
	}

	ctx, cancel := dbContext()
	defer cancel()

	res, err := database.Posts.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"comments": comment}},
	)
	if err != nil {
		log.Printf("AddComment error: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to add comment")
		return
	}
	if res.MatchedCount == 0 {
		respondError(c, http.StatusNotFound, "Post not found")
		return
	}

	respondData(c, http.StatusCreated, comment)
}

// buildPostUpdate converts the provided fields of a partial update into a
// $set document. The author is never part of it.
func buildPostUpdate(req *UpdatePostRequest) (bson.M, error) {
	set := bson.M{"updatedAt": time.Now().Unix()}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Content != nil {
		set["content"] = *req.Content
	}
	if req.Category != nil {
		catID, err := primitive.ObjectIDFromHex(*req.Category)
		if err != nil {
			return nil, err
		}
		set["category"] = catID
	}
	if req.Tags != nil {
		set["tags"] = *req.Tags
	}
	if req.Excerpt != nil {
		set["excerpt"] = *req.Excerpt
	}
	if req.FeaturedImage != nil {
		set["featuredImage"] = *req.FeaturedImage
	}
	if req.IsPublished != nil {
		set["isPublished"] = *req.IsPublished
	}
	return set, nil
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(title string) string {
	s := slugStrip.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}

const excerptLength = 150

func makeExcerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptLength {
		return content
	}
	return strings.TrimSpace(string(runes[:excerptLength])) + "..."
}
