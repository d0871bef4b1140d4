package handlers

import (
	"log"
	"net/http"
	"time"

	"blogapi/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

func ListCategories(c *gin.Context) {
	ctx, cancel := dbContext()
	defer cancel()

	list, err := categories.List(ctx)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	if list == nil {
		list = []models.Category{}
	}

	respondData(c, http.StatusOK, list)
}

func CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := dbContext()
	defer cancel()

	// Name matching is case-sensitive.
	taken, err := categories.NameTaken(ctx, req.Name)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if taken {
		respondError(c, http.StatusBadRequest, "Category already exists")
		return
	}

	category := models.Category{
		ID:        primitive.NewObjectID(),
		Name:      req.Name,
		CreatedAt: time.Now().Unix(),
	}

	if err := categories.Insert(ctx, category); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			respondError(c, http.StatusBadRequest, "Category already exists")
			return
		}
		log.Printf("CreateCategory error: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to create category")
		return
	}

	respondData(c, http.StatusCreated, category)
}
