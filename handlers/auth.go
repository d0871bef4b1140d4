package handlers

import (
	"net/http"
	"time"

	"blogapi/middleware"
	"blogapi/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := dbContext()
	defer cancel()

	// Check the email first for a friendly error; the unique index on
	// email still catches the race between check and insert.
	taken, err := users.EmailTaken(ctx, req.Email)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if taken {
		respondError(c, http.StatusBadRequest, "Email already in use")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}
	hashed := string(hashedPassword)

	user := models.User{
		ID:           primitive.NewObjectID(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: &hashed,
		CreatedAt:    time.Now().Unix(),
	}

	if err := users.Insert(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			respondError(c, http.StatusBadRequest, "Email already in use")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	tok, err := tokens.Issue(user.ID.Hex())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	user.PasswordHash = nil
	respondData(c, http.StatusCreated, gin.H{"token": tok, "user": user})
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := dbContext()
	defer cancel()

	user, err := users.FindByEmail(ctx, req.Email)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if user == nil {
		// Same message as a password mismatch so the response does not
		// reveal whether the email exists.
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if user.PasswordHash == nil ||
		bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)) != nil {
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	tok, err := tokens.Issue(user.ID.Hex())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	user.PasswordHash = nil
	respondData(c, http.StatusOK, gin.H{"token": tok, "user": user})
}

// Me returns the user the auth middleware resolved for this request.
func Me(c *gin.Context) {
	respondData(c, http.StatusOK, middleware.CurrentUser(c))
}
