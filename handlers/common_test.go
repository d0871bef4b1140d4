package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		page  int
		limit int
		pages int
	}{
		{"partial last page", 12, 2, 5, 3},
		{"exact fit", 10, 1, 10, 1},
		{"single item", 1, 1, 10, 1},
		{"empty", 0, 1, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := paginate(tt.total, tt.page, tt.limit)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.pages, p.Pages)
		})
	}
}

func TestCanonicalID(t *testing.T) {
	oid := primitive.NewObjectID()

	assert.Equal(t, oid.Hex(), canonicalID(oid))
	assert.Equal(t, "abc123", canonicalID("abc123"))
}

func TestIsOwner(t *testing.T) {
	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()

	assert.True(t, isOwner(owner, owner))
	assert.False(t, isOwner(owner, other))

	// Stored handles may decode as plain strings; comparison still works
	// through the canonical form.
	assert.True(t, isOwner(owner.Hex(), owner))
	assert.False(t, isOwner(other.Hex(), owner))
}

func TestViolationMessagesOrderedAndReadable(t *testing.T) {
	v := validator.New()
	v.SetTagName("binding")

	err := v.Struct(RegisterRequest{Username: "ab", Email: "not-an-email", Password: "123"})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	assert.Equal(t, []string{
		"username must be at least 3 characters",
		"email must be a valid email address",
		"password must be at least 6 characters",
	}, violationMessages(verrs))
}

func TestViolationMessagesRequired(t *testing.T) {
	v := validator.New()
	v.SetTagName("binding")

	err := v.Struct(CreatePostRequest{})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	assert.Equal(t, []string{
		"title is required",
		"content is required",
		"category is required",
	}, violationMessages(verrs))
}

// Partial updates may omit title and content, but a provided value keeps
// the create-time constraints: an empty string must not blank the field.
func TestViolationMessagesUpdateEmptyFields(t *testing.T) {
	v := validator.New()
	v.SetTagName("binding")

	empty := ""
	err := v.Struct(UpdatePostRequest{Title: &empty, Content: &empty})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, []string{
		"title must not be empty",
		"content must not be empty",
	}, violationMessages(verrs))

	// Absent fields stay valid.
	assert.NoError(t, v.Struct(UpdatePostRequest{}))

	// A provided title still has the length ceiling.
	long := strings.Repeat("t", 101)
	err = v.Struct(UpdatePostRequest{Title: &long})
	require.Error(t, err)
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, []string{"title must be at most 100 characters"}, violationMessages(verrs))
}

func TestRespondErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	respondError(c, http.StatusForbidden, "Unauthorized")

	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Unauthorized", body.Error)
}

func TestRespondBindErrorMalformedJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	respondBindError(c, errors.New("unexpected EOF"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Invalid request body", body.Error)
}
