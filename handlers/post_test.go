package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"Go 1.25 Released!", "go-1-25-released"},
		{"  Spaces   everywhere  ", "spaces-everywhere"},
		{"already-a-slug", "already-a-slug"},
		{"UPPER case", "upper-case"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slugify(tt.title), "title %q", tt.title)
	}
}

func TestHexIDPattern(t *testing.T) {
	assert.True(t, hexIDPattern.MatchString(primitive.NewObjectID().Hex()))
	assert.True(t, hexIDPattern.MatchString("64A1F0C2E13D5A0001B2C3D4"))

	assert.False(t, hexIDPattern.MatchString("my-first-post"))
	assert.False(t, hexIDPattern.MatchString("64a1f0c2e13d5a0001b2c3"))    // too short
	assert.False(t, hexIDPattern.MatchString("64a1f0c2e13d5a0001b2c3d4e")) // too long
	assert.False(t, hexIDPattern.MatchString("zzzzzzzzzzzzzzzzzzzzzzzz"))
}

func TestBuildPostUpdate(t *testing.T) {
	title := "Renamed"
	published := true
	catID := primitive.NewObjectID()
	catHex := catID.Hex()

	set, err := buildPostUpdate(&UpdatePostRequest{
		Title:       &title,
		Category:    &catHex,
		IsPublished: &published,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", set["title"])
	assert.Equal(t, catID, set["category"])
	assert.Equal(t, true, set["isPublished"])
	assert.Contains(t, set, "updatedAt")

	// Omitted fields are not part of the merge, and the author never is.
	assert.NotContains(t, set, "content")
	assert.NotContains(t, set, "author")
}

func TestBuildPostUpdateRejectsBadCategory(t *testing.T) {
	bad := "not-a-category-id"
	_, err := buildPostUpdate(&UpdatePostRequest{Category: &bad})
	assert.Error(t, err)
}

func TestMakeExcerpt(t *testing.T) {
	short := "A short post."
	assert.Equal(t, short, makeExcerpt(short))

	long := strings.Repeat("word ", 60)
	got := makeExcerpt(long)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len([]rune(got)), excerptLength+3)

	// Never split a multi-byte rune.
	unicode := strings.Repeat("é", 200)
	got = makeExcerpt(unicode)
	assert.True(t, strings.HasSuffix(got, "..."))
	for _, r := range got {
		if r != '.' {
			assert.Equal(t, 'é', r)
		}
	}
}
