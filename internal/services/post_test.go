package services

import (
	"testing"
	"time"

	"inkwell/internal/db"
	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	setupDB(t)
	author := createUser(t, "author")
	group := createGroup(t, "tech", "Technology")

	post, err := CreatePost(author.ID, "my first post", &group.ID, "")
	require.NoError(t, err)
	assert.Equal(t, author.ID, post.AuthorID)
	require.NotNil(t, post.GroupID)
	assert.Equal(t, group.ID, *post.GroupID)

	// Group is optional
	loose, err := CreatePost(author.ID, "a post without a group", nil, "")
	require.NoError(t, err)
	assert.Nil(t, loose.GroupID)
}

func TestCreatePostValidation(t *testing.T) {
	setupDB(t)
	author := createUser(t, "author")

	_, err := CreatePost(author.ID, "", nil, "")
	assert.True(t, IsValidation(err), "empty text must be rejected")

	_, err = CreatePost(author.ID, "   \n\t ", nil, "")
	assert.True(t, IsValidation(err), "whitespace-only text must be rejected")

	badGroup := uint(999)
	_, err = CreatePost(author.ID, "text is fine", &badGroup, "")
	assert.True(t, IsValidation(err), "unresolvable group must be rejected")

	var count int64
	db.DB.Model(&models.Post{}).Count(&count)
	assert.Equal(t, int64(0), count, "no rejected post may be stored")
}

func TestUpdatePostNonAuthorLeavesPostUntouched(t *testing.T) {
	setupDB(t)
	author := createUser(t, "author")
	intruder := createUser(t, "intruder")
	group := createGroup(t, "tech", "Technology")
	post := createPost(t, author, &group, "original text")

	_, err := UpdatePost(post.ID, intruder.ID, "hijacked", nil, "http://img.test/x.png", false)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	var reloaded models.Post
	require.NoError(t, db.DB.First(&reloaded, post.ID).Error)
	assert.Equal(t, "original text", reloaded.Text)
	require.NotNil(t, reloaded.GroupID)
	assert.Equal(t, group.ID, *reloaded.GroupID)
	assert.Empty(t, reloaded.Image)
}

func TestUpdatePostPreservesCreatedAt(t *testing.T) {
	setupDB(t)
	author := createUser(t, "author")
	post := createPost(t, author, nil, "original text")

	updated, err := UpdatePost(post.ID, author.ID, "revised text", nil, "", false)
	require.NoError(t, err)
	assert.Equal(t, "revised text", updated.Text)
	assert.WithinDuration(t, post.CreatedAt, updated.CreatedAt, time.Millisecond)
}

func TestUpdatePostImageHandling(t *testing.T) {
	setupDB(t)
	author := createUser(t, "author")
	post := createPost(t, author, nil, "illustrated post")

	updated, err := UpdatePost(post.ID, author.ID, "illustrated post", nil, "http://img.test/a.png", false)
	require.NoError(t, err)
	assert.Equal(t, "http://img.test/a.png", updated.Image)

	// An edit without a new file keeps the attachment
	updated, err = UpdatePost(post.ID, author.ID, "revised text", nil, "", false)
	require.NoError(t, err)
	assert.Equal(t, "http://img.test/a.png", updated.Image)

	// The clear flag removes it
	updated, err = UpdatePost(post.ID, author.ID, "revised text", nil, "", true)
	require.NoError(t, err)
	assert.Empty(t, updated.Image)

	// A new file wins over the clear flag
	updated, err = UpdatePost(post.ID, author.ID, "revised text", nil, "http://img.test/b.png", true)
	require.NoError(t, err)
	assert.Equal(t, "http://img.test/b.png", updated.Image)
}

func TestUpdatePostErrors(t *testing.T) {
	setupDB(t)
	author := createUser(t, "author")
	post := createPost(t, author, nil, "original text")

	_, err := UpdatePost(98765, author.ID, "whatever", nil, "", false)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = UpdatePost(post.ID, author.ID, "", nil, "", false)
	assert.True(t, IsValidation(err), "empty text must be rejected on edit too")
}

func TestAddComment(t *testing.T) {
	setupDB(t)
	author := createUser(t, "author")
	commenter := createUser(t, "commenter")
	post := createPost(t, author, nil, "a post")

	comment, err := AddComment(post.ID, commenter.ID, "nice one")
	require.NoError(t, err)
	assert.Equal(t, post.ID, comment.PostID)
	assert.Equal(t, commenter.ID, comment.AuthorID)

	_, err = AddComment(post.ID, commenter.ID, "")
	assert.True(t, IsValidation(err))

	_, err = AddComment(424242, commenter.ID, "into the void")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePostCascadesComments(t *testing.T) {
	setupDB(t)
	author := createUser(t, "author")
	post := createPost(t, author, nil, "doomed post")
	other := createPost(t, author, nil, "surviving post")

	_, err := AddComment(post.ID, author.ID, "one")
	require.NoError(t, err)
	_, err = AddComment(post.ID, author.ID, "two")
	require.NoError(t, err)
	kept, err := AddComment(other.ID, author.ID, "unrelated")
	require.NoError(t, err)

	require.NoError(t, DeletePost(post.ID))

	var comments int64
	db.DB.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&comments)
	assert.Equal(t, int64(0), comments, "comments go with their post")

	var keptReloaded models.Comment
	assert.NoError(t, db.DB.First(&keptReloaded, kept.ID).Error,
		"comments of other posts stay")

	assert.ErrorIs(t, DeletePost(post.ID), ErrNotFound)
}
