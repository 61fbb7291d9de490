package services

import (
	"testing"

	"inkwell/internal/db"
	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func followCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.DB.Model(&models.Follow{}).Count(&count).Error)
	return count
}

func TestFollowUnfollowRoundTrip(t *testing.T) {
	setupDB(t)
	reader := createUser(t, "reader")
	createUser(t, "writer")

	before := followCount(t)

	require.NoError(t, FollowAuthor(reader.ID, "writer"))
	require.NoError(t, UnfollowAuthor(reader.ID, "writer"))

	assert.Equal(t, before, followCount(t), "follow then unfollow must restore the original state")
}

func TestFollowTwiceKeepsOneRow(t *testing.T) {
	setupDB(t)
	reader := createUser(t, "reader")
	writer := createUser(t, "writer")

	require.NoError(t, FollowAuthor(reader.ID, "writer"))
	require.NoError(t, FollowAuthor(reader.ID, "writer"))

	assert.Equal(t, int64(1), followCount(t))
	assert.True(t, IsFollowing(reader.ID, writer.ID))
}

func TestFollowSelfRejected(t *testing.T) {
	setupDB(t)
	reader := createUser(t, "reader")

	err := FollowAuthor(reader.ID, "reader")
	assert.True(t, IsValidation(err), "self-follow must be rejected")
	assert.Equal(t, int64(0), followCount(t))
}

func TestUnfollowMissingIsNoOp(t *testing.T) {
	setupDB(t)
	reader := createUser(t, "reader")
	createUser(t, "writer")

	assert.NoError(t, UnfollowAuthor(reader.ID, "writer"))
}

func TestFollowUnknownAuthor(t *testing.T) {
	setupDB(t)
	reader := createUser(t, "reader")

	assert.ErrorIs(t, FollowAuthor(reader.ID, "ghost"), ErrNotFound)
	assert.ErrorIs(t, UnfollowAuthor(reader.ID, "ghost"), ErrNotFound)
}

func TestIsFollowing(t *testing.T) {
	setupDB(t)
	reader := createUser(t, "reader")
	writer := createUser(t, "writer")

	assert.False(t, IsFollowing(reader.ID, writer.ID))
	require.NoError(t, FollowAuthor(reader.ID, "writer"))
	assert.True(t, IsFollowing(reader.ID, writer.ID))
	assert.False(t, IsFollowing(writer.ID, reader.ID), "following is directed")
}
