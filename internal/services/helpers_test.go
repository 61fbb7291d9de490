package services

import (
	"testing"

	"inkwell/internal/db"
	"inkwell/internal/models"

	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) {
	t.Helper()
	require.NoError(t, db.InitTest())
}

func createUser(t *testing.T, username string) models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "irrelevant",
	}
	require.NoError(t, db.DB.Create(&user).Error)
	return user
}

func createGroup(t *testing.T, slug, title string) models.Group {
	t.Helper()
	group := models.Group{
		Title:       title,
		Slug:        slug,
		Description: "test group " + slug,
	}
	require.NoError(t, db.DB.Create(&group).Error)
	return group
}

func createPost(t *testing.T, author models.User, group *models.Group, text string) models.Post {
	t.Helper()
	post := models.Post{
		Text:     text,
		AuthorID: author.ID,
	}
	if group != nil {
		post.GroupID = &group.ID
	}
	require.NoError(t, db.DB.Create(&post).Error)
	return post
}
