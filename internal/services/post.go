package services

import (
	"errors"
	"strings"

	"inkwell/internal/db"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// resolveGroup checks an optional group reference. A nil id is fine, an id
// that does not exist is a validation error (the form offered a fixed set).
func resolveGroup(groupID *uint) error {
	if groupID == nil {
		return nil
	}
	var group models.Group
	if err := db.DB.First(&group, *groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ValidationError{Field: "group", Message: "group does not exist"}
		}
		return err
	}
	return nil
}

// CreatePost stores a new post owned by authorID
func CreatePost(authorID uint, text string, groupID *uint, image string) (*models.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Field: "text", Message: "text must not be empty"}
	}
	if err := resolveGroup(groupID); err != nil {
		return nil, err
	}

	post := models.Post{
		Text:     text,
		AuthorID: authorID,
		GroupID:  groupID,
		Image:    image,
	}
	if err := db.DB.Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost mutates text, group and image of an existing post. Only the
// author may edit; CreatedAt is never touched. An empty image keeps the
// current attachment unless removeImage asks for it to be cleared; a new
// image always wins over the clear flag.
func UpdatePost(postID, callerID uint, text string, groupID *uint, image string, removeImage bool) (*models.Post, error) {
	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if post.AuthorID != callerID {
		return nil, ErrPermissionDenied
	}

	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Field: "text", Message: "text must not be empty"}
	}
	if err := resolveGroup(groupID); err != nil {
		return nil, err
	}

	post.Text = text
	post.GroupID = groupID
	switch {
	case image != "":
		post.Image = image
	case removeImage:
		post.Image = ""
	}

	if err := db.DB.Save(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// AddComment creates a comment by authorID under the given post
func AddComment(postID, authorID uint, text string) (*models.Comment, error) {
	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Field: "text", Message: "text must not be empty"}
	}

	comment := models.Comment{
		PostID:   post.ID,
		AuthorID: authorID,
		Text:     text,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeletePost removes a post and its comments. This is an administrative
// operation, there is no user-facing route for it. The cascade is explicit
// rather than left to database constraints so it behaves the same on every
// backend.
func DeletePost(postID uint) error {
	if err := db.DB.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
		return err
	}

	res := db.DB.Delete(&models.Post{}, postID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
