package services

import (
	"errors"

	"inkwell/internal/db"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

func resolveAuthor(username string) (models.User, error) {
	var author models.User
	if err := db.DB.Where("username = ?", username).First(&author).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return author, ErrNotFound
		}
		return author, err
	}
	return author, nil
}

// FollowAuthor creates a follow relationship from userID towards the named
// author. Following yourself is rejected, following someone twice is a no-op
// so the unique (user, author) pair is never violated.
func FollowAuthor(userID uint, username string) error {
	author, err := resolveAuthor(username)
	if err != nil {
		return err
	}

	if author.ID == userID {
		return &ValidationError{Field: "author", Message: "you cannot follow yourself"}
	}

	var existing models.Follow
	if err := db.DB.Where("user_id = ? AND author_id = ?", userID, author.ID).
		First(&existing).Error; err == nil {
		// Already following
		return nil
	}

	return db.DB.Create(&models.Follow{UserID: userID, AuthorID: author.ID}).Error
}

// UnfollowAuthor removes the relationship. Unfollowing someone you never
// followed is a no-op, not an error.
func UnfollowAuthor(userID uint, username string) error {
	author, err := resolveAuthor(username)
	if err != nil {
		return err
	}

	return db.DB.Where("user_id = ? AND author_id = ?", userID, author.ID).
		Delete(&models.Follow{}).Error
}

// IsFollowing reports whether userID follows authorID
func IsFollowing(userID, authorID uint) bool {
	var count int64
	db.DB.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count)
	return count > 0
}
