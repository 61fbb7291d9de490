package handlers

import (
	"errors"
	"net/http"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/services"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct{}

func NewFollowHandler() *FollowHandler {
	return &FollowHandler{}
}

// Feed lists the posts of every author the viewer follows
func (h *FollowHandler) Feed(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	feedPage, err := services.FollowFeed(user.ID, pageParam(c))
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Failed to load your feed")
		return
	}

	Render(c, http.StatusOK, "feed/follow.html", gin.H{
		"Title":  "Authors you follow",
		"Page":   feedPage,
		"Active": "follow",
	})
}

// Follow starts following the named author. Self-follows and duplicates are
// rejected quietly, the viewer just lands back on the profile.
func (h *FollowHandler) Follow(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	username := c.Param("username")

	err := services.FollowAuthor(user.ID, username)
	switch {
	case errors.Is(err, services.ErrNotFound):
		NotFoundPage(c, "User")
	case services.IsValidation(err):
		c.Redirect(http.StatusFound, "/profile/"+username)
	case err != nil:
		RenderError(c, http.StatusInternalServerError, "Failed to follow")
	default:
		c.Redirect(http.StatusFound, "/profile/"+username)
	}
}

// Unfollow removes the relationship, a no-op when it never existed
func (h *FollowHandler) Unfollow(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	username := c.Param("username")

	err := services.UnfollowAuthor(user.ID, username)
	switch {
	case errors.Is(err, services.ErrNotFound):
		NotFoundPage(c, "User")
	case err != nil:
		RenderError(c, http.StatusInternalServerError, "Failed to unfollow")
	default:
		c.Redirect(http.StatusFound, "/profile/"+username)
	}
}
