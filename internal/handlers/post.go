package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"inkwell/internal/db"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/services"
	"inkwell/internal/storage"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
)

// indexCacheTTL bounds staleness of the global feed. Only the index is
// cached, group/profile/follow feeds are always live.
const indexCacheTTL = 20 * time.Second

type PostHandler struct {
	images storage.ImageStore
}

// NewPostHandler wires an optional image store. A nil store disables
// attachments but leaves everything else working.
func NewPostHandler(images storage.ImageStore) *PostHandler {
	return &PostHandler{images: images}
}

// pageParam reads ?page=, defaulting to the first page. Out-of-range values
// are handed to the feed as-is, it answers them with an empty page.
func pageParam(c *gin.Context) int {
	page := 1
	if p := c.Query("page"); p != "" {
		page = utils.StringToInt(p)
	}
	return page
}

// sidebarGroups loads the group list shown on listing pages
func sidebarGroups() []models.Group {
	var groups []models.Group
	db.DB.Order("id ASC").Find(&groups)
	return groups
}

// groupIDForm reads the optional group select. Empty and "0" mean no group.
func groupIDForm(c *gin.Context) *uint {
	v := c.PostForm("group_id")
	if v == "" || v == "0" {
		return nil
	}
	id := utils.StringToUint(v)
	return &id
}

// groupIDValue flattens an optional group id for templates, 0 means none
func groupIDValue(id *uint) uint {
	if id == nil {
		return 0
	}
	return *id
}

// uploadImage pushes an attached file to the image store, if any. Returns the
// stored URL, "" when no file came with the form. A form without the field is
// fine, a multipart body that fails to parse is not.
func (h *PostHandler) uploadImage(c *gin.Context) (string, error) {
	file, header, err := c.Request.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read image field: %w", err)
	}
	defer file.Close()

	if h.images == nil {
		return "", fmt.Errorf("image uploads are not enabled")
	}

	return h.images.UploadImage(c.Request.Context(), header.Filename, file, header.Size)
}

// teeWriter copies the response body while it streams to the client, so a
// rendered page can be cached exactly as it went out
type teeWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *teeWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *teeWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Index is the global feed. The rendered bytes are cached by request path for
// a short interval, so repeated reads within the window get the identical
// page even though relative timestamps keep aging underneath.
func (h *PostHandler) Index(c *gin.Context) {
	cacheKey := "feed:index:" + c.Request.URL.RequestURI()
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if body, ok := cached.([]byte); ok {
			c.Data(http.StatusOK, "text/html; charset=utf-8", body)
			return
		}
	}

	feedPage, err := services.GlobalFeed(pageParam(c))
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Failed to load the feed")
		return
	}

	tee := &teeWriter{ResponseWriter: c.Writer}
	c.Writer = tee
	Render(c, http.StatusOK, "feed/index.html", gin.H{
		"Title":  "Latest posts",
		"Page":   feedPage,
		"Groups": sidebarGroups(),
		"Active": "index",
	})
	c.Writer = tee.ResponseWriter

	utils.GetCache().Set(cacheKey, tee.body.Bytes(), indexCacheTTL)
}

// GroupList shows one group's posts, resolved by slug
func (h *PostHandler) GroupList(c *gin.Context) {
	slug := c.Param("slug")

	group, feedPage, err := services.GroupFeed(slug, pageParam(c))
	if errors.Is(err, services.ErrNotFound) {
		NotFoundPage(c, "Group")
		return
	}
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Failed to load the group")
		return
	}

	Render(c, http.StatusOK, "feed/group.html", gin.H{
		"Title":  group.Title,
		"Group":  group,
		"Page":   feedPage,
		"Groups": sidebarGroups(),
		"Active": "group",
	})
}

// Profile shows an author's posts plus their total count and, for logged-in
// viewers, whether they follow the author
func (h *PostHandler) Profile(c *gin.Context) {
	username := c.Param("username")

	viewerID := uint(0)
	if user := middleware.CurrentUser(c); user != nil {
		viewerID = user.ID
	}

	author, feedPage, following, err := services.ProfileFeed(username, viewerID, pageParam(c))
	if errors.Is(err, services.ErrNotFound) {
		NotFoundPage(c, "User")
		return
	}
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Failed to load the profile")
		return
	}

	Render(c, http.StatusOK, "feed/profile.html", gin.H{
		"Title":     author.Username,
		"Author":    author,
		"Page":      feedPage,
		"PostCount": feedPage.TotalCount,
		"Following": following,
		"IsSelf":    viewerID == author.ID,
	})
}

// Detail is the post page with its comments and the comment form
func (h *PostHandler) Detail(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	post, postCount, comments, err := services.PostDetail(id)
	if errors.Is(err, services.ErrNotFound) {
		NotFoundPage(c, "Post")
		return
	}
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Failed to load the post")
		return
	}

	canEdit := false
	if user := middleware.CurrentUser(c); user != nil {
		canEdit = user.ID == post.AuthorID
	}

	Render(c, http.StatusOK, "post/detail.html", gin.H{
		"Title":       "Post by " + post.Author.Username,
		"Post":        post,
		"PostHTML":    utils.RenderMarkdown(post.Text),
		"PostCount":   postCount,
		"Comments":    comments,
		"CanEdit":     canEdit,
		"CommentText": "",
	})
}

func (h *PostHandler) ShowCreate(c *gin.Context) {
	Render(c, http.StatusOK, "post/create.html", gin.H{
		"Title":   "New post",
		"Groups":  sidebarGroups(),
		"IsEdit":  false,
		"Text":    "",
		"GroupID": uint(0),
	})
}

func (h *PostHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	text := c.PostForm("text")
	groupID := groupIDForm(c)

	form := gin.H{
		"Title":   "New post",
		"Groups":  sidebarGroups(),
		"IsEdit":  false,
		"Text":    text,
		"GroupID": groupIDValue(groupID),
	}

	imageURL, err := h.uploadImage(c)
	if err != nil {
		form["Error"] = "Failed to store the image, try again without it"
		Render(c, http.StatusBadRequest, "post/create.html", form)
		return
	}

	if _, err := services.CreatePost(user.ID, text, groupID, imageURL); err != nil {
		if services.IsValidation(err) {
			form["Error"] = err.Error()
			Render(c, http.StatusBadRequest, "post/create.html", form)
			return
		}
		form["Error"] = "Failed to save the post"
		Render(c, http.StatusInternalServerError, "post/create.html", form)
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+user.Username)
}

func (h *PostHandler) ShowEdit(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	id := utils.StringToUint(c.Param("id"))

	post, _, _, err := services.PostDetail(id)
	if errors.Is(err, services.ErrNotFound) {
		NotFoundPage(c, "Post")
		return
	}
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Failed to load the post")
		return
	}

	// Only the author edits; everyone else lands back on the post
	if post.AuthorID != user.ID {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", post.ID))
		return
	}

	Render(c, http.StatusOK, "post/edit.html", gin.H{
		"Title":   "Edit post",
		"Groups":  sidebarGroups(),
		"IsEdit":  true,
		"PostID":  post.ID,
		"Post":    post,
		"Text":    post.Text,
		"GroupID": groupIDValue(post.GroupID),
	})
}

func (h *PostHandler) Update(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	id := utils.StringToUint(c.Param("id"))

	text := c.PostForm("text")
	groupID := groupIDForm(c)
	removeImage := c.PostForm("remove_image") != ""

	form := gin.H{
		"Title":   "Edit post",
		"Groups":  sidebarGroups(),
		"IsEdit":  true,
		"PostID":  id,
		"Text":    text,
		"GroupID": groupIDValue(groupID),
	}

	imageURL, err := h.uploadImage(c)
	if err != nil {
		form["Error"] = "Failed to store the image, try again without it"
		Render(c, http.StatusBadRequest, "post/edit.html", form)
		return
	}

	_, err = services.UpdatePost(id, user.ID, text, groupID, imageURL, removeImage)
	switch {
	case errors.Is(err, services.ErrNotFound):
		NotFoundPage(c, "Post")
	case errors.Is(err, services.ErrPermissionDenied):
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", id))
	case services.IsValidation(err):
		form["Error"] = err.Error()
		Render(c, http.StatusBadRequest, "post/edit.html", form)
	case err != nil:
		form["Error"] = "Failed to save the post"
		Render(c, http.StatusInternalServerError, "post/edit.html", form)
	default:
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", id))
	}
}

// AddComment creates a comment under a post. Guests never reach this handler,
// AuthRequired bounces them to the login page first.
func (h *PostHandler) AddComment(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	id := utils.StringToUint(c.Param("id"))

	text := c.PostForm("text")

	_, err := services.AddComment(id, user.ID, text)
	switch {
	case errors.Is(err, services.ErrNotFound):
		NotFoundPage(c, "Post")
	case services.IsValidation(err):
		// Re-show the post page with the rejected input preserved
		post, postCount, comments, derr := services.PostDetail(id)
		if derr != nil {
			NotFoundPage(c, "Post")
			return
		}
		Render(c, http.StatusBadRequest, "post/detail.html", gin.H{
			"Title":       "Post by " + post.Author.Username,
			"Post":        post,
			"PostHTML":    utils.RenderMarkdown(post.Text),
			"PostCount":   postCount,
			"Comments":    comments,
			"CanEdit":     user.ID == post.AuthorID,
			"Error":       err.Error(),
			"CommentText": text,
		})
	case err != nil:
		RenderError(c, http.StatusInternalServerError, "Failed to save the comment")
	default:
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", id))
	}
}
