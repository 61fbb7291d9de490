package handlers

import (
	"net/http"

	"inkwell/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Render helper to inject common variables like 'current user'. The payload
// is merged into a fresh map so cached render data is never mutated by a
// later request.
func Render(c *gin.Context, code int, name string, obj gin.H) {
	data := gin.H{}
	for k, v := range obj {
		data[k] = v
	}

	if user := middleware.CurrentUser(c); user != nil {
		data["CurrentUser"] = user
	}
	data["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, data)
}

// RenderError shows the error page
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message, "Title": "Error"})
}

// NotFoundPage is the catch-all for unresolved ids, slugs and usernames
func NotFoundPage(c *gin.Context, what string) {
	RenderError(c, http.StatusNotFound, what+" not found")
}
