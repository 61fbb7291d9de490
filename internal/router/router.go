package router

import (
	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
	"inkwell/internal/storage"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, images storage.ImageStore) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	postHandler := handlers.NewPostHandler(images)
	followHandler := handlers.NewFollowHandler()

	// Public routes
	r.GET("/", postHandler.Index)                      // Global feed, cached
	r.GET("/group/:slug", postHandler.GroupList)       // Posts of one group
	r.GET("/profile/:username", postHandler.Profile)   // Posts of one author
	r.GET("/posts/:id", postHandler.Detail)            // Post page with comments

	r.GET("/signup", authHandler.ShowSignup)
	r.POST("/signup", authHandler.Signup)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// Protected routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/create", postHandler.ShowCreate)
		authorized.POST("/create", postHandler.Create)
		authorized.GET("/posts/:id/edit", postHandler.ShowEdit)
		authorized.POST("/posts/:id/edit", postHandler.Update)
		authorized.POST("/posts/:id/comment", postHandler.AddComment)

		authorized.GET("/follow", followHandler.Feed)
		authorized.POST("/profile/:username/follow", followHandler.Follow)
		authorized.POST("/profile/:username/unfollow", followHandler.Unfollow)
	}
}
