package router

import (
	"conduit/internal/handlers"
	"conduit/internal/middleware"
	"conduit/internal/services"
	"conduit/internal/store"
	"conduit/internal/views"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Stores and collaborators
	users := store.NewUserStore()
	articles := store.NewArticleStore()
	favorites := store.NewFavoriteStore()
	follows := store.NewFollowStore()
	comments := store.NewCommentStore()
	tokens := services.NewTokenService()
	assembler := views.NewAssembler(favorites, follows)

	// Handlers
	userHandler := handlers.NewUserHandler(users, tokens)
	profileHandler := handlers.NewProfileHandler(users, follows, assembler)
	articleHandler := handlers.NewArticleHandler(articles, favorites, follows, assembler)
	commentHandler := handlers.NewCommentHandler(articles, comments, assembler)
	tagHandler := handlers.NewTagHandler(articles)

	api := r.Group("/api")
	api.Use(middleware.LoadUser(tokens))

	// Public routes (viewer optional)
	api.POST("/users", userHandler.Register)
	api.POST("/users/login", userHandler.Login)
	api.GET("/profiles/:username", profileHandler.Get)
	api.GET("/articles", articleHandler.List)
	api.GET("/articles/:slug", articleHandler.Get)
	api.GET("/articles/:slug/comments", commentHandler.List)
	api.GET("/tags", tagHandler.List)

	// Protected routes (viewer required)
	authorized := api.Group("")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/user", userHandler.Current)
		authorized.PUT("/user", userHandler.Update)

		authorized.POST("/profiles/:username/follow", profileHandler.Follow)
		authorized.DELETE("/profiles/:username/follow", profileHandler.Unfollow)

		authorized.GET("/articles/feed", articleHandler.Feed)
		authorized.POST("/articles", articleHandler.Create)
		authorized.PUT("/articles/:slug", articleHandler.Update)
		authorized.DELETE("/articles/:slug", articleHandler.Delete)

		authorized.POST("/articles/:slug/favorite", articleHandler.Favorite)
		authorized.DELETE("/articles/:slug/favorite", articleHandler.Unfavorite)

		authorized.POST("/articles/:slug/comments", commentHandler.Create)
		authorized.DELETE("/articles/:slug/comments/:id", commentHandler.Delete)
	}
}
