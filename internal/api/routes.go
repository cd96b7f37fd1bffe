package api

import (
	"github.com/gin-gonic/gin"

	"github.com/sarcaxticlarka/urbanmeet/internal/handlers"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	User         *handlers.UserHandler
	Group        *handlers.GroupHandler
	Event        *handlers.EventHandler
	Comment      *handlers.CommentHandler
	Notification *handlers.NotificationHandler
	Search       *handlers.SearchHandler
}

// RegisterRoutes wires every endpoint under /api. Reads are public,
// writes require a valid token.
func RegisterRoutes(r *gin.Engine, h *Handlers, mw *MiddlewareManager) {
	r.Use(mw.CORS())
	r.Use(mw.Logger())
	r.Use(mw.Async())
	// Recovery must sit below Async: its defer has to run on the same
	// goroutine as the handlers, or a panic unwinds into the pool instead.
	r.Use(mw.Recovery())

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", mw.RateLimiterByEndpoint("register"), h.Auth.Register)
		auth.POST("/login", mw.RateLimiterByEndpoint("login"), h.Auth.Login)
		auth.GET("/me", mw.JWTAuth(), h.Auth.Me)
		auth.GET("/check-email", h.Auth.CheckEmail)
		auth.GET("/password-strength", h.Auth.PasswordStrength)
		auth.POST("/forgot", mw.RateLimiterByEndpoint("login"), h.Auth.Forgot)
		auth.POST("/reset", h.Auth.Reset)
	}

	users := api.Group("/users")
	{
		users.GET("/me", mw.JWTAuth(), h.User.GetMe)
		users.PATCH("/me", mw.JWTAuth(), h.User.UpdateMe)
		users.POST("/:id/follow", mw.JWTAuth(), h.User.Follow)
		users.DELETE("/:id/follow", mw.JWTAuth(), h.User.Unfollow)
		users.GET("/:id/followers", h.User.Followers)
		users.GET("/:id/following", h.User.Following)
	}

	groups := api.Group("/groups")
	{
		groups.GET("", h.Group.List)
		groups.GET("/:id", h.Group.Get)
		groups.POST("", mw.JWTAuth(), h.Group.Create)
		groups.PATCH("/:id", mw.JWTAuth(), h.Group.Update)
		groups.DELETE("/:id", mw.JWTAuth(), h.Group.Delete)
		groups.POST("/:id/join", mw.JWTAuth(), h.Group.Join)
		groups.POST("/:id/leave", mw.JWTAuth(), h.Group.Leave)
		groups.GET("/:id/members", h.Group.Members)
	}

	events := api.Group("/events")
	{
		events.GET("", h.Event.List)
		events.GET("/:id", h.Event.Get)
		events.POST("", mw.JWTAuth(), h.Event.Create)
		events.PATCH("/:id", mw.JWTAuth(), h.Event.Update)
		events.DELETE("/:id", mw.JWTAuth(), h.Event.Delete)
		events.POST("/:id/rsvp", mw.JWTAuth(), h.Event.RSVP)
		events.DELETE("/:id/rsvp", mw.JWTAuth(), h.Event.UnRSVP)
		events.GET("/:id/attendees", h.Event.Attendees)
		events.GET("/:id/comments", h.Comment.List)
		events.POST("/:id/comments", mw.JWTAuth(), h.Comment.Create)
	}

	notifications := api.Group("/notifications", mw.JWTAuth())
	{
		notifications.GET("", h.Notification.List)
		notifications.GET("/unread-count", h.Notification.UnreadCount)
		notifications.PATCH("/:id/read", h.Notification.MarkRead)
		notifications.PATCH("/mark-all-read", h.Notification.MarkAllRead)
		notifications.DELETE("/:id", h.Notification.Delete)
	}

	api.GET("/search", h.Search.Search)
}
