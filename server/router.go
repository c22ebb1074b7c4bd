package server

import (
	"os"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		r.Use(requestID())
		s.defineRoutes(r)
		return r
	}
	if s.Config.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(requestID())
	r.Use(accessLog(s.Log))
	r.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", headerRequestID},
		ExposeHeaders:    []string{headerRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if origins := s.Config.Origins(); len(origins) > 0 {
		corsConfig.AllowOrigins = origins
	} else {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	r.Use(cors.New(corsConfig))
	s.defineRoutes(r)

	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  s.Config.RateLimitWindow,
		Limit: s.Config.RateLimit,
	})

	apirouter := router.Group("/api/v1")
	apirouter.GET("/health", s.handleHealth())
	apirouter.GET("/ws", s.handleMediaEvents())

	apirouter.GET("/media", s.handleGetAllMedia())
	apirouter.GET("/media/:id", s.handleGetMediaByID())
	apirouter.GET("/media/mostliked", s.handleMostLiked())
	apirouter.GET("/media/mostcommented", s.handleMostCommented())
	apirouter.GET("/media/highestrated", s.handleHighestRated())
	apirouter.GET("/media/bytag/:tag", s.handleGetMediaByTag())

	apirouter.GET("/likes", s.handleGetAllLikes())
	apirouter.GET("/likes/bymedia/:id", s.handleGetLikesByMedia())
	apirouter.GET("/likes/byuser/:id", s.handleGetLikesByUser())
	apirouter.GET("/likes/count/:id", s.handleCountLikes())

	apirouter.GET("/comments", s.handleGetAllComments())
	apirouter.GET("/comments/:id", s.handleGetComment())
	apirouter.GET("/comments/bymedia/:id", s.handleGetCommentsByMedia())
	apirouter.GET("/comments/count/:id", s.handleCountComments())

	apirouter.GET("/ratings", s.handleGetAllRatings())
	apirouter.GET("/ratings/bymedia/:id", s.handleGetRatingsByMedia())
	apirouter.GET("/ratings/byuser/:id", s.handleGetRatingsByUser())
	apirouter.GET("/ratings/average/:id", s.handleAverageRating())

	apirouter.GET("/tags", s.handleGetAllTags())
	apirouter.GET("/tags/bymedia/:id", s.handleGetTagsByMedia())
	apirouter.GET("/tags/bytag/:tag_id", s.handleGetMediaByTagID())

	authorized := apirouter.Group("/")
	authorized.Use(s.Authorize())
	authorized.Use(s.limitMutations(store))

	authorized.POST("/media", s.handleCreateMedia())
	authorized.PUT("/media/:id", s.handleUpdateMedia())
	authorized.DELETE("/media/:id", s.handleDeleteMedia())

	authorized.GET("/likes/bymedia/user/:media_id", s.handleGetMyLikeForMedia())
	authorized.POST("/likes", s.handleCreateLike())
	authorized.DELETE("/likes/:id", s.handleDeleteLike())

	authorized.GET("/comments/byuser", s.handleGetMyComments())
	authorized.POST("/comments", s.handleCreateComment())
	authorized.PUT("/comments/:id", s.handleUpdateComment())
	authorized.DELETE("/comments/:id", s.handleDeleteComment())

	authorized.POST("/ratings", s.handleCreateRating())
	authorized.DELETE("/ratings/:id", s.handleDeleteRating())

	authorized.POST("/tags", s.handleCreateTag())
	authorized.POST("/tags/bymedia/:id", s.handleAttachTag())
	authorized.DELETE("/tags/bymedia/:id/:tag_id", s.handleDetachTag())
	authorized.DELETE("/tags/:id", s.handleDeleteTag())
}
