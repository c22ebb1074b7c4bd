package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/techagentng/mediahub/errors"
	"github.com/techagentng/mediahub/models"
	"github.com/techagentng/mediahub/server/response"
	"github.com/techagentng/mediahub/services"
)

func (s *Server) handleGetAllLikes() gin.HandlerFunc {
	return func(c *gin.Context) {
		likes, err := s.LikeService.List(c.Request.Context())
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, http.StatusOK, likes)
	}
}

func (s *Server) handleGetLikesByMedia() gin.HandlerFunc {
	return func(c *gin.Context) {
		mediaID, err := paramID(c, "id")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		likes, err := s.LikeService.ByMedia(c.Request.Context(), mediaID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, http.StatusOK, likes)
	}
}

// handleGetMyLikeForMedia returns the caller's like on one media item.
func (s *Server) handleGetMyLikeForMedia() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerFrom(c)
		if !ok {
			response.HandleErrors(c, errs.Unauthorized("Unauthorized"))
			return
		}
		mediaID, err := paramID(c, "media_id")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		like, err := s.LikeService.ByMediaAndUser(c.Request.Context(), mediaID, caller.UserID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, http.StatusOK, like)
	}
}

func (s *Server) handleGetLikesByUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := paramID(c, "id")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		likes, err := s.LikeService.ByUser(c.Request.Context(), userID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, http.StatusOK, likes)
	}
}

func (s *Server) handleCountLikes() gin.HandlerFunc {
	return func(c *gin.Context) {
		mediaID, err := paramID(c, "id")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		count, err := s.LikeService.Count(c.Request.Context(), mediaID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, http.StatusOK, gin.H{"count": count})
	}
}

func (s *Server) handleCreateLike() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerFrom(c)
		if !ok {
			response.HandleErrors(c, errs.Unauthorized("Unauthorized"))
			return
		}
		var req models.CreateLikeRequest
		if err := decode(c, &req); err != nil {
			response.HandleErrors(c, err)
			return
		}
		like, err := s.LikeService.Create(c.Request.Context(), caller.UserID, &req)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, http.StatusOK, like)
	}
}

func (s *Server) handleDeleteLike() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerFrom(c)
		if !ok {
			response.HandleErrors(c, errs.Unauthorized("Unauthorized"))
			return
		}
		likeID, err := paramID(c, "id")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		if err := s.LikeService.Delete(c.Request.Context(), likeID, caller); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.Message(c, http.StatusOK, services.MsgLikeDeleted)
	}
}
