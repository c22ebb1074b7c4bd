package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/techagentng/mediahub/errors"
	"github.com/techagentng/mediahub/models"
	"github.com/techagentng/mediahub/server/response"
	"github.com/techagentng/mediahub/services"
)

func (s *Server) handleGetAllComments() gin.HandlerFunc {
	return func(c *gin.Context) {
		comments, err := s.CommentService.List(c.Request.Context())
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, http.StatusOK, comments)
	}
}

func (s *Server) handleGetComment() gin.HandlerFunc {
	return func(c *gin.Context) {
		commentID, err := paramID(c, "id")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		comment, err := s.CommentService.GetByID(c.Request.Context(), commentID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, http.StatusOK, comment)
	}
}

func (s *Server) handleGetCommentsByMedia() gin.HandlerFunc {
	return func(c *gin.Context) {
		mediaID, err := paramID(c, "id")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		comments, err := s.CommentService.ByMedia(c.Request.Context(), mediaID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, http.StatusOK, comments)
	}
}

// handleGetMyComments lists the caller's own comments.
func (s *Server) handleGetMyComments() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerFrom(c)
		if !ok {
			response.HandleErrors(c, errs.Unauthorized("Unauthorized"))
			return
		}
		comments, err := s.CommentService.ByUser(c.Request.Context(), caller.UserID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, http.StatusOK, comments)
	}
}

func (s *Server) handleCountComments() gin.HandlerFunc {
	return func(c *gin.Context) {
		mediaID, err := paramID(c, "id")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		count, err := s.CommentService.Count(c.Request.Context(), mediaID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, http.StatusOK, gin.H{"count": count})
	}
}

func (s *Server) handleCreateComment() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerFrom(c)
		if !ok {
			response.HandleErrors(c, errs.Unauthorized("Unauthorized"))
			return
		}
		var req models.CreateCommentRequest
		if err := decode(c, &req); err != nil {
			response.HandleErrors(c, err)
			return
		}
		comment, err := s.CommentService.Create(c.Request.Context(), caller.UserID, &req)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, http.StatusOK, comment)
	}
}

func (s *Server) handleUpdateComment() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerFrom(c)
		if !ok {
			response.HandleErrors(c, errs.Unauthorized("Unauthorized"))
			return
		}
		commentID, err := paramID(c, "id")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		var req models.UpdateCommentRequest
		if err := decode(c, &req); err != nil {
			response.HandleErrors(c, err)
			return
		}
		comment, err := s.CommentService.Update(c.Request.Context(), commentID, caller, &req)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, http.StatusOK, comment)
	}
}

func (s *Server) handleDeleteComment() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerFrom(c)
		if !ok {
			response.HandleErrors(c, errs.Unauthorized("Unauthorized"))
			return
		}
		commentID, err := paramID(c, "id")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		if err := s.CommentService.Delete(c.Request.Context(), commentID, caller); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.Message(c, http.StatusOK, services.MsgCommentDeleted)
	}
}
