package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/techagentng/mediahub/errors"
	"github.com/techagentng/mediahub/models"
	"github.com/techagentng/mediahub/server/response"
	"github.com/techagentng/mediahub/services"
)

func (s *Server) handleGetAllTags() gin.HandlerFunc {
	return func(c *gin.Context) {
		tags, err := s.TagService.List(c.Request.Context())
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, http.StatusOK, tags)
	}
}

func (s *Server) handleGetTagsByMedia() gin.HandlerFunc {
	return func(c *gin.Context) {
		mediaID, err := paramID(c, "id")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		tags, err := s.TagService.ByMedia(c.Request.Context(), mediaID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, http.StatusOK, tags)
	}
}

func (s *Server) handleCreateTag() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateTagRequest
		if err := decode(c, &req); err != nil {
			response.HandleErrors(c, err)
			return
		}
		tag, err := s.TagService.Create(c.Request.Context(), req.TagName)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, http.StatusOK, tag)
	}
}

func (s *Server) handleAttachTag() gin.HandlerFunc {
	return func(c *gin.Context) {
		mediaID, err := paramID(c, "id")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		var req models.CreateTagRequest
		if err := decode(c, &req); err != nil {
			response.HandleErrors(c, err)
			return
		}
		media, err := s.TagService.Attach(c.Request.Context(), req.TagName, mediaID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, http.StatusOK, media)
	}
}

func (s *Server) handleDetachTag() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerFrom(c)
		if !ok {
			response.HandleErrors(c, errs.Unauthorized("Unauthorized"))
			return
		}
		mediaID, err := paramID(c, "id")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		tagID, err := paramID(c, "tag_id")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		if err := s.TagService.Detach(c.Request.Context(), tagID, mediaID, caller); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.Message(c, http.StatusOK, services.MsgTagDetached)
	}
}

// handleDeleteTag is restricted to admins.
func (s *Server) handleDeleteTag() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerFrom(c)
		if !ok || !caller.IsAdmin() {
			response.HandleErrors(c, errs.Unauthorized("Not authorized"))
			return
		}
		tagID, err := paramID(c, "id")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		if err := s.TagService.Delete(c.Request.Context(), tagID); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.Message(c, http.StatusOK, services.MsgTagDeleted)
	}
}
