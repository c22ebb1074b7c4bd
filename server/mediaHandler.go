package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/techagentng/mediahub/errors"
	"github.com/techagentng/mediahub/models"
	"github.com/techagentng/mediahub/server/response"
	"github.com/techagentng/mediahub/services"
)

func (s *Server) handleGetAllMedia() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := queryInt(c, "limit")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		offset, err := queryInt(c, "offset")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}

		media, err := s.MediaService.ListAll(c.Request.Context(), limit, offset)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, http.StatusOK, media)
	}
}

func (s *Server) handleGetMediaByID() gin.HandlerFunc {
	return func(c *gin.Context) {
		mediaID, err := paramID(c, "id")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		media, err := s.MediaService.GetByID(c.Request.Context(), mediaID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, http.StatusOK, media)
	}
}

func (s *Server) handleGetMediaByTag() gin.HandlerFunc {
	return func(c *gin.Context) {
		media, err := s.MediaService.ListByTag(c.Request.Context(), c.Param("tag"))
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, http.StatusOK, media)
	}
}

func (s *Server) handleGetMediaByTagID() gin.HandlerFunc {
	return func(c *gin.Context) {
		tagID, err := paramID(c, "tag_id")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		media, err := s.MediaService.ListByTagID(c.Request.Context(), tagID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, http.StatusOK, media)
	}
}

func (s *Server) handleMostLiked() gin.HandlerFunc {
	return s.handleRanked(s.MediaService.MostLiked)
}

func (s *Server) handleMostCommented() gin.HandlerFunc {
	return s.handleRanked(s.MediaService.MostCommented)
}

func (s *Server) handleHighestRated() gin.HandlerFunc {
	return s.handleRanked(s.MediaService.HighestRated)
}

func (s *Server) handleRanked(read func(ctx context.Context) (*models.RankedMediaItem, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		media, err := read(c.Request.Context())
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, http.StatusOK, media)
	}
}

func (s *Server) handleCreateMedia() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerFrom(c)
		if !ok {
			response.HandleErrors(c, errs.Unauthorized("Unauthorized"))
			return
		}

		var req models.CreateMediaRequest
		if err := decode(c, &req); err != nil {
			response.HandleErrors(c, err)
			return
		}

		media, err := s.MediaService.Create(c.Request.Context(), caller.UserID, &req)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, http.StatusOK, models.MediaResponse{Message: "Media created", Media: media})
	}
}

func (s *Server) handleUpdateMedia() gin.HandlerFunc {
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

		var req models.UpdateMediaRequest
		if err := decode(c, &req); err != nil {
			response.HandleErrors(c, err)
			return
		}

		media, err := s.MediaService.Update(c.Request.Context(), mediaID, caller, &req)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, http.StatusOK, models.MediaResponse{Message: "Media updated", Media: media})
	}
}

func (s *Server) handleDeleteMedia() gin.HandlerFunc {
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

		if err := s.MediaService.Delete(c.Request.Context(), mediaID, caller, accessToken(c)); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.Message(c, http.StatusOK, services.MsgMediaDeleted)
	}
}
