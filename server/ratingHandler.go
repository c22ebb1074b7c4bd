package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/techagentng/mediahub/errors"
	"github.com/techagentng/mediahub/models"
	"github.com/techagentng/mediahub/server/response"
	"github.com/techagentng/mediahub/services"
)

func (s *Server) handleGetAllRatings() gin.HandlerFunc {
	return func(c *gin.Context) {
		ratings, err := s.RatingService.List(c.Request.Context())
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, http.StatusOK, ratings)
	}
}

func (s *Server) handleGetRatingsByMedia() gin.HandlerFunc {
	return func(c *gin.Context) {
		mediaID, err := paramID(c, "id")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		ratings, err := s.RatingService.ByMedia(c.Request.Context(), mediaID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, http.StatusOK, ratings)
	}
}

func (s *Server) handleGetRatingsByUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := paramID(c, "id")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		ratings, err := s.RatingService.ByUser(c.Request.Context(), userID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, http.StatusOK, ratings)
	}
}

func (s *Server) handleAverageRating() gin.HandlerFunc {
	return func(c *gin.Context) {
		mediaID, err := paramID(c, "id")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		avg, err := s.RatingService.Average(c.Request.Context(), mediaID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, http.StatusOK, gin.H{"media_id": mediaID, "average_rating": avg})
	}
}

func (s *Server) handleCreateRating() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerFrom(c)
		if !ok {
			response.HandleErrors(c, errs.Unauthorized("Unauthorized"))
			return
		}
		var req models.CreateRatingRequest
		if err := decode(c, &req); err != nil {
			response.HandleErrors(c, err)
			return
		}
		rating, err := s.RatingService.Create(c.Request.Context(), caller.UserID, &req)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, http.StatusOK, rating)
	}
}

func (s *Server) handleDeleteRating() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerFrom(c)
		if !ok {
			response.HandleErrors(c, errs.Unauthorized("Unauthorized"))
			return
		}
		ratingID, err := paramID(c, "id")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		if err := s.RatingService.Delete(c.Request.Context(), ratingID, caller); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.Message(c, http.StatusOK, services.MsgRatingDeleted)
	}
}
