package models

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

type Rating struct {
	RatingID    uint      `json:"rating_id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_ratings_user_media"`
	MediaID     uint      `json:"media_id" gorm:"not null;uniqueIndex:idx_ratings_user_media;index"`
	RatingValue int       `json:"rating_value" gorm:"not null;check:rating_value >= 1 AND rating_value <= 5"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Rating) TableName() string {
	return "ratings"
}

type CreateRatingRequest struct {
	MediaID     uint `json:"media_id" binding:"required"`
	RatingValue int  `json:"rating_value" binding:"required,min=1,max=5"`
}
