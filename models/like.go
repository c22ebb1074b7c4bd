package models

import "time"

// Like represents a user's like on a media item.
// The combination of UserID and MediaID must be unique.
type Like struct {
	LikeID    uint      `json:"like_id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_likes_user_media"`
	MediaID   uint      `json:"media_id" gorm:"not null;uniqueIndex:idx_likes_user_media;index"`
	CreatedAt time.Time `json:"created_at"`
}

func (Like) TableName() string {
	return "likes"
}

type CreateLikeRequest struct {
	MediaID uint `json:"media_id" binding:"required"`
}
