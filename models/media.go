package models

import "time"

// MediaItem is an uploaded file record. Filename is stored without the
// upload base URL; Thumbnail is never stored.
type MediaItem struct {
	MediaID     uint      `json:"media_id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	Filename    string    `json:"filename" gorm:"not null"`
	Thumbnail   string    `json:"thumbnail,omitempty" gorm:"-"`
	Filesize    int64     `json:"filesize" gorm:"not null"`
	MediaType   string    `json:"media_type" gorm:"not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (MediaItem) TableName() string {
	return "media_items"
}

// RankedMediaItem is one row of an aggregate view. Only the counter that
// belongs to the view it was read from is set.
type RankedMediaItem struct {
	MediaItem
	LikesCount    *int64   `json:"likes_count,omitempty"`
	CommentsCount *int64   `json:"comments_count,omitempty"`
	AverageRating *float64 `json:"average_rating,omitempty"`
}

type CreateMediaRequest struct {
	Title       string `json:"title" binding:"required" conform:"trim"`
	Description string `json:"description" binding:"required" conform:"trim"`
	Filename    string `json:"filename" binding:"required" conform:"trim"`
	MediaType   string `json:"media_type" binding:"required" conform:"trim"`
	Filesize    int64  `json:"filesize" binding:"required,gt=0"`
}

// UpdateMediaRequest only carries the mutable fields.
type UpdateMediaRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}
