package models

import "time"

// Comment represents a user's comment on a media item
type Comment struct {
	CommentID   uint      `json:"comment_id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	MediaID     uint      `json:"media_id" gorm:"not null;index"`
	CommentText string    `json:"comment_text" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Comment) TableName() string {
	return "comments"
}

type CreateCommentRequest struct {
	MediaID     uint   `json:"media_id" binding:"required"`
	CommentText string `json:"comment_text" binding:"required" conform:"trim"`
}

type UpdateCommentRequest struct {
	CommentText string `json:"comment_text" binding:"required" conform:"trim"`
}
