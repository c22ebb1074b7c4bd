package models

type Tag struct {
	TagID   uint   `json:"tag_id" gorm:"primaryKey"`
	TagName string `json:"tag_name" gorm:"not null;uniqueIndex"`
}

func (Tag) TableName() string {
	return "tags"
}

// MediaItemTag links a tag to a media item. The surrogate key means the
// same pair may be attached more than once.
type MediaItemTag struct {
	ID      uint `json:"-" gorm:"primaryKey"`
	TagID   uint `json:"tag_id" gorm:"not null;index"`
	MediaID uint `json:"media_id" gorm:"not null;index"`
}

func (MediaItemTag) TableName() string {
	return "media_item_tags"
}

// TagResult is a tag as seen through one of its media associations.
type TagResult struct {
	TagID   uint   `json:"tag_id"`
	TagName string `json:"tag_name"`
	MediaID uint   `json:"media_id"`
}

type CreateTagRequest struct {
	TagName string `json:"tag_name" binding:"required" conform:"trim"`
}
