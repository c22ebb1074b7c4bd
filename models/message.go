package models

type MessageResponse struct {
	Message string `json:"message"`
}

type MediaResponse struct {
	Message string     `json:"message"`
	Media   *MediaItem `json:"media"`
}
