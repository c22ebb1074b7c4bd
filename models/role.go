package models

const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)
