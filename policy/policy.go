// Package policy decides whether a caller may mutate a resource and turns
// that decision into query predicates, so the mutation's own filter is the
// enforcement point.
package policy

import (
	"github.com/techagentng/mediahub/models"
	"gorm.io/gorm"
)

// Caller is the authenticated identity attached to a request.
type Caller struct {
	UserID uint
	Role   string
}

func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// Permits reports whether c may mutate a resource owned by ownerID.
func Permits(c Caller, ownerID uint) bool {
	return c.IsAdmin() || (c.UserID != 0 && c.UserID == ownerID)
}

// OwnerScope restricts a statement to rows owned by c unless c is an admin.
func OwnerScope(c Caller) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if c.IsAdmin() {
			return db
		}
		return db.Where("user_id = ?", c.UserID)
	}
}

// OwnedBy restricts a statement to rows owned by userID with no admin
// override.
func OwnedBy(userID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}
