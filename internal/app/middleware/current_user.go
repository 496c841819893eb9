package middleware

import (
	"contentgenius/internal/app/ds"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "current_user"

func setCurrentUser(c *gin.Context, user *ds.User) {
	c.Set(currentUserKey, user)
}

// CurrentUser returns the account authenticated by WithAuthCheck, or nil on
// routes that are not behind it.
func CurrentUser(c *gin.Context) *ds.User {
	if value, exists := c.Get(currentUserKey); exists {
		if user, ok := value.(*ds.User); ok {
			return user
		}
	}
	return nil
}

// OwnerOrAdmin allows the owner of a resource and any administrator.
func OwnerOrAdmin(actor *ds.User, ownerID uint) bool {
	return actor != nil && (actor.IsAdmin || actor.ID == ownerID)
}

// OwnerOnly allows the owner of a resource, administrators included only
// when they own it.
func OwnerOnly(actor *ds.User, ownerID uint) bool {
	return actor != nil && actor.ID == ownerID
}
