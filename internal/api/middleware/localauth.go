package middleware

import (
	"github.com/gin-gonic/gin"
)

// LocalUserID is the fixed identity used when running off a local
// database file with no auth server.
const LocalUserID uint = 1

// LocalIdentity stands in for VerifyJWT in local mode: every request
// runs as the single local user.
func LocalIdentity() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(ContextKeyUserID, LocalUserID)
		ctx.Next()
	}
}
