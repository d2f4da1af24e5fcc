package fingerprint

import (
	"encoding/base64"

	"github.com/gin-gonic/gin"
)

// Generate derives a stable anonymous-identity token from the caller's
// network address and declared client string. It is a soft anti-abuse
// heuristic, not an auth mechanism: the same (ip, user-agent) pair always
// maps to the same token, and absent fields degrade to empty strings.
func Generate(ip, userAgent string) string {
	return base64.StdEncoding.EncodeToString([]byte(ip + userAgent))
}

// FromRequest derives the caller's fingerprint from a gin context
func FromRequest(c *gin.Context) string {
	return Generate(c.ClientIP(), c.GetHeader("User-Agent"))
}
