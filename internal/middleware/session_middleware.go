package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys for guest session information
const (
	SessionIDKey     = "session_id"
	ViewportWidthKey = "viewport_width"
)

const (
	// SessionCookieName identifies the guest across requests.
	SessionCookieName = "paikari_session"

	// ViewportWidthHeader carries the client's viewport width in
	// logical pixels; it drives the cart drawer auto-open policy.
	ViewportWidthHeader = "X-Viewport-Width"

	sessionCookieMaxAge = 30 * 24 * 60 * 60 // 30 days
)

// SessionMiddleware assigns every guest a session ID cookie and
// captures the reported viewport width into the request context.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		sessionID, err := c.Cookie(SessionCookieName)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			c.SetCookie(SessionCookieName, sessionID, sessionCookieMaxAge, "/", "", false, true)
			log.Debug("New guest session started", map[string]interface{}{
				"session_id": sessionID,
			})
		}
		c.Set(SessionIDKey, sessionID)

		if header := c.GetHeader(ViewportWidthHeader); header != "" {
			if width, err := strconv.Atoi(header); err == nil && width > 0 {
				c.Set(ViewportWidthKey, width)
			} else {
				log.Debug("Ignoring malformed viewport width header", map[string]interface{}{
					"value": header,
				})
			}
		}

		c.Next()
	}
}

// GetSessionID retrieves the guest session ID from gin context
func GetSessionID(c *gin.Context) (string, bool) {
	sessionID := c.GetString(SessionIDKey)
	return sessionID, sessionID != ""
}

// GetViewportWidth retrieves the reported viewport width, if any
func GetViewportWidth(c *gin.Context) (int, bool) {
	if v, exists := c.Get(ViewportWidthKey); exists {
		if width, ok := v.(int); ok {
			return width, true
		}
	}
	return 0, false
}
