package http

import (
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/gin-gonic/contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
	"github.com/satori/go.uuid"
	"github.com/tryanzu/cart/modules/cart"
	"github.com/tryanzu/cart/modules/exceptions"
)

var log = logging.MustGetLogger("http")

// Identity resolves the caller. Every client gets a session id kept in its
// gin session; a valid Bearer token adds the user id.
func Identity(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sid string

		bucket := sessions.Default(c)
		session := bucket.Get("session_id")
		if id, ok := session.(string); ok && id != "" {
			sid = id
		} else {
			sid = uuid.NewV4().String()
			bucket.Set("session_id", sid)
			if err := bucket.Save(); err != nil {
				log.Errorf("saving session: %v", err)
				c.AbortWithStatusJSON(500, gin.H{"status": "error", "message": "Could not start a session"})
				return
			}
		}

		// Use same session id anywhere
		c.Set("session_id", sid)

		header := c.Request.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}

		raw := strings.TrimSpace(header[len("Bearer "):])
		userID, err := ParseToken(secret, raw)
		switch {
		case err == nil:
		case errors.Is(err, ErrTokenExpired):
			c.AbortWithStatusJSON(401, gin.H{"status": "error", "message": "Token expired, request new one"})
			return
		default:
			c.AbortWithStatusJSON(401, gin.H{"status": "error", "message": "Error parsing token, will be notified"})
			return
		}

		// Set the token for further usage
		c.Set("token", raw)
		c.Set("user_id", userID)
		c.Next()
	}
}

// IdentityFrom returns what Identity resolved for this request.
func IdentityFrom(c *gin.Context) cart.Identity {
	return cart.Identity{
		SessionID: c.GetString("session_id"),
		UserID:    c.GetString("user_id"),
	}
}

// ErrorTracking turns panics into 500 responses and reports them.
func ErrorTracking(reporter *exceptions.ExceptionsModule, debug bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rval := recover()
			if rval == nil {
				return
			}
			if err, ok := rval.(*net.OpError); ok {
				if err.Err == syscall.EPIPE || strings.Contains(err.Error(), "write: broken pipe") {
					return
				}
			}

			log.Errorf("[%s %s] %v", c.Request.Method, c.Request.URL.Path, rval)
			if !debug {
				reporter.Report(rval, map[string]string{"path": c.FullPath()})
			}
			c.AbortWithStatusJSON(500, gin.H{"status": "error", "message": "Internal error, will be notified"})
		}()

		c.Next()
	}
}

func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS,PUT,DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Requested-With, Content-Length, Accept-Encoding, Authorization")
		c.Writer.Header().Set("Access-Control-Max-Age", "3600")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	}
}
