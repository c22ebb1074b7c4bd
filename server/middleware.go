package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	errs "github.com/techagentng/mediahub/errors"
	"github.com/techagentng/mediahub/models"
	"github.com/techagentng/mediahub/policy"
	"github.com/techagentng/mediahub/server/response"
	"github.com/techagentng/mediahub/services/jwt"
)

const (
	ctxUserID      = "userID"
	ctxRole        = "role"
	ctxAccessToken = "access_token"
	ctxRequestID   = "request_id"

	headerRequestID = "X-Request-ID"
)

// Authorize validates the bearer token and stores the caller identity and
// the raw token on the context.
func (s *Server) Authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken := getTokenFromHeader(c)
		if accessToken == "" {
			respondAndAbort(c, errs.Unauthorized("Unauthorized"))
			return
		}

		accessClaims, err := jwt.ValidateAndGetClaims(accessToken, s.Config.JWTSecret)
		if err != nil {
			respondAndAbort(c, errs.Wrap(errs.KindUnauthorized, "Unauthorized", err))
			return
		}

		userID, levelName, err := jwt.Identity(accessClaims)
		if err != nil {
			respondAndAbort(c, errs.Wrap(errs.KindUnauthorized, "Unauthorized", err))
			return
		}
		if levelName == "" {
			levelName = models.RoleUser
		}

		c.Set(ctxUserID, userID)
		c.Set(ctxRole, levelName)
		c.Set(ctxAccessToken, accessToken)
		c.Next()
	}
}

// respondAndAbort writes err and aborts the Context
func respondAndAbort(c *gin.Context, err error) {
	response.HandleErrors(c, err)
	c.Abort()
}

// getTokenFromHeader returns the token string in the authorization header
func getTokenFromHeader(c *gin.Context) string {
	authHeader := c.Request.Header.Get("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}

// callerFrom reads the identity Authorize attached to the context.
func callerFrom(c *gin.Context) (policy.Caller, bool) {
	userID, ok := c.Get(ctxUserID)
	if !ok {
		return policy.Caller{}, false
	}
	id, ok := userID.(uint)
	if !ok {
		return policy.Caller{}, false
	}
	return policy.Caller{UserID: id, Role: c.GetString(ctxRole)}, true
}

func accessToken(c *gin.Context) string {
	return c.GetString(ctxAccessToken)
}

// requestID tags every request with an id taken from X-Request-ID or
// freshly generated.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

// accessLog writes one line per request.
func accessLog(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		event := log.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			event = log.Error()
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}
		event.
			Str("request_id", c.GetString(ctxRequestID)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

// limitMutations bounds how many writes one caller may issue per window.
// It must run after Authorize.
func (s *Server) limitMutations(store ratelimit.Store) gin.HandlerFunc {
	mw := ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: rateLimited,
		KeyFunc:      rateLimitKey,
	})
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		mw(c)
	}
}

func rateLimitKey(c *gin.Context) string {
	if caller, ok := callerFrom(c); ok {
		return "user:" + strconv.FormatUint(uint64(caller.UserID), 10)
	}
	return "ip:" + c.ClientIP()
}

func rateLimited(c *gin.Context, info ratelimit.Info) {
	c.Header("Retry-After", fmt.Sprintf("%.0f", time.Until(info.ResetTime).Seconds()))
	response.Message(c, http.StatusTooManyRequests, "Too many requests. Try again in "+time.Until(info.ResetTime).Round(time.Second).String())
}
