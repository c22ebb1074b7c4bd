// Package response writes the JSON bodies of every API reply.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/techagentng/mediahub/errors"
)

// JSON writes data as the response body.
func JSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Message writes a {message} body.
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// HandleErrors reports err with the status of its kind. Unclassified
// errors become a generic 500 so store details never reach the client.
func HandleErrors(c *gin.Context, err error) {
	e, ok := errs.As(err)
	if !ok {
		_ = c.Error(err)
		Message(c, http.StatusInternalServerError, errs.ErrInternal.Message)
		return
	}
	if e.Err != nil {
		_ = c.Error(e.Err)
	}
	Message(c, e.Status(), e.Message)
}
