package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apiError "github.com/techagentng/bookloop/errors"
)

// JSON writes the standard response envelope. Error responses get
// success=false and the error string; success responses carry the data.
func JSON(c *gin.Context, message string, status int, data interface{}, err error) {
	errMessage := ""
	if err != nil {
		errMessage = err.Error()
		if apiErr, ok := err.(*apiError.Error); ok {
			errMessage = apiErr.Message
		}
	}

	responsedata := gin.H{
		"success": err == nil && status < http.StatusBadRequest,
		"message": message,
		"data":    data,
		"errors":  errMessage,
		"status":  http.StatusText(status),
	}

	c.JSON(status, responsedata)
}

// HandleErrors resolves a service error to the right status code before
// writing the envelope.
func HandleErrors(c *gin.Context, err error) {
	if apiErr, ok := err.(*apiError.Error); ok {
		JSON(c, "", apiErr.Status, nil, apiErr)
		return
	}
	JSON(c, "", http.StatusInternalServerError, nil, err)
}
