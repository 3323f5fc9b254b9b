package middleware

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/gradtracker/internal/app/models/dto"
)

// BindJSON decodes the JSON body into obj. An empty body leaves obj
// untouched so that field validation reports what is missing. On a
// decoding failure the error response is written and false returned.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		if errors.Is(err, io.EOF) {
			return true
		}
		RespondBindError(c, err)
		return false
	}
	return true
}

// BindQuery binds query string parameters into obj
func BindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		RespondBindError(c, err)
		return false
	}
	return true
}

// RespondBindError writes the response for a request that could not be decoded
func RespondBindError(c *gin.Context, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		RespondError(c, ErrPayloadTooLarge(maxBytesErr.Limit))
		return
	}

	RespondError(c, APIError{
		Status: http.StatusBadRequest,
		Detail: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request body").WithDetails(err.Error()),
	})
}
