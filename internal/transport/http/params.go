package http

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// pathID parses the :id path parameter. Non-numeric and non-positive
// values are reported as invalid.
func pathID(c *gin.Context, invalid error) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, invalid
	}
	return id, nil
}
