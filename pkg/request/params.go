package request

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// UintParam parses a positive integer path parameter.
func UintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// UintQuery parses an optional positive integer query parameter. A missing
// parameter yields (0, true).
func UintQuery(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
