package httputil

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseID reads a positive integer id from the named path parameter.
func ParseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
