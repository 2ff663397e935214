package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/jwalitptl/medidesk-api/pkg/errors"
	"github.com/jwalitptl/medidesk-api/pkg/validator"
)

// RoleGuard returns middleware admitting only the given roles. With no roles
// every authenticated caller is admitted.
type RoleGuard func(roles ...string) gin.HandlerFunc

// AllowAll is a RoleGuard that admits every request.
func AllowAll(...string) gin.HandlerFunc {
	return func(c *gin.Context) { c.Next() }
}

// BindJSON decodes the body into obj and writes a 400 on failure.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		RespondError(c, validator.TranslateBindError(err))
		return false
	}
	return true
}

// ParseID reads the :id path parameter and writes a 400 when it is not a positive integer.
func ParseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, apperrors.BadRequest("Invalid id", err))
		return 0, false
	}
	return id, true
}
