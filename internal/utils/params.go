package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUUIDParam parses a UUID path parameter.
func GetUUIDParam(ctx *gin.Context, name string) (uuid.UUID, error) {
	value := ctx.Param(name)

	if value == "" {
		return uuid.Nil, errors.New(name + " is required")
	}

	id, err := uuid.Parse(value)

	if err != nil {
		return uuid.Nil, errors.New("invalid " + name)
	}

	return id, nil
}

// GetPageParams parses the page/size query parameters with the usual
// defaults (page 0, size 10).
func GetPageParams(ctx *gin.Context) (int, int, error) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "0"))

	if err != nil || page < 0 {
		return 0, 0, errors.New("invalid page")
	}

	size, err := strconv.Atoi(ctx.DefaultQuery("size", "10"))

	if err != nil || size < 1 {
		return 0, 0, errors.New("invalid size")
	}

	return page, size, nil
}
