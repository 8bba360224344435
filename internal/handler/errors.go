package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"rent-bo-svc/internal/service"
	"rent-bo-svc/pkg/utils"
)

// respondServiceError maps a service failure onto the response envelope
func respondServiceError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		utils.BadRequestResponse(c, message, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.NotFoundResponse(c, message)
	default:
		utils.InternalServerErrorResponse(c, message, err)
	}
}

// periodQuery reads the month and year query params; either may be omitted
// and then falls back to the given default
func periodQuery(c *gin.Context, defMonth, defYear int) (int, int, error) {
	month, err := utils.GetOptionalIntQuery(c, "month")
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month parameter: %w", err)
	}
	year, err := utils.GetOptionalIntQuery(c, "year")
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year parameter: %w", err)
	}
	if month == nil {
		month = &defMonth
	}
	if year == nil {
		year = &defYear
	}
	return *month, *year, nil
}

func contentDisposition(filename string) string {
	return "attachment; filename=" + strconv.Quote(filename)
}
