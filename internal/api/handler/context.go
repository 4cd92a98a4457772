package handler

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deadeye/laserworks/internal/core/domain"
)

const dateLayout = "2006-01-02"

// paramID reads a numeric path parameter. A non-numeric value is the
// client's mistake, not a missing row.
func paramID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.BadRequestf("%s must be a positive integer", name)
	}
	return id, nil
}

// parseDate turns an optional YYYY-MM-DD string into a date.
func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, domain.BadRequest("birthDate must be formatted YYYY-MM-DD")
	}
	return &d, nil
}
