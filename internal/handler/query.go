package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/running-records-go/internal/models"
	"github.com/jengzang/running-records-go/internal/service"
)

// AllShoes is the dropdown value that disables the shoe filter.
const AllShoes = "All"

// parseQuery binds the dashboard filter parameters into a service query.
func parseQuery(c *gin.Context) (service.Query, error) {
	var filter models.DashboardFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		return service.Query{}, fmt.Errorf("invalid query parameters: %w", err)
	}

	start, err := parseDate(filter.Start)
	if err != nil {
		return service.Query{}, fmt.Errorf("invalid start parameter: %w", err)
	}
	end, err := parseDate(filter.End)
	if err != nil {
		return service.Query{}, fmt.Errorf("invalid end parameter: %w", err)
	}

	shoe := strings.TrimSpace(filter.Shoe)
	if strings.EqualFold(shoe, AllShoes) {
		shoe = ""
	}

	return service.Query{
		Range:          models.DateRange{Start: start, End: end},
		Shoe:           shoe,
		ExcludeUnknown: filter.ExcludeUnknown,
	}, nil
}

// parseDate accepts YYYY-MM-DD (UTC midnight) or RFC3339. Empty yields the zero time.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is neither YYYY-MM-DD nor RFC3339", s)
	}
	return t.UTC(), nil
}
