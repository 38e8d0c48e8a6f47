package crud

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// FloatQuery reads an optional numeric bound. Absent or malformed values are
// reported as nil so that "0" stays distinct from "no bound".
func FloatQuery(c *gin.Context, name string) *float64 {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return nil
	}
	return &v
}

func BoolQuery(c *gin.Context, name string) bool {
	v, err := cast.ToBoolE(strings.TrimSpace(c.Query(name)))
	return err == nil && v
}

// PageQuery reads page/limit with the listing defaults.
func PageQuery(c *gin.Context) (page, limit int) {
	page, limit = 1, DefaultLimit
	if v, err := cast.ToIntE(strings.TrimSpace(c.Query("limit"))); err == nil && v > 0 && v <= MaxLimit {
		limit = v
	}
	if v, err := cast.ToIntE(strings.TrimSpace(c.Query("page"))); err == nil && v > 0 {
		page = v
	}
	return page, limit
}

// Paginate slices items for the given 1-based page. Pages past the end,
// however large, yield an empty slice.
func Paginate[T any](items []T, page, limit int) []T {
	if limit <= 0 || page < 1 {
		return []T{}
	}
	pages := (len(items) + limit - 1) / limit
	if page > pages {
		return []T{}
	}
	start := (page - 1) * limit
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
