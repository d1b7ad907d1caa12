package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// FilterKind selects how a query parameter is matched against its column.
type FilterKind int

const (
	// FilterEquals matches the column exactly.
	FilterEquals FilterKind = iota
	// FilterLike matches case-insensitively anywhere in the column.
	FilterLike
	// FilterInt parses the parameter as an integer before matching.
	FilterInt
)

// QueryFilter declares one supported list-endpoint query parameter. Each
// controller registers its own table of these so the set of filterable
// columns is visible in one place.
type QueryFilter struct {
	Param  string
	Column string
	Kind   FilterKind
}

// ApplyFilters conjunctively narrows db by every registered filter present in
// the request query string. Unknown parameters are ignored.
func ApplyFilters(c *fiber.Ctx, db *gorm.DB, filters []QueryFilter) *gorm.DB {
	for _, f := range filters {
		value := c.Query(f.Param)
		if value == "" {
			continue
		}
		switch f.Kind {
		case FilterLike:
			db = db.Where(f.Column+" LIKE ?", "%"+value+"%")
		case FilterInt:
			n, err := strconv.Atoi(value)
			if err != nil {
				continue
			}
			db = db.Where(f.Column+" = ?", n)
		default:
			db = db.Where(f.Column+" = ?", value)
		}
	}
	return db
}

// ApplyDateRange narrows db to rows whose column falls inside the inclusive
// day range given by the fromDate and toDate query parameters (YYYY-MM-DD).
// Either bound may be absent. A fromDate equal to toDate covers that whole
// day.
func ApplyDateRange(c *fiber.Ctx, db *gorm.DB, column string) (*gorm.DB, error) {
	if from := c.Query("fromDate"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return db, fmt.Errorf("invalid fromDate %q", from)
		}
		db = db.Where(column+" >= ?", t)
	}
	if to := c.Query("toDate"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return db, fmt.Errorf("invalid toDate %q", to)
		}
		db = db.Where(column+" < ?", t.AddDate(0, 0, 1))
	}
	return db, nil
}

// ParseIDList splits a comma-separated ids parameter into numeric IDs.
// Blank segments are skipped; a non-numeric segment fails the whole parse.
func ParseIDList(csv string) ([]uint, error) {
	var ids []uint
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		ids = append(ids, uint(n))
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no ids provided")
	}
	return ids, nil
}
