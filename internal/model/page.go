package model

import (
	"fmt"
	"math"
	"strings"
)

type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// sortColumns maps the public property names to their table columns.
var sortColumns = map[string]string{
	"ticker":        "ticker",
	"name":          "name",
	"numberOfCoins": "number_of_coins",
	"marketCap":     "market_cap",
}

type Sort struct {
	Property  string
	Direction SortDirection
}

var DefaultSort = Sort{Property: "ticker", Direction: SortAsc}

// ParseSort reads "<property>[,asc|desc]". An empty value yields DefaultSort.
func ParseSort(raw string) (Sort, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultSort, nil
	}

	parts := strings.Split(raw, ",")
	if len(parts) > 2 {
		return Sort{}, fmt.Errorf("%w: %s", ErrInvalidSort, raw)
	}

	property := strings.TrimSpace(parts[0])
	if _, ok := sortColumns[property]; !ok {
		return Sort{}, fmt.Errorf("%w: %s", ErrInvalidSort, property)
	}

	sort := Sort{Property: property, Direction: SortAsc}
	if len(parts) == 2 {
		switch strings.ToUpper(strings.TrimSpace(parts[1])) {
		case "", string(SortAsc):
		case string(SortDesc):
			sort.Direction = SortDesc
		default:
			return Sort{}, fmt.Errorf("%w: %s", ErrInvalidSort, raw)
		}
	}
	return sort, nil
}

// Column returns the table column for the sort property.
func (s Sort) Column() string {
	if column, ok := sortColumns[s.Property]; ok {
		return column
	}
	return sortColumns[DefaultSort.Property]
}

func (s Sort) OrderBy() string {
	direction := s.Direction
	if direction != SortDesc {
		direction = SortAsc
	}
	return fmt.Sprintf("%s %s", s.Column(), direction)
}

type PageRequest struct {
	Page int
	Size int
	Sort Sort
}

// Offset saturates at math.MaxInt instead of wrapping around.
func (p PageRequest) Offset() int {
	if p.Size > 0 && p.Page > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Page * p.Size
}

type CurrencyPage struct {
	Currencies []Currency
	Page       int
	Size       int
	Total      int64
}
