package inventory

import (
	"sort"
	"strings"
)

type StockFilter string

const (
	StockAll StockFilter = ""
	StockIn  StockFilter = "in"
	StockLow StockFilter = "low"
	StockOut StockFilter = "out"
)

const DefaultLowAt = 5

type SortField string

const (
	SortName    SortField = "name"
	SortSKU     SortField = "sku"
	SortStock   SortField = "stock"
	SortUpdated SortField = "updated"
)

// Query narrows and orders the admin inventory table.
type Query struct {
	Search   string
	Category string
	Stock    StockFilter
	LowAt    int // stock at or below this (and above 0) counts as low
	Sort     SortField
	Desc     bool
}

func Filter(ps []Product, q Query) []Product {
	lowAt := q.LowAt
	if lowAt <= 0 {
		lowAt = DefaultLowAt
	}
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]Product, 0, len(ps))
	for _, p := range ps {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.SKU), search) {
			continue
		}
		if q.Category != "" && !strings.EqualFold(p.Category, q.Category) {
			continue
		}
		switch q.Stock {
		case StockIn:
			if p.Stock <= 0 {
				continue
			}
		case StockLow:
			if p.Stock <= 0 || p.Stock > lowAt {
				continue
			}
		case StockOut:
			if p.Stock > 0 {
				continue
			}
		}
		out = append(out, p)
	}

	less := func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) }
	switch q.Sort {
	case SortSKU:
		less = func(i, j int) bool { return out[i].SKU < out[j].SKU }
	case SortStock:
		less = func(i, j int) bool { return out[i].Stock < out[j].Stock }
	case SortUpdated:
		less = func(i, j int) bool { return out[i].UpdatedAt.Before(out[j].UpdatedAt) }
	}
	if q.Desc {
		asc := less
		less = func(i, j int) bool { return asc(j, i) }
	}
	sort.SliceStable(out, less)
	return out
}
