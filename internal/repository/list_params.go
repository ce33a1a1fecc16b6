package repository

import (
	"rentier/internal/errors"
)

// sortColumns is the allow-list of entry columns a caller may sort by. The
// sort field reaches the SQL ORDER BY clause, so anything outside this map is
// rejected before it gets near a query.
var sortColumns = map[string]string{
	"id":             "id",
	"created":        "created",
	"prediction":     "prediction",
	"actual_price":   "actual_price",
	"difference":     "difference",
	"beds":           "beds",
	"bathrooms":      "bathrooms",
	"accomodates":    "accomodates",
	"minimum_nights": "minimum_nights",
	"room_type":      "room_type",
	"neighborhood":   "neighborhood",
}

// DefaultSortField orders history by creation time when the caller does not
// ask otherwise.
const DefaultSortField = "created"

// ListParams describes one history listing: optional pagination plus sort
// order. Page zero means "everything"; Page >= 1 selects a bounded slice.
type ListParams struct {
	Page      int
	PageSize  int
	SortField string
	Desc      bool
}

// Normalize fills defaults and validates the parameters. The zero value
// normalizes to "all entries, created descending".
func (p ListParams) Normalize() (ListParams, error) {
	if p.SortField == "" {
		p.SortField = DefaultSortField
		p.Desc = true
	}
	if _, ok := sortColumns[p.SortField]; !ok {
		return p, &errors.ValidationError{Field: "sort", Rule: "allowed_column"}
	}
	if p.Page < 0 {
		return p, &errors.ValidationError{Field: "page", Rule: "non_negative"}
	}
	if p.Page > 0 && p.PageSize <= 0 {
		return p, &errors.ValidationError{Field: "page_size", Rule: "positive"}
	}
	return p, nil
}

// OrderClause renders the validated ORDER BY expression.
func (p ListParams) OrderClause() string {
	column := sortColumns[p.SortField]
	if p.Desc {
		return column + " DESC"
	}
	return column + " ASC"
}

// Offset returns the number of rows to skip, zero when unpaged.
func (p ListParams) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}
