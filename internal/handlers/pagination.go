package handlers

import (
	"strconv"

	"foodapp/internal/apperr"
)

const maxPageSize = 100

var errInvalidPagination = apperr.New(apperr.Validation, "invalid_pagination", "page and limit must be positive integers")

// parsePaginationParams returns skip and limit for 1-based page numbers.
func parsePaginationParams(pageStr, limitStr string) (int64, int64, error) {
	page := int64(1)
	limit := int64(20)

	if pageStr != "" {
		p, err := strconv.ParseInt(pageStr, 10, 64)
		if err != nil || p < 1 {
			return 0, 0, errInvalidPagination
		}
		page = p
	}

	if limitStr != "" {
		l, err := strconv.ParseInt(limitStr, 10, 64)
		if err != nil || l < 1 {
			return 0, 0, errInvalidPagination
		}
		limit = min(l, maxPageSize)
	}

	return (page - 1) * limit, limit, nil
}
