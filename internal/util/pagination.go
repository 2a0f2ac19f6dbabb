package util

import "strconv"

// The storefront shows 8 products per page.
const DefaultPageSize = 8

const maxPageSize = 100

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func Calculate(page, size int) (offset int, limit int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	offset = (page - 1) * size
	return offset, size
}
