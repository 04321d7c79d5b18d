package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/activity-tracker-api/internal/constants"
)

var (
	ErrInvalidPageIndex = errors.New("page index must be zero or greater")
	ErrInvalidPageSize  = errors.New("page size must be greater than zero")
)

// PageRequest is a zero-based page window.
type PageRequest struct {
	Page int
	Size int
}

// Validate checks the page index and size bounds.
func (p PageRequest) Validate() error {
	if p.Page < 0 {
		return ErrInvalidPageIndex
	}
	if p.Size <= 0 {
		return ErrInvalidPageSize
	}
	return nil
}

// Offset returns the number of rows to skip. It can overflow for a page
// index far past the end, so check PastEnd first.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// PastEnd reports whether the page starts at or after the last of total rows.
// It compares page indexes and never multiplies, so huge indexes are safe.
func (p PageRequest) PastEnd(total int64) bool {
	return p.Page >= TotalPages(total, p.Size)
}

// TotalPages returns ceil(total / size).
func TotalPages(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	pages := total / int64(size)
	if total%int64(size) > 0 {
		pages++
	}
	return int(pages)
}

// GetPageRequest reads the page and size query parameters.
func GetPageRequest(c *gin.Context) (PageRequest, error) {
	return GetPageRequestFor(c, "page")
}

// GetPageRequestFor reads a page index from pageKey and the shared size parameter.
// Sizes above MaxPageSize are clamped.
func GetPageRequestFor(c *gin.Context, pageKey string) (PageRequest, error) {
	page, err := strconv.Atoi(c.DefaultQuery(pageKey, strconv.Itoa(constants.DefaultPage)))
	if err != nil {
		return PageRequest{}, ErrInvalidPageIndex
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(constants.DefaultPageSize)))
	if err != nil {
		return PageRequest{}, ErrInvalidPageSize
	}
	if size > constants.MaxPageSize {
		size = constants.MaxPageSize
	}

	req := PageRequest{Page: page, Size: size}
	if err := req.Validate(); err != nil {
		return PageRequest{}, err
	}
	return req, nil
}
