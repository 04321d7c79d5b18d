package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/activity-tracker-api/internal/utils"
)

// Paginate applies a zero-based page window to a GORM query
func Paginate(page utils.PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(page.Offset()).Limit(page.Size)
	}
}
