package database

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

type compositeIndex struct {
	table   string
	name    string
	columns string
}

// Composite indexes backing the activity queries. Single column indexes
// come from the model tags.
var compositeIndexes = []compositeIndex{
	{"activities", "idx_activities_assignee_date", "assigned_user_name, date"},
	{"activities", "idx_activities_status_date", "status, date"},
	{"events", "idx_events_date_created_at", "date, created_at"},
	{"password_reset_tokens", "idx_reset_tokens_user_used", "user_id, used"},
}

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, idx := range compositeIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			slog.Debug("index already exists, skipping", "index", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		slog.Info("created index", "index", idx.name, "table", idx.table, "columns", idx.columns)
	}

	return nil
}
