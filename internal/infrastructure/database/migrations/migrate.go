package migrations

import (
	"github.com/dooza/social-signups-api/internal/domain/entities"
	"gorm.io/gorm"
)

// Migrate creates the social_signups table when it does not exist yet.
// gen_random_uuid() needs pgcrypto on Postgres before 13.
func Migrate(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto").Error; err != nil {
		return err
	}

	return db.AutoMigrate(&entities.SocialSignup{})
}

// AddIndexes adds the indexes the read paths rely on: the list endpoint
// orders by created_at and the stats breakdown groups by status.
func AddIndexes(db *gorm.DB) error {
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_social_signups_created_at ON social_signups (created_at)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_social_signups_status ON social_signups (status)").Error; err != nil {
		return err
	}
	return nil
}
