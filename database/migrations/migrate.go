package migrations

import (
	"media-gallery-api/internal/database"
	"media-gallery-api/internal/models"
)

func Migrate() error {
	db := database.GetDB()

	// Auto migrate tables
	return db.AutoMigrate(
		&models.Media{},
		&models.Menu{},
		&models.Album{},
	)
}
