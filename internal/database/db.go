package database

import (
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"media-gallery-api/internal/config"
)

var DB *gorm.DB

func Initialize(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		return err
	}
	log.Info().Str("database", cfg.Database.DBName).Msg("Database connection established")
	return nil
}

func GetDB() *gorm.DB {
	return DB
}
