package config

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Gallery  GalleryConfig
	Storage  StorageConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type AuthConfig struct {
	// AdminRole gates the metadata update/ingest endpoints.
	AdminRole string
	// JWTSecret enables the local bearer-token fallback when non-empty.
	JWTSecret         string
	AdminPasswordHash string
	TokenTTL          time.Duration
}

type GalleryConfig struct {
	// Per-media-type categories substituted for the DEFAULT sentinel.
	PhotoDefaultCategory string
	VideoDefaultCategory string
	MusicDefaultCategory string
	DocDefaultCategory   string
	// MaxRows caps page size when the request leaves it unset.
	MaxRows int
}

type StorageConfig struct {
	Provider  string
	PhotosURI string
	ThumbsURI string
	MusicURI  string
	S3        S3Config
}

type S3Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Endpoint        string
	URLExpiration   time.Duration
}

var (
	loadOnce sync.Once
	loaded   *Config
	loadErr  error
)

// Load reads configuration from the environment, consulting a .env file when
// one exists. The result is cached for the life of the process.
func Load() (*Config, error) {
	loadOnce.Do(func() {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			loadErr = fmt.Errorf("error loading .env file: %v", err)
			return
		}

		loaded = &Config{
			Server: ServerConfig{
				Port: getEnv("PORT", "8080"),
				Env:  getEnv("ENV", "development"),
			},
			Database: DatabaseConfig{
				Host:     getEnv("DB_HOST", "localhost"),
				Port:     getEnv("DB_PORT", "5432"),
				User:     getEnv("DB_USER", "postgres"),
				Password: getEnv("DB_PASSWORD", "postgres"),
				DBName:   getEnv("DB_NAME", "media_gallery"),
				SSLMode:  getEnv("DB_SSLMODE", "disable"),
			},
			Auth: AuthConfig{
				AdminRole:         getEnv("AUTH_ADMIN_ROLE", "jjkadmin"),
				JWTSecret:         getEnv("AUTH_JWT_SECRET", ""),
				AdminPasswordHash: getEnv("AUTH_ADMIN_PASSWORD_HASH", ""),
				TokenTTL:          getEnvAsDuration("AUTH_TOKEN_TTL", 24*time.Hour),
			},
			Gallery: GalleryConfig{
				PhotoDefaultCategory: getEnv("GALLERY_PHOTO_DEFAULT_CATEGORY", "Family Photos"),
				VideoDefaultCategory: getEnv("GALLERY_VIDEO_DEFAULT_CATEGORY", "Home Videos"),
				MusicDefaultCategory: getEnv("GALLERY_MUSIC_DEFAULT_CATEGORY", "Band"),
				DocDefaultCategory:   getEnv("GALLERY_DOC_DEFAULT_CATEGORY", "Documents"),
				MaxRows:              getEnvAsInt("GALLERY_MAX_ROWS", 200),
			},
			Storage: StorageConfig{
				Provider:  getEnv("STORAGE_PROVIDER", "static"),
				PhotosURI: getEnv("STORAGE_PHOTOS_URI", "/media/photos/"),
				ThumbsURI: getEnv("STORAGE_THUMBS_URI", "/media/thumbs/"),
				MusicURI:  getEnv("STORAGE_MUSIC_URI", "/media/music/"),
				S3: S3Config{
					Region:          getEnv("AWS_REGION", "us-east-1"),
					AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
					SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
					BucketName:      getEnv("AWS_BUCKET_NAME", ""),
					Endpoint:        getEnv("AWS_ENDPOINT", ""),
					URLExpiration:   getEnvAsDuration("AWS_URL_EXPIRATION", time.Hour),
				},
			},
		}
	})

	return loaded, loadErr
}

func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		var intVal int
		if _, err := fmt.Sscanf(value, "%d", &intVal); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
