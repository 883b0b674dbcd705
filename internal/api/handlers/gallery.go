package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"media-gallery-api/internal/auth"
	"media-gallery-api/internal/config"
	"media-gallery-api/internal/database"
	"media-gallery-api/internal/gallery"
	"media-gallery-api/internal/models"
	"media-gallery-api/internal/storage"
)

// mediaQueryRequest is the gallery query wire format.
type mediaQueryRequest struct {
	MediaFilterMediaType int    `json:"MediaFilterMediaType" binding:"required"`
	MediaFilterCategory  string `json:"MediaFilterCategory"`
	MediaFilterStartDate string `json:"MediaFilterStartDate"`
	MediaFilterMenuItem  string `json:"MediaFilterMenuItem"`
	MediaFilterAlbumKey  string `json:"MediaFilterAlbumKey"`
	MediaFilterSearchStr string `json:"MediaFilterSearchStr"`
	StartExclusive       bool   `json:"startExclusive"`
	MaxRows              int    `json:"maxRows"`
}

// mediaUpdateRequest carries the admin batch-update payload. FileListIndex
// selects one list entry by position, or -1 to target every entry marked
// selected.
type mediaUpdateRequest struct {
	MediaFilterMediaType int            `json:"MediaFilterMediaType" binding:"required"`
	MediaInfoFileList    []models.Media `json:"MediaInfoFileList" binding:"required"`
	FileListIndex        int            `json:"FileListIndex"`
}

// apiError writes the structured error envelope the gallery clients parse.
func apiError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"errors": []gin.H{{"message": msg}}})
}

// requireAdmin aborts the request unless the caller holds the admin role.
// Returns the caller's display name when authorized.
func requireAdmin(c *gin.Context) (string, bool) {
	cfg, err := config.Load()
	if err != nil {
		apiError(c, http.StatusInternalServerError, "Configuration unavailable")
		return "", false
	}

	authorized, name := auth.UserAuthorizedForRole(c, cfg.Auth.AdminRole)
	if !authorized {
		apiError(c, http.StatusForbidden, "Not authorized for media updates")
		return "", false
	}
	return name, true
}

func galleryDefaults(cfg *config.Config) gallery.Defaults {
	return gallery.Defaults{
		Categories: map[gallery.MediaType]string{
			gallery.Photo: cfg.Gallery.PhotoDefaultCategory,
			gallery.Video: cfg.Gallery.VideoDefaultCategory,
			gallery.Music: cfg.Gallery.MusicDefaultCategory,
			gallery.Doc:   cfg.Gallery.DocDefaultCategory,
		},
	}
}

// QueryMedia executes one gallery query and replies with a bare JSON array of
// media items, ascending by taken time, capped at maxRows.
func QueryMedia(c *gin.Context) {
	var input mediaQueryRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		apiError(c, http.StatusBadRequest, fmt.Sprintf("Invalid query request: %v", err))
		return
	}

	cfg, err := config.Load()
	if err != nil {
		apiError(c, http.StatusInternalServerError, "Configuration unavailable")
		return
	}

	query := gallery.MediaQuery{
		MediaType:      gallery.MediaType(input.MediaFilterMediaType),
		Category:       input.MediaFilterCategory,
		MenuItem:       input.MediaFilterMenuItem,
		AlbumKey:       input.MediaFilterAlbumKey,
		SearchStr:      input.MediaFilterSearchStr,
		StartDate:      input.MediaFilterStartDate,
		StartExclusive: input.StartExclusive,
		MaxRows:        input.MaxRows,
	}
	if query.MaxRows <= 0 || query.MaxRows > cfg.Gallery.MaxRows {
		query.MaxRows = cfg.Gallery.MaxRows
	}

	preds := gallery.BuildPredicates(query, galleryDefaults(cfg), time.Now())

	media := make([]models.Media, 0, query.MaxRows)
	db := gallery.Apply(database.GetDB().Model(&models.Media{}), preds)
	if err := db.Order("taken_file_time ASC, id ASC").Limit(query.MaxRows).Find(&media).Error; err != nil {
		log.Error().Err(err).Str("mediaType", query.MediaType.String()).Msg("Gallery query failed")
		apiError(c, http.StatusInternalServerError, "Failed to fetch media")
		return
	}

	c.JSON(http.StatusOK, media)
}

// UpdateMedia rewrites the writable tag fields of the targeted items and
// replies with a plain-text status message.
func UpdateMedia(c *gin.Context) {
	name, ok := requireAdmin(c)
	if !ok {
		return
	}

	var input mediaUpdateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		apiError(c, http.StatusBadRequest, fmt.Sprintf("Invalid update request: %v", err))
		return
	}

	var targets []models.Media
	switch {
	case input.FileListIndex >= 0:
		if input.FileListIndex >= len(input.MediaInfoFileList) {
			apiError(c, http.StatusBadRequest, "FileListIndex out of range")
			return
		}
		targets = input.MediaInfoFileList[input.FileListIndex : input.FileListIndex+1]
	case input.FileListIndex == -1:
		for _, item := range input.MediaInfoFileList {
			if item.Selected {
				targets = append(targets, item)
			}
		}
	default:
		apiError(c, http.StatusBadRequest, "Invalid FileListIndex")
		return
	}

	updated := 0
	db := database.GetDB()
	for _, item := range targets {
		var media models.Media
		err := db.Where("id = ? AND media_type_id = ?", item.ID, input.MediaFilterMediaType).First(&media).Error
		if err != nil {
			log.Warn().Str("id", item.ID).Err(err).Msg("Skipping update of missing media item")
			continue
		}

		media.CategoryTags = item.CategoryTags
		media.MenuTags = item.MenuTags
		media.AlbumTags = item.AlbumTags
		media.Title = item.Title
		media.Description = item.Description
		media.People = item.People
		media.ToBeProcessed = item.ToBeProcessed

		// Save so the hook-derived search and taken-time columns follow.
		if err := db.Save(&media).Error; err != nil {
			log.Error().Str("id", item.ID).Err(err).Msg("Media update failed")
			continue
		}
		updated++
	}

	log.Info().Str("user", name).Int("updated", updated).Msg("Media metadata updated")
	c.String(http.StatusOK, fmt.Sprintf("Updated %d of %d media items", updated, len(targets)))
}

// IngestMedia creates metadata rows for newly stored media files, assigning
// ids where the caller left them blank.
func IngestMedia(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	var input []models.Media
	if err := c.ShouldBindJSON(&input); err != nil {
		apiError(c, http.StatusBadRequest, fmt.Sprintf("Invalid ingest request: %v", err))
		return
	}
	if len(input) == 0 {
		apiError(c, http.StatusBadRequest, "No media items provided")
		return
	}

	for i := range input {
		if input[i].ID == "" {
			input[i].ID = uuid.NewString()
		}
	}

	tx := database.GetDB().Begin()
	if err := tx.Create(&input).Error; err != nil {
		tx.Rollback()
		apiError(c, http.StatusInternalServerError, fmt.Sprintf("Failed to save media metadata: %v", err))
		return
	}
	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Media ingested", "count": len(input)})
}

// DeleteMedia removes one metadata row.
func DeleteMedia(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	id := c.Param("id")
	result := database.GetDB().Where("id = ?", id).Delete(&models.Media{})
	if result.Error != nil {
		apiError(c, http.StatusInternalServerError, "Failed to delete media record")
		return
	}
	if result.RowsAffected == 0 {
		apiError(c, http.StatusNotFound, "Media not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Media deleted successfully"})
}

// PeopleList replies with every distinct person name tagged on any media
// item. The people column holds comma-separated names.
func PeopleList(c *gin.Context) {
	var rows []string
	err := database.GetDB().Model(&models.Media{}).
		Where("people <> ''").
		Distinct().
		Pluck("people", &rows).Error
	if err != nil {
		apiError(c, http.StatusInternalServerError, "Failed to fetch people list")
		return
	}

	seen := make(map[string]bool)
	people := make([]string, 0)
	for _, row := range rows {
		for _, name := range strings.Split(row, ",") {
			name = strings.TrimSpace(name)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			people = append(people, name)
		}
	}
	sort.Strings(people)

	c.JSON(http.StatusOK, people)
}

func mediaTypeParam(c *gin.Context) (int, bool) {
	mediaType, err := strconv.Atoi(c.DefaultQuery("mediaType", "1"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "Invalid mediaType")
		return 0, false
	}
	return mediaType, true
}

// ListMenus replies with the navigation menu for one media type.
func ListMenus(c *gin.Context) {
	mediaType, ok := mediaTypeParam(c)
	if !ok {
		return
	}

	menus := make([]models.Menu, 0)
	err := database.GetDB().
		Where("media_type_id = ?", mediaType).
		Order("position ASC, item_name ASC").
		Find(&menus).Error
	if err != nil {
		apiError(c, http.StatusInternalServerError, "Failed to fetch menus")
		return
	}

	c.JSON(http.StatusOK, menus)
}

var (
	resolverOnce sync.Once
	resolver     storage.Resolver
	resolverErr  error
)

func mediaResolver() (storage.Resolver, error) {
	resolverOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			resolverErr = err
			return
		}
		resolver, resolverErr = storage.NewResolver(cfg)
	})
	return resolver, resolverErr
}

// ServeMediaFile redirects to the URL the named media file is served from.
func ServeMediaFile(c *gin.Context) {
	kind, err := storage.ParseKind(c.Param("kind"))
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}

	r, err := mediaResolver()
	if err != nil {
		apiError(c, http.StatusInternalServerError, fmt.Sprintf("Failed to initialize storage: %v", err))
		return
	}

	url, err := r.URL(c.Request.Context(), kind, c.Param("name"))
	if err != nil {
		apiError(c, http.StatusInternalServerError, fmt.Sprintf("Failed to resolve media URL: %v", err))
		return
	}

	c.Redirect(http.StatusFound, url)
}
