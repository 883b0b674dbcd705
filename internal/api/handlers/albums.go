package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"media-gallery-api/internal/database"
	"media-gallery-api/internal/models"
)

// ListAlbums handles listing the albums of one media type
func ListAlbums(c *gin.Context) {
	mediaType, ok := mediaTypeParam(c)
	if !ok {
		return
	}

	albums := make([]models.Album, 0)
	err := database.GetDB().
		Where("media_type_id = ?", mediaType).
		Order("album_name ASC").
		Find(&albums).Error
	if err != nil {
		apiError(c, http.StatusInternalServerError, "Failed to fetch albums")
		return
	}

	c.JSON(http.StatusOK, albums)
}

// CreateAlbum handles album creation
func CreateAlbum(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	var input struct {
		MediaTypeID int    `json:"mediaTypeId" binding:"required"`
		AlbumName   string `json:"albumName" binding:"required,min=1,max=255"`
		AlbumKey    string `json:"albumKey" binding:"required,min=1,max=255"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		apiError(c, http.StatusBadRequest, "Invalid input: album name and key are required")
		return
	}

	// Album keys are filter values; duplicates would make two albums
	// indistinguishable.
	var existing models.Album
	err := database.GetDB().
		Where("media_type_id = ? AND album_key = ?", input.MediaTypeID, input.AlbumKey).
		First(&existing).Error
	if err == nil {
		apiError(c, http.StatusBadRequest, "Album key already in use")
		return
	}

	album := models.Album{
		MediaTypeID: input.MediaTypeID,
		AlbumName:   input.AlbumName,
		AlbumKey:    input.AlbumKey,
	}

	if err := database.GetDB().Create(&album).Error; err != nil {
		apiError(c, http.StatusInternalServerError, "Failed to create album")
		return
	}

	c.JSON(http.StatusCreated, album)
}

// DeleteAlbum handles album deletion
func DeleteAlbum(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	id := c.Param("id")

	var album models.Album
	if err := database.GetDB().Where("id = ?", id).First(&album).Error; err != nil {
		apiError(c, http.StatusNotFound, "Album not found")
		return
	}

	// Refuse while items still carry the album tag; the gallery would keep
	// filtering on a key with no album behind it.
	var mediaCount int64
	err := database.GetDB().Model(&models.Media{}).
		Where("album_tags LIKE ?", "%"+album.AlbumKey+"%").
		Count(&mediaCount).Error
	if err != nil {
		apiError(c, http.StatusInternalServerError, "Failed to check album contents")
		return
	}
	if mediaCount > 0 {
		apiError(c, http.StatusBadRequest, "Cannot delete album still tagged on media")
		return
	}

	if err := database.GetDB().Delete(&album).Error; err != nil {
		apiError(c, http.StatusInternalServerError, "Failed to delete album")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Album deleted successfully"})
}
