package handlers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"media-gallery-api/internal/database"
	"media-gallery-api/internal/models"
)

func exportRows(c *gin.Context) ([]models.Media, bool) {
	if _, ok := requireAdmin(c); !ok {
		return nil, false
	}

	mediaType, ok := mediaTypeParam(c)
	if !ok {
		return nil, false
	}

	var media []models.Media
	err := database.GetDB().
		Where("media_type_id = ?", mediaType).
		Order("taken_file_time ASC").
		Find(&media).Error
	if err != nil {
		apiError(c, http.StatusInternalServerError, "Failed to fetch media")
		return nil, false
	}
	return media, true
}

func ExportCSV(c *gin.Context) {
	media, ok := exportRows(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment;filename=media_export.csv")

	writer := csv.NewWriter(c.Writer)
	// Write header
	if err := writer.Write([]string{"ID", "Name", "Taken", "Categories", "Menus", "Albums", "Title", "People"}); err != nil {
		apiError(c, http.StatusInternalServerError, "Failed to write CSV header")
		return
	}

	// Write data
	for _, m := range media {
		if err := writer.Write([]string{
			m.ID,
			m.Name,
			fmt.Sprint(m.TakenFileTime),
			m.CategoryTags,
			m.MenuTags,
			m.AlbumTags,
			m.Title,
			m.People,
		}); err != nil {
			apiError(c, http.StatusInternalServerError, "Failed to write CSV data")
			return
		}
	}

	writer.Flush()
}

func ExportJSON(c *gin.Context) {
	media, ok := exportRows(c)
	if !ok {
		return
	}

	c.Header("Content-Disposition", "attachment;filename=media_export.json")

	jsonData, err := json.MarshalIndent(media, "", "  ")
	if err != nil {
		apiError(c, http.StatusInternalServerError, "Failed to marshal JSON")
		return
	}

	c.Data(http.StatusOK, "application/json", jsonData)
}
