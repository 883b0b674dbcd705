package models

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"media-gallery-api/internal/gallery"
)

// Media is one gallery item's metadata row. Rows are created at ingestion
// time and are otherwise read-only except for the admin update path, which
// rewrites the tag and description fields.
type Media struct {
	ID            string `gorm:"primarykey" json:"id"`
	MediaTypeID   int    `gorm:"index" json:"mediaTypeId"`
	Name          string `json:"name"`
	TakenDateTime string `json:"takenDateTime"`
	// TakenFileTime is the YYYYMMDDHH hour bucket derived from
	// TakenDateTime; it is the sort and range-filter key for every query.
	TakenFileTime int64  `gorm:"index" json:"takenFileTime"`
	CategoryTags  string `json:"categoryTags"`
	MenuTags      string `json:"menuTags"`
	AlbumTags     string `json:"albumTags"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	People        string `json:"people"`
	ToBeProcessed bool   `json:"toBeProcessed"`
	// SearchStr is the denormalized, lower-cased haystack the search filter
	// matches against. Maintained by BeforeSave.
	SearchStr string `json:"-"`
	// Selected is ephemeral UI state echoed back by batch updates. Never
	// persisted.
	Selected  bool      `gorm:"-" json:"selected"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName specifies the table name for the Media model
func (Media) TableName() string {
	return "media"
}

// BeforeSave keeps the derived columns consistent with the writable fields.
func (m *Media) BeforeSave(tx *gorm.DB) error {
	m.TakenFileTime = gallery.DateInt(m.TakenDateTime)
	m.SearchStr = strings.ToLower(strings.Join([]string{
		m.Name, m.Title, m.Description, m.People,
		m.CategoryTags, m.MenuTags, m.AlbumTags,
	}, " "))
	return nil
}

// Menu is one entry of a media type's navigation menu, mapping a menu label
// to the category it browses.
type Menu struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	MediaTypeID int    `gorm:"index" json:"mediaTypeId"`
	ItemName    string `json:"itemName"`
	Category    string `json:"category"`
	Position    int    `json:"position"`
}

// Album is a user-defined grouping within a media type. AlbumKey is the tag
// value stamped into a member item's AlbumTags.
type Album struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	MediaTypeID int    `gorm:"index" json:"mediaTypeId"`
	AlbumName   string `json:"albumName"`
	AlbumKey    string `gorm:"index" json:"albumKey"`
}
