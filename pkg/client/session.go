package client

import (
	"context"

	"media-gallery-api/internal/gallery"
	"media-gallery-api/internal/models"
)

// Session holds the filter state of one gallery view and the result window
// of its last successful query. State is per-session by construction; there
// are no package-level filter globals.
//
// Session is not safe for concurrent use. If two Run calls are allowed to
// overlap anyway, both complete and the later response wins.
type Session struct {
	client *Client

	Query   gallery.MediaQuery
	Items   []models.Media
	Buttons []gallery.FilterButton
}

// NewSession opens a fresh view on one media type: default category, default
// date window.
func NewSession(c *Client, mediaType gallery.MediaType) *Session {
	return &Session{
		client: c,
		Query: gallery.MediaQuery{
			MediaType: mediaType,
			Category:  gallery.CategoryDefault,
			StartDate: gallery.StartDefault,
		},
	}
}

// SelectCategory handles a category tile click: browse the category from the
// default date window.
func (s *Session) SelectCategory(category string) {
	s.resetFilters()
	s.Query.Category = category
}

// SelectMenu handles a menu click.
func (s *Session) SelectMenu(item string) {
	s.resetFilters()
	s.Query.MenuItem = item
}

// SelectAlbum handles an album click.
func (s *Session) SelectAlbum(key string) {
	s.resetFilters()
	s.Query.AlbumKey = key
}

// Search handles the search box: a global search across the media type,
// displacing category and date browsing.
func (s *Session) Search(term string) {
	s.resetFilters()
	s.Query.SearchStr = term
}

// ApplyButton feeds a derived navigation button back into the filter state.
// The Next button's start date is a continuation cursor and is applied
// exclusively.
func (s *Session) ApplyButton(b gallery.FilterButton) {
	s.Query.SearchStr = ""
	s.Query.StartDate = b.StartDate
	s.Query.StartExclusive = b.Exclusive
}

func (s *Session) resetFilters() {
	s.Query.Category = gallery.CategoryDefault
	s.Query.MenuItem = ""
	s.Query.AlbumKey = ""
	s.Query.SearchStr = ""
	s.Query.StartDate = gallery.StartDefault
	s.Query.StartExclusive = false
}

// Run executes the current query and, on success, replaces the result window
// and derives fresh navigation buttons. On failure the previous window and
// buttons are left untouched.
func (s *Session) Run(ctx context.Context) error {
	items, err := s.client.Query(ctx, QueryRequest{
		MediaFilterMediaType: int(s.Query.MediaType),
		MediaFilterCategory:  s.Query.Category,
		MediaFilterStartDate: s.Query.StartDate,
		MediaFilterMenuItem:  s.Query.MenuItem,
		MediaFilterAlbumKey:  s.Query.AlbumKey,
		MediaFilterSearchStr: s.Query.SearchStr,
		StartExclusive:       s.Query.StartExclusive,
		MaxRows:              s.Query.MaxRows,
	})
	if err != nil {
		return err
	}

	taken := make([]string, len(items))
	for i, item := range items {
		taken[i] = item.TakenDateTime
	}

	s.Items = items
	s.Buttons = gallery.DeriveFilterButtons(s.Query, taken)
	return nil
}
