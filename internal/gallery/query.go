package gallery

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// MediaType partitions the gallery at the top level.
type MediaType int

const (
	Photo MediaType = 1
	Video MediaType = 2
	Music MediaType = 3
	Doc   MediaType = 4
)

func (t MediaType) String() string {
	switch t {
	case Photo:
		return "photo"
	case Video:
		return "video"
	case Music:
		return "music"
	case Doc:
		return "doc"
	}
	return fmt.Sprintf("mediatype(%d)", int(t))
}

// Sentinel values accepted on the wire for category and start date.
const (
	CategoryDefault = "DEFAULT"
	CategoryAll     = "ALL"
	StartDefault    = "DEFAULT"
)

// Days of history a default photo query reaches back.
const defaultPhotoWindowDays = 60

// MediaQuery is the resolved filter state for one gallery request. It is
// request-scoped; callers build a fresh value per query rather than mutating
// a shared one.
type MediaQuery struct {
	MediaType MediaType
	Category  string
	MenuItem  string
	AlbumKey  string
	SearchStr string
	StartDate string
	// StartExclusive marks StartDate as a continuation cursor taken from the
	// last row of the previous page. The date predicate then uses a strict
	// comparison so a tied boundary row is not fetched twice.
	StartExclusive bool
	MaxRows        int
}

// Defaults supplies the per-media-type category substituted for the
// CategoryDefault sentinel.
type Defaults struct {
	Categories map[MediaType]string
}

// DefaultCategory returns the configured category for t, or "" when none is
// configured (the category predicate is then omitted).
func (d Defaults) DefaultCategory(t MediaType) string {
	return d.Categories[t]
}

// Kind discriminates predicate shapes.
type Kind int

const (
	KindEquals       Kind = iota // column = value
	KindContains                 // column LIKE %value%
	KindContainsFold             // LOWER(column) LIKE %lower(value)%
	KindAtLeast                  // column >= value
	KindAfter                    // column > value
)

// Predicate is one conjunct of a gallery query. The zero Str/Int field that
// does not apply to the Kind is ignored.
type Predicate struct {
	Kind  Kind
	Field string
	Str   string
	Int   int64
}

// Clause renders the predicate as a SQL fragment and its bind argument.
func (p Predicate) Clause() (string, interface{}) {
	switch p.Kind {
	case KindEquals:
		return p.Field + " = ?", p.Int
	case KindContains:
		return p.Field + " LIKE ?", "%" + p.Str + "%"
	case KindContainsFold:
		return "LOWER(" + p.Field + ") LIKE ?", "%" + strings.ToLower(p.Str) + "%"
	case KindAtLeast:
		return p.Field + " >= ?", p.Int
	case KindAfter:
		return p.Field + " > ?", p.Int
	}
	return "", nil
}

// Apply chains every predicate onto db as a WHERE conjunct.
func Apply(db *gorm.DB, preds []Predicate) *gorm.DB {
	for _, p := range preds {
		expr, arg := p.Clause()
		if expr == "" {
			continue
		}
		db = db.Where(expr, arg)
	}
	return db
}

// BuildPredicates maps a MediaQuery to its ordered predicate conjunction.
//
// The media-type predicate is always present. A non-empty search string
// suppresses every other filter: searching is a global override across the
// whole collection, not a refinement of the current browse position. Menu and
// album selections displace the category filter, and the date bound is
// resolved last (the DEFAULT sentinel means a 60-day window for photos and no
// bound for everything else; an active album always browses unbounded).
//
// Pure function of its inputs; now anchors the DEFAULT date resolution.
func BuildPredicates(q MediaQuery, d Defaults, now time.Time) []Predicate {
	preds := []Predicate{
		{Kind: KindEquals, Field: "media_type_id", Int: int64(q.MediaType)},
	}

	if q.SearchStr != "" {
		preds = append(preds, Predicate{Kind: KindContainsFold, Field: "search_str", Str: q.SearchStr})
		return preds
	}

	if q.MenuItem != "" {
		preds = append(preds, Predicate{Kind: KindContains, Field: "menu_tags", Str: q.MenuItem})
	}
	if q.AlbumKey != "" {
		preds = append(preds, Predicate{Kind: KindContains, Field: "album_tags", Str: q.AlbumKey})
	}

	// A menu or album selection stands in for the category filter.
	if q.MenuItem == "" && q.AlbumKey == "" {
		if cat := resolveCategory(q, d); cat != "" {
			preds = append(preds, Predicate{Kind: KindContains, Field: "category_tags", Str: cat})
		}
	}

	dateKind := KindAtLeast
	if q.StartExclusive {
		dateKind = KindAfter
	}
	preds = append(preds, Predicate{
		Kind:  dateKind,
		Field: "taken_file_time",
		Int:   DateInt(resolveStartDate(q, now)),
	})

	return preds
}

func resolveCategory(q MediaQuery, d Defaults) string {
	cat := q.Category
	if cat == CategoryDefault {
		cat = d.DefaultCategory(q.MediaType)
	}
	if cat == "" || cat == CategoryAll || cat == "0" {
		return ""
	}
	// "Smith Family" category tiles should also match items tagged just
	// "Smith".
	cat = strings.TrimSuffix(cat, " Family")
	cat = strings.TrimSuffix(cat, " family")
	return cat
}

func resolveStartDate(q MediaQuery, now time.Time) string {
	start := q.StartDate
	if q.AlbumKey != "" && (start == "" || start == StartDefault) {
		// Albums are browsed front to back regardless of age.
		return ""
	}
	if start == StartDefault {
		if q.MediaType == Photo {
			return now.AddDate(0, 0, -defaultPhotoWindowDays).Format("2006-01-02")
		}
		return ""
	}
	return start
}
