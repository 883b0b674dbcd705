package gallery

import (
	"testing"
	"time"
)

var testDefaults = Defaults{
	Categories: map[MediaType]string{
		Photo: "Family Photos",
		Video: "Home Videos",
		Music: "Band",
		Doc:   "Documents",
	},
}

var testNow = time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)

// findPredicate returns the first predicate on the given field, if any.
func findPredicate(preds []Predicate, field string) (Predicate, bool) {
	for _, p := range preds {
		if p.Field == field {
			return p, true
		}
	}
	return Predicate{}, false
}

func TestBuildPredicates_MediaTypeAlwaysFirst(t *testing.T) {
	preds := BuildPredicates(MediaQuery{MediaType: Video}, testDefaults, testNow)

	if len(preds) == 0 {
		t.Fatal("expected at least the media-type predicate")
	}
	first := preds[0]
	if first.Field != "media_type_id" || first.Kind != KindEquals || first.Int != 2 {
		t.Errorf("first predicate = %+v, want media_type_id = 2", first)
	}
}

func TestBuildPredicates_SearchSuppressesEverythingElse(t *testing.T) {
	q := MediaQuery{
		MediaType: Photo,
		Category:  "Vacations",
		MenuItem:  "Summer",
		AlbumKey:  "trip-2019",
		SearchStr: "beach",
		StartDate: "2020-01-01",
	}

	preds := BuildPredicates(q, testDefaults, testNow)

	if len(preds) != 2 {
		t.Fatalf("got %d predicates %+v, want media type + search only", len(preds), preds)
	}
	search := preds[1]
	if search.Kind != KindContainsFold || search.Field != "search_str" || search.Str != "beach" {
		t.Errorf("search predicate = %+v", search)
	}
	for _, field := range []string{"category_tags", "menu_tags", "album_tags", "taken_file_time"} {
		if _, ok := findPredicate(preds, field); ok {
			t.Errorf("search query must not emit a %s predicate", field)
		}
	}
}

func TestBuildPredicates_CategoryResolution(t *testing.T) {
	tests := []struct {
		name     string
		category string
		want     string // "" means the predicate is omitted
	}{
		{"explicit category used verbatim", "Vacations", "Vacations"},
		{"Family suffix stripped", "Smith Family", "Smith"},
		{"lower-case family suffix stripped", "Smith family", "Smith"},
		{"family inside the name kept", "Family Photos", "Family Photos"},
		{"ALL omits the predicate", "ALL", ""},
		{"zero omits the predicate", "0", ""},
		{"empty omits the predicate", "", ""},
		{"DEFAULT resolves the photo default", "DEFAULT", "Family Photos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := MediaQuery{MediaType: Photo, Category: tt.category}
			preds := BuildPredicates(q, testDefaults, testNow)

			p, ok := findPredicate(preds, "category_tags")
			if tt.want == "" {
				if ok {
					t.Errorf("unexpected category predicate %+v", p)
				}
				return
			}
			if !ok {
				t.Fatal("missing category predicate")
			}
			if p.Kind != KindContains || p.Str != tt.want {
				t.Errorf("category predicate = %+v, want contains %q", p, tt.want)
			}
		})
	}
}

func TestBuildPredicates_DefaultCategoryPerMediaType(t *testing.T) {
	q := MediaQuery{MediaType: Music, Category: CategoryDefault}
	preds := BuildPredicates(q, testDefaults, testNow)

	p, ok := findPredicate(preds, "category_tags")
	if !ok || p.Str != "Band" {
		t.Errorf("music DEFAULT category predicate = %+v, want Band", p)
	}
}

func TestBuildPredicates_MenuAndAlbumDisplaceCategory(t *testing.T) {
	q := MediaQuery{MediaType: Photo, Category: CategoryDefault, MenuItem: "Summer"}
	preds := BuildPredicates(q, testDefaults, testNow)

	if _, ok := findPredicate(preds, "category_tags"); ok {
		t.Error("menu selection must displace the category predicate")
	}
	if p, ok := findPredicate(preds, "menu_tags"); !ok || p.Str != "Summer" || p.Kind != KindContains {
		t.Errorf("menu predicate = %+v", p)
	}

	q = MediaQuery{MediaType: Photo, Category: "Vacations", AlbumKey: "trip-2019"}
	preds = BuildPredicates(q, testDefaults, testNow)

	if _, ok := findPredicate(preds, "category_tags"); ok {
		t.Error("album selection must displace the category predicate")
	}
	if p, ok := findPredicate(preds, "album_tags"); !ok || p.Str != "trip-2019" {
		t.Errorf("album predicate = %+v", p)
	}
}

func TestBuildPredicates_StartDateResolution(t *testing.T) {
	tests := []struct {
		name      string
		mediaType MediaType
		albumKey  string
		startDate string
		wantKind  Kind
		wantInt   int64
	}{
		// 60 days before the fixed 2024-08-01 test clock.
		{"photo DEFAULT is a 60 day window", Photo, "", StartDefault, KindAtLeast, 2024060200},
		{"video DEFAULT is unbounded", Video, "", StartDefault, KindAtLeast, SentinelDateInt},
		{"explicit date used as given", Photo, "", "2022-03-15", KindAtLeast, 2022031500},
		{"empty date is unbounded", Photo, "", "", KindAtLeast, SentinelDateInt},
		{"album browses unbounded on DEFAULT", Photo, "trip-2019", StartDefault, KindAtLeast, SentinelDateInt},
		{"album keeps an explicit date", Photo, "trip-2019", "2019-06-01", KindAtLeast, 2019060100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := MediaQuery{MediaType: tt.mediaType, AlbumKey: tt.albumKey, StartDate: tt.startDate}
			preds := BuildPredicates(q, testDefaults, testNow)

			p, ok := findPredicate(preds, "taken_file_time")
			if !ok {
				t.Fatal("missing date predicate")
			}
			if p.Kind != tt.wantKind || p.Int != tt.wantInt {
				t.Errorf("date predicate = %+v, want kind %v int %d", p, tt.wantKind, tt.wantInt)
			}
		})
	}
}

func TestBuildPredicates_ExclusiveCursor(t *testing.T) {
	q := MediaQuery{MediaType: Photo, StartDate: "2023-09-01T12:00:00", StartExclusive: true}
	preds := BuildPredicates(q, testDefaults, testNow)

	p, ok := findPredicate(preds, "taken_file_time")
	if !ok {
		t.Fatal("missing date predicate")
	}
	if p.Kind != KindAfter || p.Int != 2023090112 {
		t.Errorf("cursor predicate = %+v, want strict > 2023090112", p)
	}
}

func TestPredicate_Clause(t *testing.T) {
	tests := []struct {
		name     string
		pred     Predicate
		wantExpr string
		wantArg  interface{}
	}{
		{"equals", Predicate{Kind: KindEquals, Field: "media_type_id", Int: 1}, "media_type_id = ?", int64(1)},
		{"contains", Predicate{Kind: KindContains, Field: "category_tags", Str: "Smith"}, "category_tags LIKE ?", "%Smith%"},
		{"contains folds case", Predicate{Kind: KindContainsFold, Field: "search_str", Str: "Beach Day"}, "LOWER(search_str) LIKE ?", "%beach day%"},
		{"at least", Predicate{Kind: KindAtLeast, Field: "taken_file_time", Int: 2024060100}, "taken_file_time >= ?", int64(2024060100)},
		{"after", Predicate{Kind: KindAfter, Field: "taken_file_time", Int: 2024060100}, "taken_file_time > ?", int64(2024060100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, arg := tt.pred.Clause()
			if expr != tt.wantExpr || arg != tt.wantArg {
				t.Errorf("Clause() = (%q, %v), want (%q, %v)", expr, arg, tt.wantExpr, tt.wantArg)
			}
		})
	}
}
