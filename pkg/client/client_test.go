package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"media-gallery-api/internal/gallery"
	"media-gallery-api/internal/models"
)

func galleryServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL)
}

func itemsHandler(t *testing.T, items []models.Media) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/media/query" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(items)
	}
}

func TestClient_Query(t *testing.T) {
	items := []models.Media{
		{ID: "a", TakenDateTime: "2023-05-10T09:00:00"},
		{ID: "b", TakenDateTime: "2023-09-01T12:00:00"},
	}
	c := galleryServer(t, itemsHandler(t, items))

	got, err := c.Query(context.Background(), QueryRequest{MediaFilterMediaType: 1})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("Query() = %+v", got)
	}
}

func TestClient_QueryError_PrefersStructuredMessage(t *testing.T) {
	c := galleryServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"errors": [{"message": "Failed to fetch media"}], "detail": "ignored"}`))
	})

	_, err := c.Query(context.Background(), QueryRequest{MediaFilterMediaType: 1})
	if err == nil || err.Error() != "Failed to fetch media" {
		t.Errorf("err = %v, want the structured message", err)
	}
}

func TestClient_QueryError_FallsBackToPlainText(t *testing.T) {
	c := galleryServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable\n"))
	})

	_, err := c.Query(context.Background(), QueryRequest{MediaFilterMediaType: 1})
	if err == nil || err.Error() != "upstream unavailable" {
		t.Errorf("err = %v, want the plain body text", err)
	}
}

func TestClient_QueryError_EmptyBody(t *testing.T) {
	c := galleryServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.Query(context.Background(), QueryRequest{MediaFilterMediaType: 1})
	if err == nil || err.Error() != "request failed: Service Unavailable" {
		t.Errorf("err = %v", err)
	}
}

func TestClient_Update(t *testing.T) {
	c := galleryServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req UpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode update request: %v", err)
		}
		if req.FileListIndex != -1 || len(req.MediaInfoFileList) != 2 {
			t.Errorf("unexpected update request %+v", req)
		}
		w.Write([]byte("Updated 1 of 1 media items"))
	})

	msg, err := c.Update(context.Background(), UpdateRequest{
		MediaFilterMediaType: 1,
		MediaInfoFileList: []models.Media{
			{ID: "a", Selected: true},
			{ID: "b"},
		},
		FileListIndex: -1,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if msg != "Updated 1 of 1 media items" {
		t.Errorf("Update() = %q", msg)
	}
}

func TestClient_PeopleList(t *testing.T) {
	c := galleryServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]string{"Alice", "Bob"})
	})

	people, err := c.PeopleList(context.Background())
	if err != nil {
		t.Fatalf("PeopleList() error = %v", err)
	}
	if len(people) != 2 || people[0] != "Alice" {
		t.Errorf("PeopleList() = %v", people)
	}
}

func TestSession_RunDerivesButtons(t *testing.T) {
	items := []models.Media{
		{ID: "a", TakenDateTime: "2023-05-10T09:00:00"},
		{ID: "b", TakenDateTime: "2023-09-01T12:00:00"},
	}
	c := galleryServer(t, itemsHandler(t, items))

	session := NewSession(c, gallery.Photo)
	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(session.Items) != 2 {
		t.Fatalf("Items = %+v", session.Items)
	}
	if len(session.Buttons) == 0 {
		t.Fatal("no buttons derived")
	}
	if session.Buttons[0].FilterName != gallery.FilterStartDate || session.Buttons[0].StartDate != "2023-05-10" {
		t.Errorf("first button = %+v", session.Buttons[0])
	}
}

func TestSession_ApplyNextButton(t *testing.T) {
	session := NewSession(New("http://unused"), gallery.Photo)
	session.Buttons = gallery.DeriveFilterButtons(session.Query, []string{
		"2023-05-10T09:00:00", "2023-09-01T12:00:00",
	})

	var next gallery.FilterButton
	for _, b := range session.Buttons {
		if b.FilterName == gallery.FilterNext {
			next = b
		}
	}
	session.ApplyButton(next)

	if session.Query.StartDate != "2023-09-01T12:00:00" {
		t.Errorf("StartDate = %q", session.Query.StartDate)
	}
	if !session.Query.StartExclusive {
		t.Error("Next must set the exclusive cursor flag")
	}
}

func TestSession_FailedRunKeepsState(t *testing.T) {
	failing := false
	c := galleryServer(t, func(w http.ResponseWriter, r *http.Request) {
		if failing {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"errors": [{"message": "boom"}]}`))
			return
		}
		json.NewEncoder(w).Encode([]models.Media{{ID: "a", TakenDateTime: "2023-05-10"}})
	})

	session := NewSession(c, gallery.Photo)
	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	itemsBefore, buttonsBefore := len(session.Items), len(session.Buttons)

	failing = true
	if err := session.Run(context.Background()); err == nil {
		t.Fatal("expected an error")
	}
	if len(session.Items) != itemsBefore || len(session.Buttons) != buttonsBefore {
		t.Error("failed query must not touch the previous window")
	}
}

func TestSession_SearchDisplacesBrowseState(t *testing.T) {
	session := NewSession(New("http://unused"), gallery.Photo)
	session.SelectAlbum("trip-2019")
	session.ApplyButton(gallery.FilterButton{FilterName: gallery.FilterNext, StartDate: "2023-09-01T12:00:00", Exclusive: true})

	session.Search("beach")

	q := session.Query
	if q.SearchStr != "beach" || q.AlbumKey != "" || q.StartExclusive {
		t.Errorf("Query = %+v", q)
	}
	if q.StartDate != gallery.StartDefault || q.Category != gallery.CategoryDefault {
		t.Errorf("Query = %+v, want default browse position", q)
	}
}
