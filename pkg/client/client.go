// Package client is a Go client for the media gallery API. It carries the
// pieces that lived browser-side in the gallery UI: the per-view filter
// state, the navigation-button derivation, and the error-body handling for
// failed calls.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"media-gallery-api/internal/models"
)

// Client talks to one media gallery API server.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New builds a client for the API at baseURL. An in-flight call cannot be
// superseded, only completed or cancelled through its context.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken attaches a bearer token to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// QueryRequest is the gallery query wire format.
type QueryRequest struct {
	MediaFilterMediaType int    `json:"MediaFilterMediaType"`
	MediaFilterCategory  string `json:"MediaFilterCategory,omitempty"`
	MediaFilterStartDate string `json:"MediaFilterStartDate,omitempty"`
	MediaFilterMenuItem  string `json:"MediaFilterMenuItem,omitempty"`
	MediaFilterAlbumKey  string `json:"MediaFilterAlbumKey,omitempty"`
	MediaFilterSearchStr string `json:"MediaFilterSearchStr,omitempty"`
	StartExclusive       bool   `json:"startExclusive,omitempty"`
	MaxRows              int    `json:"maxRows,omitempty"`
}

// UpdateRequest is the admin batch-update wire format.
type UpdateRequest struct {
	MediaFilterMediaType int            `json:"MediaFilterMediaType"`
	MediaInfoFileList    []models.Media `json:"MediaInfoFileList"`
	FileListIndex        int            `json:"FileListIndex"`
}

// Query runs one gallery query and returns the result window.
func (c *Client) Query(ctx context.Context, req QueryRequest) ([]models.Media, error) {
	var items []models.Media
	if err := c.post(ctx, "/api/v1/media/query", req, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Update submits a metadata batch update and returns the server's status
// message.
func (c *Client) Update(ctx context.Context, req UpdateRequest) (string, error) {
	body, err := c.postRaw(ctx, "/api/v1/media/update", req)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// PeopleList fetches every known person name.
func (c *Client) PeopleList(ctx context.Context) ([]string, error) {
	var people []string
	if err := c.post(ctx, "/api/v1/media/people", nil, &people); err != nil {
		return nil, err
	}
	return people, nil
}

// Menus fetches the navigation menu for one media type.
func (c *Client) Menus(ctx context.Context, mediaType int) ([]models.Menu, error) {
	var menus []models.Menu
	if err := c.get(ctx, fmt.Sprintf("/api/v1/menus?mediaType=%d", mediaType), &menus); err != nil {
		return nil, err
	}
	return menus, nil
}

// Albums fetches the albums of one media type.
func (c *Client) Albums(ctx context.Context, mediaType int) ([]models.Album, error) {
	var albums []models.Album
	if err := c.get(ctx, fmt.Sprintf("/api/v1/albums?mediaType=%d", mediaType), &albums); err != nil {
		return nil, err
	}
	return albums, nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	raw, err := c.postRaw(ctx, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func (c *Client) postRaw(ctx context.Context, path string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.send(req)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	raw, err := c.send(req)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (c *Client) send(req *http.Request) ([]byte, error) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, responseError(resp.StatusCode, raw)
	}
	return raw, nil
}

// responseError converts a failed response into an error. A structured
// errors[0].message wins over the plain body text.
func responseError(status int, body []byte) error {
	var envelope struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Errors) > 0 && envelope.Errors[0].Message != "" {
		return errors.New(envelope.Errors[0].Message)
	}

	if msg := strings.TrimSpace(string(body)); msg != "" {
		return errors.New(msg)
	}
	return fmt.Errorf("request failed: %s", http.StatusText(status))
}
