// Package client is a typed HTTP client for the SharedDesk API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"sharedesk/internal/browse"
	"sharedesk/internal/models"
)

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
	// Token, when set, is sent as a bearer token.
	Token string
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	var msg struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &msg); err == nil && msg.Message != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: msg.Message}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(data))}
}

func (c *Client) GetSpaces(ctx context.Context) ([]models.Space, error) {
	var spaces []models.Space
	err := c.do(ctx, http.MethodGet, "/api/Space/GetSpaces", nil, &spaces)
	return spaces, err
}

func (c *Client) BrowseSpaces(ctx context.Context, q browse.Query) (models.SpacePage, error) {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Sort != "" {
		v.Set("sort", string(q.Sort))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	var page models.SpacePage
	err := c.do(ctx, http.MethodGet, "/api/Space/Browse?"+v.Encode(), nil, &page)
	return page, err
}

func (c *Client) GetSpace(ctx context.Context, id int) (models.Space, error) {
	var space models.Space
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/Space/%d", id), nil, &space)
	return space, err
}

func (c *Client) GetSpacesByOwner(ctx context.Context, ownerID int) ([]models.Space, error) {
	var spaces []models.Space
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/Space/Owner/%d", ownerID), nil, &spaces)
	return spaces, err
}

func (c *Client) UpdateSpace(ctx context.Context, space models.Space) (models.Space, error) {
	var updated models.Space
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/Space/%d", space.ID), space, &updated)
	return updated, err
}

func (c *Client) GetImages(ctx context.Context, spaceID int) ([]string, error) {
	var images []string
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/Space/%d/Images", spaceID), nil, &images)
	return images, err
}

func (c *Client) UpdateAvailability(ctx context.Context, spaceID, capacity int) (models.AvailabilityResult, error) {
	body := map[string]int{"spaceId": spaceID, "newCapacity": capacity}
	var res models.AvailabilityResult
	err := c.do(ctx, http.MethodPost, "/api/Notification/UpdateAvailability", body, &res)
	return res, err
}

func (c *Client) GetNotify(ctx context.Context, spaceID int, userID string) (bool, error) {
	v := url.Values{"spaceId": {strconv.Itoa(spaceID)}, "userId": {userID}}
	var res struct {
		Notify bool `json:"notify"`
	}
	err := c.do(ctx, http.MethodGet, "/api/Notification/Notify?"+v.Encode(), nil, &res)
	return res.Notify, err
}

// SetNotify opts the user in when checked and out otherwise.
func (c *Client) SetNotify(ctx context.Context, spaceID int, userID, email string, checked bool) error {
	method := http.MethodDelete
	if checked {
		method = http.MethodPost
	}
	body := map[string]string{
		"spaceId": strconv.Itoa(spaceID),
		"userId":  userID,
		"email":   email,
	}
	return c.do(ctx, method, "/api/Notification/Notify", body, nil)
}

func (c *Client) CreateRental(ctx context.Context, rental models.Rental) (models.Rental, error) {
	var created models.Rental
	err := c.do(ctx, http.MethodPost, "/api/Rental", rental, &created)
	return created, err
}

func (c *Client) GetRentals(ctx context.Context, filter models.RentalFilter) ([]models.Rental, error) {
	v := url.Values{}
	if filter.SpaceID != 0 {
		v.Set("spaceId", strconv.Itoa(filter.SpaceID))
	}
	if filter.UserID != "" {
		v.Set("userId", filter.UserID)
	}
	if filter.Status != "" {
		v.Set("status", string(filter.Status))
	}
	var rentals []models.Rental
	err := c.do(ctx, http.MethodGet, "/api/Rental/GetRentals?"+v.Encode(), nil, &rentals)
	return rentals, err
}

func (c *Client) ApproveRental(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/Rental/ApproveRental/%d", id), nil, nil)
}

func (c *Client) RejectRental(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/Rental/RejectRental/%d", id), nil, nil)
}

func (c *Client) DeleteRental(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/Rental/%d", id), nil, nil)
}
