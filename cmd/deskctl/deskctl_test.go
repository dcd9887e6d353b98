package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharedesk/internal/models"
	"sharedesk/utils"
)

type call struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
	Auth   string
}

type fakeAPI struct {
	mu    sync.Mutex
	calls []call
	fail  bool
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c := call{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Auth: r.Header.Get("Authorization")}
	_ = json.NewDecoder(r.Body).Decode(&c.Body)
	f.mu.Lock()
	f.calls = append(f.calls, c)
	fail := f.fail
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if fail {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"boom"}`))
		return
	}
	space := models.Space{ID: 4, Name: "Loft", City: "Skopje", Price: 300, MaxCapacity: 6, AvailableCapacity: 2, Benefits: "wifi,coffee"}
	switch {
	case r.URL.Path == "/api/Space/Browse":
		_ = json.NewEncoder(w).Encode(models.SpacePage{Spaces: []models.Space{space}, Page: 1, TotalPages: 1, Total: 1})
	case r.URL.Path == "/api/Space/4":
		_ = json.NewEncoder(w).Encode(space)
	case r.URL.Path == "/api/Notification/Notify" && r.Method == http.MethodGet:
		_, _ = w.Write([]byte(`{"notify":true}`))
	case r.URL.Path == "/api/Notification/UpdateAvailability":
		_ = json.NewEncoder(w).Encode(models.AvailabilityResult{Message: "Space availability updated and notifications sent", Notified: 2})
	case r.URL.Path == "/api/Rental/GetRentals":
		_ = json.NewEncoder(w).Encode([]models.Rental{
			{ID: 1, SpaceID: 4, UserID: "9", RentalApproval: models.RentalPending, StartDate: models.NewDate(2024, 6, 1), EndDate: models.NewDate(2024, 6, 3)},
			{ID: 2, SpaceID: 4, UserID: "8", RentalApproval: models.RentalApproved},
		})
	default:
		_, _ = w.Write([]byte(`{}`))
	}
}

func (f *fakeAPI) last() call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func run(t *testing.T, f *fakeAPI, args ...string) (string, error) {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(append([]string{"--api", srv.URL}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestSpacesList(t *testing.T) {
	f := &fakeAPI{}
	out, err := run(t, f, "spaces", "list", "--search", "sko", "--sort", "lowPrice", "--page", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "Loft")
	assert.Contains(t, out, "2/6")
	assert.Contains(t, out, "page 1 of 1 (1 spaces)")
	q := f.last().Query
	assert.Contains(t, q, "search=sko")
	assert.Contains(t, q, "sort=lowPrice")
	assert.Contains(t, q, "page=2")
}

func TestSpacesShowWithViewer(t *testing.T) {
	f := &fakeAPI{}
	out, err := run(t, f, "--user", "9", "spaces", "show", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "benefits:")
	assert.Contains(t, out, "wifi, coffee")
	assert.Contains(t, out, "notify:\ttrue")

	_, err = run(t, f, "spaces", "show", "x")
	assert.ErrorContains(t, err, "invalid space id")
}

func TestSpacesCapacity(t *testing.T) {
	f := &fakeAPI{}
	out, err := run(t, f, "--token", "tok", "spaces", "capacity", "4", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "notifications sent")
	assert.Contains(t, out, "notified 2, failed 0")

	c := f.last()
	assert.Equal(t, "Bearer tok", c.Auth)
	assert.EqualValues(t, 3, c.Body["newCapacity"])

	_, err = run(t, f, "spaces", "capacity", "4", "-1")
	assert.Error(t, err)
}

func TestNotifyToggle(t *testing.T) {
	f := &fakeAPI{}
	out, err := run(t, f, "--user", "9", "--email", "n@example.com", "notify", "on", "4")
	require.NoError(t, err)
	assert.Equal(t, "Notification enabled\n", out)
	assert.Equal(t, http.MethodPost, f.last().Method)

	out, err = run(t, f, "--user", "9", "notify", "off", "4")
	require.NoError(t, err)
	assert.Equal(t, "Notification disabled\n", out)
	assert.Equal(t, http.MethodDelete, f.last().Method)

	_, err = run(t, f, "--user", "9", "notify", "on", "4")
	assert.ErrorContains(t, err, "--email")
}

func TestRentalsRequestQuotesPrice(t *testing.T) {
	f := &fakeAPI{}
	out, err := run(t, f, "--user", "9", "--email", "r@example.com",
		"rentals", "request", "4", "--from", "2024-06-01", "--to", "2024-06-10")
	require.NoError(t, err)
	assert.Contains(t, out, "quoted price: 100.00")
	assert.Contains(t, out, "Rental added successfully")

	c := f.last()
	assert.Equal(t, "/api/Rental", c.Path)
	assert.EqualValues(t, 100, c.Body["customPrice"])
	assert.Equal(t, "2024-06-01", c.Body["startDate"])
}

func TestRentalsListAndActions(t *testing.T) {
	f := &fakeAPI{}
	out, err := run(t, f, "rentals", "list", "--space", "4", "--status", "pending")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-06-01")
	assert.True(t, strings.HasSuffix(out, "1 pending\n"), out)
	assert.Contains(t, f.last().Query, "spaceId=4")

	out, err = run(t, f, "rentals", "approve", "1")
	require.NoError(t, err)
	assert.Equal(t, "Rental approved successfully and email sent to the user.\n", out)
	assert.Equal(t, "/api/Rental/ApproveRental/1", f.last().Path)

	_, err = run(t, f, "rentals", "delete", "1")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, f.last().Method)

	f.fail = true
	_, err = run(t, f, "rentals", "reject", "1")
	assert.EqualError(t, err, "Failed to reject rental")
}

func TestTokenCommand(t *testing.T) {
	out, err := run(t, &fakeAPI{}, "--user", "7", "token", "--key", "secret")
	require.NoError(t, err)

	m, err := utils.NewManager("secret")
	require.NoError(t, err)
	claims, err := m.Parse(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)

	_, err = run(t, &fakeAPI{}, "--user", "ann", "token", "--key", "secret")
	assert.Error(t, err)
}
