package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"devreg/pkg/db"
	"devreg/pkg/device/schema"
)

func newTestRouter(t *testing.T) *Router {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatalf("db.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := database.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	validator, err := schema.NewValidator()
	if err != nil {
		t.Fatalf("NewValidator() error = %v", err)
	}

	return NewRouter(database, validator)
}

func doRequest(t *testing.T, router *Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	w := httptest.NewRecorder()
	router.Handler().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v\n%s", err, w.Body.String())
	}
	return body
}

func TestDeviceLifecycle(t *testing.T) {
	router := newTestRouter(t)

	// Register
	w := doRequest(t, router, http.MethodPost, "/devices", `{"name":"Kitchen Light","type":"light"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /devices status = %d, want 201\n%s", w.Code, w.Body.String())
	}

	created := decodeBody(t, w)["device"].(map[string]any)
	if created["status"] != "offline" {
		t.Errorf("status = %v, want offline", created["status"])
	}
	if config, ok := created["config"].(map[string]any); !ok || len(config) != 0 {
		t.Errorf("config = %v, want empty object", created["config"])
	}

	id := strconv.Itoa(int(created["id"].(float64)))

	// Update status only
	w = doRequest(t, router, http.MethodPut, "/devices/"+id, `{"status":"on"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("PUT /devices/%s status = %d, want 200\n%s", id, w.Code, w.Body.String())
	}
	updated := decodeBody(t, w)["device"].(map[string]any)
	if updated["status"] != "on" {
		t.Errorf("status after update = %v, want on", updated["status"])
	}
	if config, ok := updated["config"].(map[string]any); !ok || len(config) != 0 {
		t.Errorf("config changed on status update: %v", updated["config"])
	}

	// Delete
	w = doRequest(t, router, http.MethodDelete, "/devices/"+id, "")
	if w.Code != http.StatusOK {
		t.Fatalf("DELETE /devices/%s status = %d, want 200\n%s", id, w.Code, w.Body.String())
	}
	deleted := decodeBody(t, w)["deleted_device"].(map[string]any)
	if deleted["name"] != "Kitchen Light" || deleted["type"] != "light" {
		t.Errorf("deleted_device = %v", deleted)
	}

	// Gone
	w = doRequest(t, router, http.MethodGet, "/devices/"+id, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("GET after delete status = %d, want 404", w.Code)
	}
}

func TestRegisterDevice_InvalidType(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/devices", `{"name":"Toaster","type":"toaster"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400\n%s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["error"] != "validation_error" {
		t.Errorf("error = %v, want validation_error", body["error"])
	}
	if details, _ := body["details"].(string); details == "" {
		t.Error("expected validation details in response")
	}
}

func TestRegisterDevice_MalformedJSON(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/devices", `{"name":`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestUpdateDevice_EmptyBody(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/devices", `{"name":"Lamp","type":"light"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST status = %d, want 201", w.Code)
	}
	id := strconv.Itoa(int(decodeBody(t, w)["device"].(map[string]any)["id"].(float64)))

	w = doRequest(t, router, http.MethodPut, "/devices/"+id, `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400\n%s", w.Code, w.Body.String())
	}
	if body := decodeBody(t, w); body["error"] != "validation_error" {
		t.Errorf("error = %v, want validation_error", body["error"])
	}
}

func TestUpdateDevice_NotFound(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPut, "/devices/9999", `{"status":"on"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestListDevices_SummaryOmitsConfig(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/devices",
		`{"name":"Cam","type":"camera","config":{"resolution":"1080p"}}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST status = %d, want 201", w.Code)
	}
	id := strconv.Itoa(int(decodeBody(t, w)["device"].(map[string]any)["id"].(float64)))

	w = doRequest(t, router, http.MethodGet, "/devices", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /devices status = %d, want 200", w.Code)
	}

	body := decodeBody(t, w)
	if body["count"] != float64(1) {
		t.Errorf("count = %v, want 1", body["count"])
	}
	summary := body["devices"].([]any)[0].(map[string]any)
	if _, present := summary["config"]; present {
		t.Error("summary view must not include config")
	}

	// Detail view carries the config
	w = doRequest(t, router, http.MethodGet, "/devices/"+id, "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /devices/%s status = %d, want 200", id, w.Code)
	}
	detail := decodeBody(t, w)["device"].(map[string]any)
	config, ok := detail["config"].(map[string]any)
	if !ok || config["resolution"] != "1080p" {
		t.Errorf("detail config = %v, want resolution 1080p", detail["config"])
	}
}

func TestGetDevice_BadID(t *testing.T) {
	router := newTestRouter(t)

	for _, id := range []string{"abc", "0", "-3", "1.5"} {
		w := doRequest(t, router, http.MethodGet, "/devices/"+id, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("GET /devices/%s status = %d, want 400", id, w.Code)
			continue
		}
		if body := decodeBody(t, w); body["error"] != "invalid_id" {
			t.Errorf("GET /devices/%s error = %v, want invalid_id", id, body["error"])
		}
	}
}

func TestNoRoute(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if body := decodeBody(t, w); body["error"] != "not_found" {
		t.Errorf("error = %v, want not_found", body["error"])
	}
}

func TestIndex(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	body := decodeBody(t, w)
	endpoints, ok := body["endpoints"].(map[string]any)
	if !ok || len(endpoints) == 0 {
		t.Errorf("expected endpoint map, got %v", body["endpoints"])
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", w.Code, w.Body.String())
	}
	if body := decodeBody(t, w); body["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", body["status"])
	}
}
