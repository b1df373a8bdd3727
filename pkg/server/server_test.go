package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/padring/pkg/cache"
	"github.com/matzehuels/padring/pkg/errors"
	"github.com/matzehuels/padring/pkg/observability"
	"github.com/matzehuels/padring/pkg/pipeline"
	"github.com/matzehuels/padring/pkg/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(c, nil, logger)
	srv := httptest.NewServer(New(runner, store.NewMemoryStore(), logger).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, contentType, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("NewRequest() error: %v", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp := do(t, http.MethodGet, srv.URL+"/healthz", "", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decode[healthResponse](t, resp)
	if body.Status != "ok" || body.Build.Version == "" {
		t.Errorf("health = %+v", body)
	}
}

func TestLayoutLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/v1/layouts", "application/toml", "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	if got := resp.Header.Get(CacheHeader); got != "MISS" {
		t.Errorf("first create cache = %q, want MISS", got)
	}
	created := decode[createResponse](t, resp)
	if created.Pins != 52 || created.ID == "" {
		t.Fatalf("created = %+v", created)
	}
	if loc := resp.Header.Get("Location"); loc != "/v1/layouts/"+created.ID {
		t.Errorf("Location = %q", loc)
	}

	again := do(t, http.MethodPost, srv.URL+"/v1/layouts", "application/toml", "")
	if got := again.Header.Get(CacheHeader); got != "HIT" {
		t.Errorf("second create cache = %q, want HIT", got)
	}

	list := decode[[]store.Summary](t, do(t, http.MethodGet, srv.URL+"/v1/layouts", "", ""))
	if len(list) != 1 || list[0].ID != created.ID {
		t.Errorf("list = %+v", list)
	}

	get := do(t, http.MethodGet, srv.URL+"/v1/layouts/"+created.ID, "", "")
	if get.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d", get.StatusCode)
	}
	doc := decode[map[string]any](t, get)
	if doc["id"] != created.ID {
		t.Errorf("doc id = %v", doc["id"])
	}

	def := do(t, http.MethodGet, srv.URL+"/v1/layouts/"+created.ID+"/def?design=top", "", "")
	if def.StatusCode != http.StatusOK {
		t.Fatalf("def status = %d", def.StatusCode)
	}
	data, _ := io.ReadAll(def.Body)
	if !strings.Contains(string(data), "DESIGN top ;") {
		t.Errorf("def output missing design line:\n%.200s", data)
	}

	svg := do(t, http.MethodGet, srv.URL+"/v1/layouts/"+created.ID+"/svg?pins&width=400", "", "")
	if ct := svg.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("svg Content-Type = %q", ct)
	}
	data, _ = io.ReadAll(svg.Body)
	if !strings.Contains(string(data), `class="pin"`) {
		t.Error("svg output missing pins")
	}

	del := do(t, http.MethodDelete, srv.URL+"/v1/layouts/"+created.ID, "", "")
	if del.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d", del.StatusCode)
	}
	gone := do(t, http.MethodGet, srv.URL+"/v1/layouts/"+created.ID, "", "")
	if gone.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", gone.StatusCode)
	}
}

func TestCreateJSON(t *testing.T) {
	srv := newTestServer(t)
	resp := do(t, http.MethodPost, srv.URL+"/v1/layouts", "application/json", `{"db_units": 1000, "pins": {"layer": "met3"}}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	if got := decode[createResponse](t, resp); got.Width <= 0 || got.Height <= 0 {
		t.Errorf("created = %+v", got)
	}
}

func TestErrors(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name        string
		method      string
		path        string
		contentType string
		body        string
		status      int
		code        errors.Code
	}{
		{"bad toml", http.MethodPost, "/v1/layouts", "", "db_units = [", 422, errors.ErrCodeInvalidConfig},
		{"invalid config", http.MethodPost, "/v1/layouts", "", "db_units = 0", 422, errors.ErrCodeInvalidConfig},
		{"unknown json key", http.MethodPost, "/v1/layouts", "application/json", `{"nope": 1}`, 422, errors.ErrCodeInvalidConfig},
		{"lef rejected", http.MethodPost, "/v1/layouts", "", `lef = "cells.lef"`, 422, errors.ErrCodeInvalidConfig},
		{"missing layout", http.MethodGet, "/v1/layouts/missing", "", "", 404, errors.ErrCodeNotFound},
		{"unknown format", http.MethodGet, "/v1/layouts/missing/gds", "", "", 404, errors.ErrCodeNotFound},
		{"bad limit", http.MethodGet, "/v1/layouts?limit=x", "", "", 422, errors.ErrCodeInvalidFormat},
		{"no route", http.MethodGet, "/v2", "", "", 404, errors.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, tt.method, srv.URL+tt.path, tt.contentType, tt.body)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			body := decode[errorResponse](t, resp)
			if body.Code != tt.code {
				t.Errorf("code = %q, want %q (%s)", body.Code, tt.code, body.Message)
			}
		})
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeInsufficientSpace, "x"), http.StatusUnprocessableEntity},
		{errors.New(errors.ErrCodeInternal, "x"), http.StatusInternalServerError},
		{io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusOf(tt.err); got != tt.want {
			t.Errorf("statusOf(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

type recordingHooks struct {
	mu     sync.Mutex
	events []string
	routes []string
	status []int
}

func (h *recordingHooks) OnRequest(_ context.Context, method, path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, "request "+method+" "+path)
}

func (h *recordingHooks) OnResponse(_ context.Context, method, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, "response")
	h.routes = append(h.routes, method+" "+route)
	h.status = append(h.status, status)
}

func TestInstrumentReportsRoutePattern(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetServerHooks(hooks)
	t.Cleanup(observability.Reset)

	srv := newTestServer(t)
	do(t, http.MethodGet, srv.URL+"/v1/layouts/abc/def", "", "")

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if len(hooks.routes) != 1 {
		t.Fatalf("responses = %v, want 1", hooks.routes)
	}
	if hooks.routes[0] != "GET /v1/layouts/{id}/{format}" {
		t.Errorf("route = %q", hooks.routes[0])
	}
	if hooks.status[0] != http.StatusNotFound {
		t.Errorf("status = %d, want 404", hooks.status[0])
	}
	want := []string{"request GET /v1/layouts/abc/def", "response"}
	if !reflect.DeepEqual(hooks.events, want) {
		t.Errorf("events = %v, want %v", hooks.events, want)
	}
}

func TestRunShutsDown(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	s := New(pipeline.NewRunner(nil, nil, logger), nil, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
