package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/contentstack/pkg/cache"
	"github.com/matzehuels/contentstack/pkg/content"
	"github.com/matzehuels/contentstack/pkg/layout"
	"github.com/matzehuels/contentstack/pkg/observability"
	"github.com/matzehuels/contentstack/pkg/pipeline"
	"github.com/matzehuels/contentstack/pkg/snapshot"
	"github.com/matzehuels/contentstack/pkg/spocs"
	"github.com/matzehuels/contentstack/pkg/state"
)

const feedURL = "https://feeds.example.com/stories"

func layoutState() state.State {
	st := state.Initial()
	st.Layout = layout.Config{{Width: 12, Components: []layout.Component{{
		Type:       layout.TypeCardGrid,
		Feed:       &layout.FeedRef{URL: feedURL},
		Spocs:      &layout.SpocsConfig{Positions: []content.Position{{Index: 1}}},
		Properties: layout.Properties{layout.PropItems: 3},
	}}}}
	return st
}

const loadEvents = `[
  {"type":"FEED_UPDATE","data":{"url":"https://feeds.example.com/stories","feed":{"loaded":true,"data":{"recommendations":[
    {"url":"https://example.com/a"},{"url":"https://example.com/b"},{"url":"https://example.com/c"}]}}}},
  {"type":"FEEDS_UPDATE"},
  {"type":"SPOCS_UPDATE","data":{"data":{"newtab_spocs":{"items":[{"url":"https://ads.example.com/x","flight_id":"f"}]}}}},
  {"type":"LINK_BLOCKED","data":{"url":"https://example.com/b"}}
]`

type testServer struct {
	*httptest.Server
	store *state.Store
}

func newTestServer(t *testing.T, snaps snapshot.Store) *testServer {
	t.Helper()
	store := state.NewStore(layoutState(), nil)
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
	srv := New(Config{MaxBodyBytes: 64 << 10}, runner, store, snaps, nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &testServer{Server: ts, store: store}
}

func (ts *testServer) do(t *testing.T, method, path, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, nil)
	resp := ts.do(t, http.MethodGet, "/healthz", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	got := decodeBody[healthResponse](t, resp)
	if got.Status != "ok" || got.Ready {
		t.Errorf("health = %+v, want ok and not ready", got)
	}
}

func TestRequestID(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := ts.do(t, http.MethodGet, "/healthz", "")
	if id := resp.Header.Get(RequestIDHeader); len(id) != 36 {
		t.Errorf("generated request id = %q", id)
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	const given = "0b6f1c9e-2f5e-4d8c-9c43-2f1a3e6b7d10"
	req.Header.Set(RequestIDHeader, given)
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != given {
		t.Errorf("request id = %q, want %q", got, given)
	}
}

func TestTreeBeforeAndAfterEvents(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := ts.do(t, http.MethodGet, "/v1/tree", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get("X-Placeholders"); got != "1" {
		t.Errorf("placeholders before load = %s, want 1", got)
	}

	resp = ts.do(t, http.MethodPost, "/v1/events", loadEvents)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("events status = %d", resp.StatusCode)
	}
	ev := decodeBody[eventsResponse](t, resp)
	want := eventsResponse{Received: 4, Applied: 4, Dropped: 0, Version: 4, Ready: true}
	if diff := cmp.Diff(want, ev); diff != "" {
		t.Errorf("events response (-want +got):\n%s", diff)
	}

	resp = ts.do(t, http.MethodGet, "/v1/tree", "")
	if got := resp.Header.Get("X-Placeholders"); got != "0" {
		t.Errorf("placeholders after load = %s, want 0", got)
	}
	tree := decodeBody[layout.RenderTree](t, resp)
	var urls []string
	for _, it := range tree.Rows[0].Components[0].Data.Recommendations {
		urls = append(urls, it.URL)
	}
	// b was blocked; the spoc fills index 1.
	if diff := cmp.Diff([]string{"https://example.com/a", "https://ads.example.com/x", "https://example.com/c"}, urls); diff != "" {
		t.Errorf("recommendations (-want +got):\n%s", diff)
	}
}

func TestGatedEventsDroppedBeforeReady(t *testing.T) {
	ts := newTestServer(t, nil)
	resp := ts.do(t, http.MethodPost, "/v1/events",
		`{"events":[{"type":"LINK_BLOCKED","data":{"url":"https://example.com/a"}}]}`)
	got := decodeBody[eventsResponse](t, resp)
	if got.Applied != 0 || got.Dropped != 1 || got.Ready {
		t.Errorf("events response = %+v, want the event dropped", got)
	}
}

func TestTreeFormats(t *testing.T) {
	ts := newTestServer(t, nil)
	tests := []struct {
		query      string
		wantStatus int
		wantType   string
	}{
		{"", http.StatusOK, "application/json"},
		{"?format=dot", http.StatusOK, "text/vnd.graphviz"},
		{"?format=png", http.StatusBadRequest, "application/json"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp := ts.do(t, http.MethodGet, "/v1/tree"+tt.query, "")
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if got := resp.Header.Get("Content-Type"); got != tt.wantType {
				t.Errorf("content type = %q, want %q", got, tt.wantType)
			}
		})
	}
}

func TestResolvePostedState(t *testing.T) {
	ts := newTestServer(t, nil)

	st := layoutState()
	st.Prefs.Banners = []spocs.BannerRequest{{Type: "skyscraper"}}
	body, _ := json.Marshal(st)
	resp := ts.do(t, http.MethodPost, "/v1/resolve", string(body))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unsupported ad type status = %d, want 400", resp.StatusCode)
	}
	if got := decodeBody[errorResponse](t, resp); got.Code != "UNSUPPORTED_AD_TYPE" {
		t.Errorf("code = %s", got.Code)
	}

	body, _ = json.Marshal(layoutState())
	resp = ts.do(t, http.MethodPost, "/v1/resolve", string(body))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	got := decodeBody[resolveResponse](t, resp)
	if got.StateHash == "" || got.Stats.Placeholders != 1 {
		t.Errorf("resolve response = %+v", got)
	}
	// The live store is untouched.
	if ts.store.Version() != 0 {
		t.Errorf("store version = %d, want 0", ts.store.Version())
	}
}

func TestPutStateValidates(t *testing.T) {
	ts := newTestServer(t, nil)

	resp := ts.do(t, http.MethodPut, "/v1/state", `{"layout":[{"width":-1,"components":[]}]}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid layout status = %d, want 400", resp.StatusCode)
	}

	resp = ts.do(t, http.MethodPut, "/v1/state", `{"feeds":{"loaded":true},"spocs":{"loaded":true}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := decodeBody[storeResponse](t, resp); !got.Ready || got.Version != 1 {
		t.Errorf("put response = %+v", got)
	}

	resp = ts.do(t, http.MethodGet, "/v1/state", "")
	st := decodeBody[state.State](t, resp)
	if !state.IsReady(st) {
		t.Error("GET /v1/state does not reflect the replaced state")
	}
}

func TestEventsRejectInvalidLayout(t *testing.T) {
	ts := newTestServer(t, nil)

	body := `[{"type":"LAYOUT_UPDATE","data":{"layout":[{"width":12,"components":[` +
		`{"type":"CardGrid","feed":{"url":"ftp://nope"},"placement":{"name":"a:billboard"}}]}]}}]`
	resp := ts.do(t, http.MethodPost, "/v1/events", body)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if got := decodeBody[errorResponse](t, resp); got.Code != "INVALID_LAYOUT" {
		t.Errorf("code = %q, want INVALID_LAYOUT", got.Code)
	}
	if _, version := ts.store.SnapshotVersion(); version != 0 {
		t.Errorf("store version = %d, want 0", version)
	}
}

func TestTreeVersionHeader(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.do(t, http.MethodPost, "/v1/events", loadEvents)

	resp := ts.do(t, http.MethodGet, "/v1/tree", "")
	_, version := ts.store.SnapshotVersion()
	if got := resp.Header.Get("X-Store-Version"); got != fmt.Sprint(version) {
		t.Errorf("X-Store-Version = %s, want %d", got, version)
	}
}

func TestBodyTooLarge(t *testing.T) {
	ts := newTestServer(t, nil)
	big := `[` + strings.Repeat(`{"type":"LAYOUT_RESET"},`, 4<<10) + `{"type":"LAYOUT_RESET"}]`
	resp := ts.do(t, http.MethodPost, "/v1/events", big)
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", resp.StatusCode)
	}
}

func TestSnapshotRoutes(t *testing.T) {
	snaps, err := snapshot.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ts := newTestServer(t, snaps)

	resp := ts.do(t, http.MethodPost, "/v1/snapshots", `{"name":"empty"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("save status = %d", resp.StatusCode)
	}
	saved := decodeBody[snapshot.Summary](t, resp)

	ts.do(t, http.MethodPost, "/v1/events", loadEvents)
	if !state.IsReady(ts.store.Snapshot()) {
		t.Fatal("store not ready after events")
	}

	resp = ts.do(t, http.MethodPost, "/v1/snapshots/"+saved.ID+"/restore", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("restore status = %d", resp.StatusCode)
	}
	if state.IsReady(ts.store.Snapshot()) {
		t.Error("restore did not bring back the saved state")
	}

	resp = ts.do(t, http.MethodGet, "/v1/snapshots", "")
	list := decodeBody[[]snapshot.Summary](t, resp)
	if len(list) != 1 || list[0].Name != "empty" {
		t.Errorf("list = %+v", list)
	}

	if resp := ts.do(t, http.MethodDelete, "/v1/snapshots/"+saved.ID, ""); resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d", resp.StatusCode)
	}
	if resp := ts.do(t, http.MethodGet, "/v1/snapshots/"+saved.ID, ""); resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", resp.StatusCode)
	}
	if resp := ts.do(t, http.MethodGet, "/v1/snapshots/nope", ""); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", resp.StatusCode)
	}
}

func TestSnapshotRoutesDisabled(t *testing.T) {
	ts := newTestServer(t, nil)
	if resp := ts.do(t, http.MethodGet, "/v1/snapshots", ""); resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	statuses []int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.statuses = append(h.statuses, status)
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	srv := New(Config{}, pipeline.NewRunner(nil, nil, nil), state.NewStore(state.Initial(), nil), nil, nil)
	h := srv.Handler()

	for _, path := range []string{"/healthz", "/missing"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, bytes.NewReader(nil)))
	}
	if diff := cmp.Diff([]int{http.StatusOK, http.StatusNotFound}, hooks.statuses); diff != "" {
		t.Errorf("statuses (-want +got):\n%s", diff)
	}
}
