package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/veronicaguo/electricitymap-contrib/internal/config"
)

const zonePayload = `{
	"zoneKey": "DE",
	"history": [
		{
			"datetime": "2026-08-24T12:00:00Z",
			"production": {"gas": 100, "wind": 50},
			"storage": {"battery": -40},
			"exchange": {"FR": 30},
			"productionCo2Intensities": {"gas": 490, "wind": 13},
			"exchangeCo2Intensities": {"FR": 56}
		},
		{
			"datetime": "2026-08-24T13:00:00Z",
			"production": {"gas": 120, "wind": 40},
			"storage": {"battery": 25},
			"exchange": {"FR": 10},
			"productionCo2Intensities": {"gas": 490, "wind": 13},
			"dischargeCo2Intensities": {"battery": 120},
			"exchangeCo2Intensities": {"FR": 56}
		}
	]
}`

func newTestServer(t *testing.T) (*Server, *http.ServeMux) {
	t.Helper()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(zonePayload))
	}))
	t.Cleanup(upstream.Close)

	cfg := &config.Config{
		Port:             "0",
		DataAPIURL:       upstream.URL,
		DefaultZone:      "DE",
		MixMode:          "consumption",
		Deployment:       "local",
		LocalSnapshotDir: t.TempDir(),
	}

	srv, err := NewServer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	t.Cleanup(func() { srv.Close() })

	return srv, srv.SetupRoutes()
}

func TestHandleRootRedirects(t *testing.T) {
	_, mux := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusFound)
	}
	if loc := rec.Header().Get("Location"); loc != "/zone/DE" {
		t.Errorf("Location = %q, want /zone/DE", loc)
	}
}

func TestHandleHealth(t *testing.T) {
	_, mux := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var health map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("health response is not JSON: %v", err)
	}
	if health["status"] != "healthy" {
		t.Errorf("status field = %v, want healthy", health["status"])
	}
}

func TestServeZonePage(t *testing.T) {
	_, mux := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/zone/DE", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{"Electricity Mix — DE", "gas", "FR (import)", "About this graph"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestServeZonePNG(t *testing.T) {
	_, mux := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/zone/DE/chart.png", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "\x89PNG") {
		t.Error("body is not a PNG")
	}
}

func TestServeHoverOverLayer(t *testing.T) {
	srv, mux := newTestServer(t)

	// Layer 0 is nuclear; hovering it selects the time index and shows a
	// tooltip anchored next to the pointer.
	req := httptest.NewRequest(http.MethodGet, "/zone/DE/hover?index=1&layer=0&x=100&y=200", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", rec.Code, rec.Body.String())
	}

	var state struct {
		SelectedTimeIndex *int `json:"selectedTimeIndex"`
		Tooltip           *struct {
			Mode     string             `json:"mode"`
			Position map[string]float64 `json:"position"`
			HTML     string             `json:"html"`
		} `json:"tooltip"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if state.SelectedTimeIndex == nil || *state.SelectedTimeIndex != 1 {
		t.Errorf("selectedTimeIndex = %v, want 1", state.SelectedTimeIndex)
	}
	if state.Tooltip == nil {
		t.Fatal("tooltip missing")
	}
	if state.Tooltip.Mode != "nuclear" {
		t.Errorf("tooltip mode = %q, want nuclear", state.Tooltip.Mode)
	}
	if state.Tooltip.Position["x"] != 116 || state.Tooltip.Position["y"] != 152 {
		t.Errorf("tooltip position = %v, want x=116 y=152", state.Tooltip.Position)
	}
	if !strings.Contains(state.Tooltip.HTML, "nuclear") {
		t.Errorf("tooltip html = %q", state.Tooltip.HTML)
	}

	if idx, ok := srv.Selection.SelectedTimeIndex(); !ok || idx != 1 {
		t.Errorf("store selection = %v, %v; want 1, true", idx, ok)
	}
}

func TestServeHoverMobilePinsTooltip(t *testing.T) {
	_, mux := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/zone/DE/hover?index=1&layer=0&x=100&y=200&mobile=true", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", rec.Code, rec.Body.String())
	}

	var state struct {
		Tooltip *struct {
			Position map[string]float64 `json:"position"`
		} `json:"tooltip"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if state.Tooltip == nil {
		t.Fatal("tooltip missing")
	}
	if state.Tooltip.Position["x"] != 0 || state.Tooltip.Position["y"] != 0 {
		t.Errorf("mobile tooltip position = %v, want the pinned origin", state.Tooltip.Position)
	}
}

func TestServeHoverBackground(t *testing.T) {
	srv, mux := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/zone/DE/hover?index=0", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if idx, ok := srv.Selection.SelectedTimeIndex(); !ok || idx != 0 {
		t.Errorf("store selection = %v, %v; want 0, true", idx, ok)
	}
	// Background hover does not show a tooltip
	if srv.Controller.Tooltip() != nil {
		t.Error("background hover should not create a tooltip")
	}
}

func TestServeHoverOutClearsState(t *testing.T) {
	srv, mux := newTestServer(t)

	// Hover a layer first, then leave the chart
	hover := httptest.NewRequest(http.MethodGet, "/zone/DE/hover?index=1&layer=3&x=10&y=10", nil)
	mux.ServeHTTP(httptest.NewRecorder(), hover)

	out := httptest.NewRequest(http.MethodGet, "/zone/DE/hover/out", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, out)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if _, ok := srv.Selection.SelectedTimeIndex(); ok {
		t.Error("leaving the chart should clear the selection")
	}
	if srv.Controller.Tooltip() != nil {
		t.Error("leaving the chart should hide the tooltip")
	}

	var state map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if state["selectedTimeIndex"] != nil || state["tooltip"] != nil {
		t.Errorf("state = %v, want cleared", state)
	}
}

func TestServeHoverRequiresIndex(t *testing.T) {
	_, mux := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/zone/DE/hover", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleZoneRequiresZone(t *testing.T) {
	_, mux := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/zone/", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	_, mux := newTestServer(t)

	// Render the page with snapshot persistence on
	req := httptest.NewRequest(http.MethodGet, "/zone/DE?snapshot=1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("page status = %d, want 200", rec.Code)
	}

	// The snapshot shows up in the listing
	list := httptest.NewRequest(http.MethodGet, "/snapshots", nil)
	listRec := httptest.NewRecorder()
	mux.ServeHTTP(listRec, list)

	var listing struct {
		Snapshots []string `json:"snapshots"`
		Count     int      `json:"count"`
	}
	if err := json.Unmarshal(listRec.Body.Bytes(), &listing); err != nil {
		t.Fatalf("listing is not JSON: %v", err)
	}
	if listing.Count != 1 {
		t.Fatalf("count = %d, want 1 snapshot", listing.Count)
	}

	// And the stored page is retrievable through the file proxy
	proxy := httptest.NewRequest(http.MethodGet, "/files/"+listing.Snapshots[0], nil)
	proxyRec := httptest.NewRecorder()
	mux.ServeHTTP(proxyRec, proxy)

	if proxyRec.Code != http.StatusOK {
		t.Fatalf("proxy status = %d, want 200", proxyRec.Code)
	}
	if ct := proxyRec.Header().Get("Content-Type"); ct != "text/html" {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	if !strings.Contains(proxyRec.Body.String(), "Electricity Mix — DE") {
		t.Error("proxied snapshot does not contain the page")
	}
}

func TestHandleFileProxyMissingFile(t *testing.T) {
	_, mux := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/files/2026/01/01/nope/index.html", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestBuildLayerSetQueryOverrides(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/zone/DE?emissions=true&mixmode=production", nil)
	ls, _, err := srv.buildLayerSet(req, "DE")
	if err != nil {
		t.Fatalf("buildLayerSet failed: %v", err)
	}
	if ls.AxisLabel() != "tCO₂eq / min" {
		t.Errorf("AxisLabel = %q, want emissions axis", ls.AxisLabel())
	}
	if ls.IsExchangeKey("FR") {
		t.Error("production mix mode should drop exchange layers")
	}
}
