package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/veronicaguo/electricitymap-contrib/internal/charts"
	"github.com/veronicaguo/electricitymap-contrib/internal/interaction"
	"github.com/veronicaguo/electricitymap-contrib/internal/logger"
	"github.com/veronicaguo/electricitymap-contrib/internal/mixgraph"
	"github.com/veronicaguo/electricitymap-contrib/internal/models"
)

// HandleRoot redirects to the default zone's mix page.
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/zone/"+s.Config.DefaultZone, http.StatusFound)
}

// HandleHealth provides health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks": map[string]string{
			"storage": "ok",
			"config":  "ok",
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}

// HandleZone serves everything under /zone/{id}: the mix page, the static
// chart image, and the hover interaction endpoints.
func (s *Server) HandleZone(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/zone/")
	zoneID, rest, _ := strings.Cut(path, "/")
	if zoneID == "" {
		http.Error(w, "Zone required", http.StatusBadRequest)
		return
	}

	switch rest {
	case "":
		s.serveZonePage(w, r, zoneID)
	case "chart.png":
		s.serveZonePNG(w, r, zoneID)
	case "hover":
		s.serveHover(w, r, zoneID)
	case "hover/out":
		s.serveHoverOut(w, r)
	default:
		http.NotFound(w, r)
	}
}

// buildLayerSet fetches the zone's history and derives the chart dataset with
// the display options from the request (falling back to configured defaults).
func (s *Server) buildLayerSet(r *http.Request, zoneID string) (*mixgraph.LayerSet, *models.ZoneDetails, error) {
	details, err := s.Source.FetchZoneDetails(r.Context(), zoneID)
	if err != nil {
		return nil, nil, err
	}

	q := r.URL.Query()
	opts := mixgraph.BuildOptions{
		ColorBlind:         boolParam(q.Get("colorblind"), s.Config.ColorBlindMode),
		DisplayByEmissions: boolParam(q.Get("emissions"), s.Config.DisplayByEmissions),
		MixMode:            s.Config.ElectricityMixMode(),
		ExchangeKeys:       details.ExchangeKeys,
	}
	if mode := q.Get("mixmode"); mode == string(models.MixModeProduction) || mode == string(models.MixModeConsumption) {
		opts.MixMode = models.ElectricityMixMode(mode)
	}

	return s.Builder.Layers(details.History, opts), details, nil
}

func (s *Server) serveZonePage(w http.ResponseWriter, r *http.Request, zoneID string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ls, details, err := s.buildLayerSet(r, zoneID)
	if err != nil {
		logger.Error("Failed to build zone page dataset", err, map[string]interface{}{"zone": zoneID})
		http.Error(w, fmt.Sprintf("Failed to load zone %s", zoneID), http.StatusBadGateway)
		return
	}

	title := fmt.Sprintf("Electricity mix — %s", details.ZoneID)
	snippet, err := charts.BuildSnippet(s.HTMLChart, ls, "mix-graph", title)
	if err != nil {
		logger.Error("Failed to render mix chart", err, map[string]interface{}{"zone": zoneID})
		http.Error(w, "Failed to render chart", http.StatusInternalServerError)
		return
	}

	page, err := s.Pages.BuildZonePage(details, ls, snippet)
	if err != nil {
		logger.Error("Failed to build zone page", err, map[string]interface{}{"zone": zoneID})
		http.Error(w, "Failed to build page", http.StatusInternalServerError)
		return
	}

	if q := r.URL.Query(); q.Get("snapshot") == "1" {
		s.storeSnapshot(r, zoneID, page, ls)
	}

	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(page))
}

func (s *Server) serveZonePNG(w http.ResponseWriter, r *http.Request, zoneID string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ls, details, err := s.buildLayerSet(r, zoneID)
	if err != nil {
		logger.Error("Failed to build chart dataset", err, map[string]interface{}{"zone": zoneID})
		http.Error(w, fmt.Sprintf("Failed to load zone %s", zoneID), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	title := fmt.Sprintf("Electricity mix — %s", details.ZoneID)
	if err := s.PNGChart.Render(ls, title, w); err != nil {
		logger.Error("Failed to render PNG chart", err, map[string]interface{}{"zone": zoneID})
		http.Error(w, "Failed to render chart", http.StatusInternalServerError)
	}
}

// serveHover drives the interaction callbacks from query parameters and
// returns the resulting selection and tooltip state. A negative or missing
// layer index means the pointer is over the chart background.
func (s *Server) serveHover(w http.ResponseWriter, r *http.Request, zoneID string) {
	ls, _, err := s.buildLayerSet(r, zoneID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to load zone %s", zoneID), http.StatusBadGateway)
		return
	}

	q := r.URL.Query()
	timeIndex, err := strconv.Atoi(q.Get("index"))
	if err != nil {
		http.Error(w, "index parameter required", http.StatusBadRequest)
		return
	}
	layerIndex := -1
	if v := q.Get("layer"); v != "" {
		if layerIndex, err = strconv.Atoi(v); err != nil {
			http.Error(w, "invalid layer parameter", http.StatusBadRequest)
			return
		}
	}
	pointer := interaction.Point{
		X: floatParam(q.Get("x")),
		Y: floatParam(q.Get("y")),
	}
	// Pointer type comes from the client; the config default covers clients
	// that do not report one.
	s.Controller.SetMobile(boolParam(q.Get("mobile"), s.Config.MobileMode))

	dispatcher := charts.NewDispatcher(ls, s.callbacks())
	if layerIndex >= 0 {
		dispatcher.PointerOverLayer(layerIndex, timeIndex, pointer)
	} else {
		dispatcher.PointerOverBackground(timeIndex)
	}

	s.writeInteractionState(w, ls)
}

func (s *Server) serveHoverOut(w http.ResponseWriter, r *http.Request) {
	// Leaving the chart clears both the layer and background selection.
	dispatcher := charts.NewDispatcher(&mixgraph.LayerSet{}, s.callbacks())
	dispatcher.PointerOutLayer()
	dispatcher.PointerOutBackground()

	s.writeInteractionState(w, nil)
}

// callbacks binds the chart dispatcher to the interaction controller.
func (s *Server) callbacks() charts.Callbacks {
	return charts.Callbacks{
		BackgroundHover: s.Controller.BackgroundHover,
		BackgroundOut:   s.Controller.BackgroundOut,
		LayerHover:      s.Controller.LayerHover,
		LayerOut:        s.Controller.LayerOut,
		MarkerUpdate:    s.Controller.MarkerUpdate,
		MarkerHide:      s.Controller.MarkerHide,
	}
}

func (s *Server) writeInteractionState(w http.ResponseWriter, ls *mixgraph.LayerSet) {
	state := map[string]interface{}{}

	if idx, ok := s.Selection.SelectedTimeIndex(); ok {
		state["selectedTimeIndex"] = idx
	} else {
		state["selectedTimeIndex"] = nil
	}

	if tip := s.Controller.Tooltip(); tip != nil && ls != nil {
		state["tooltip"] = map[string]interface{}{
			"mode":     tip.Mode,
			"position": map[string]float64{"x": tip.Position.X, "y": tip.Position.Y},
			"html":     RenderTooltip(ls, tip),
		}
	} else {
		state["tooltip"] = nil
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state)
}

// storeSnapshot persists the rendered page and chart image.
func (s *Server) storeSnapshot(r *http.Request, zoneID, page string, ls *mixgraph.LayerSet) {
	now := time.Now()
	ctx := r.Context()

	if _, err := s.Snapshots.StoreSnapshot(ctx, []byte(page), "index.html", now); err != nil {
		logger.Warnf("Failed to store page snapshot for %s: %v", zoneID, err)
		return
	}

	var buf bytes.Buffer
	if err := s.PNGChart.Render(ls, fmt.Sprintf("Electricity mix — %s", zoneID), &buf); err != nil {
		logger.Warnf("Failed to render snapshot image for %s: %v", zoneID, err)
		return
	}
	if _, err := s.Snapshots.StoreSnapshot(ctx, buf.Bytes(), "chart.png", now); err != nil {
		logger.Warnf("Failed to store image snapshot for %s: %v", zoneID, err)
	}
}

// HandleListSnapshots lists recent snapshots
func (s *Server) HandleListSnapshots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
		if limit > 100 {
			limit = 100
		}
	}

	snapshots, err := s.Snapshots.ListSnapshots(r.Context(), limit)
	if err != nil {
		logger.Error("Failed to list snapshots", err)
		http.Error(w, "Failed to list snapshots", http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"snapshots": snapshots,
		"count":     len(snapshots),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// HandleFileProxy serves stored snapshot files through the service
func (s *Server) HandleFileProxy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/files/")
	if path == "" {
		http.Error(w, "File path required", http.StatusBadRequest)
		return
	}

	data, err := s.Snapshots.GetFile(r.Context(), path)
	if err != nil {
		logger.Warnf("Failed to get file %s: %v", path, err)
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(path))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}

func boolParam(v string, fallback bool) bool {
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func floatParam(v string) float64 {
	f, _ := strconv.ParseFloat(v, 64)
	return f
}
