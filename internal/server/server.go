package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/veronicaguo/electricitymap-contrib/internal/charts"
	"github.com/veronicaguo/electricitymap-contrib/internal/config"
	"github.com/veronicaguo/electricitymap-contrib/internal/interaction"
	"github.com/veronicaguo/electricitymap-contrib/internal/logger"
	"github.com/veronicaguo/electricitymap-contrib/internal/mixgraph"
	"github.com/veronicaguo/electricitymap-contrib/internal/sources"
	"github.com/veronicaguo/electricitymap-contrib/internal/storage"
)

// Server wires the mix graph pipeline to HTTP: fetch a zone's history, derive
// the layered dataset, render it, and expose the interaction surface.
type Server struct {
	Config     *config.Config
	Source     *sources.Client
	Selection  *interaction.Store
	Controller *interaction.Controller
	Builder    *mixgraph.Builder
	HTMLChart  *charts.EChartsRenderer
	PNGChart   *charts.PNGRenderer
	Pages      *PageBuilder
	Snapshots  storage.SnapshotStore
}

// NewServer creates a server instance for the configured deployment mode.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	store, err := storage.NewSnapshotStore(ctx, storage.DeploymentMode(cfg.Deployment), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize snapshot store: %w", err)
	}

	selection := interaction.NewStore()

	s := &Server{
		Config:     cfg,
		Source:     sources.NewClient(cfg.DataAPIURL, cfg.DataAPIToken),
		Selection:  selection,
		Controller: interaction.NewController(selection, cfg.MobileMode),
		Builder:    &mixgraph.Builder{},
		HTMLChart:  charts.NewEChartsRenderer(),
		PNGChart:   charts.NewPNGRenderer(),
		Pages:      NewPageBuilder(),
		Snapshots:  store,
	}

	logger.Infof("Server initialized (deployment=%s, default zone=%s)", cfg.Deployment, cfg.DefaultZone)
	return s, nil
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/zone/", s.HandleZone)
	mux.HandleFunc("/snapshots", s.HandleListSnapshots)
	mux.HandleFunc("/files/", s.HandleFileProxy)
	mux.HandleFunc("/", s.HandleRoot)

	return mux
}

// Close cleans up server resources
func (s *Server) Close() error {
	if s.Snapshots != nil {
		return s.Snapshots.Close()
	}
	return nil
}
