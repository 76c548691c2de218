package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/veronicaguo/electricitymap-contrib/internal/config"
	"github.com/veronicaguo/electricitymap-contrib/internal/server"
)

func TestHealthEndpoint(t *testing.T) {
	cfg := &config.Config{
		Port:             "8781",
		DefaultZone:      "DE",
		MixMode:          "consumption",
		Deployment:       "local",
		LocalSnapshotDir: t.TempDir(),
		Environment:      "test",
	}

	srv, err := server.NewServer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("server creation failed: %v", err)
	}
	defer srv.Close()

	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()
	srv.HandleHealth(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v",
			status, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), "healthy") {
		t.Errorf("handler returned unexpected body: got %v", rr.Body.String())
	}
}

func TestConfigLoad(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		t.Logf("Config load failed with current env vars: %v", err)
		return
	}
	if cfg.Port == "" {
		t.Error("loaded config has no port")
	}
}
