package http

import (
	"net/http"

	"github.com/go-chi/render"

	"housecli/pkg/contracts/api"
)

// Version is stamped by the build; "dev" outside release builds.
var Version = "dev"

// HealthHandler serves GET /api/v1/health.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, api.HealthResponse{Status: "ok", Version: Version})
}
