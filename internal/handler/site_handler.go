package handler

import (
	"net/http"

	"github.com/lumina/backend/internal/config"
)

// SiteHandler serves the studio profile the frontend renders from.
type SiteHandler struct {
	site *config.Site
}

func NewSiteHandler(site *config.Site) *SiteHandler {
	return &SiteHandler{site: site}
}

// Site handles GET /api/site.
func (h *SiteHandler) Site(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=300")
	writeJSON(w, http.StatusOK, dataResponse{Data: h.site})
}
