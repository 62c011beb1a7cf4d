package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/lumina/backend/internal/model"
	"github.com/lumina/backend/internal/repository"
	"github.com/lumina/backend/internal/service"
)

// PortfolioHandler serves the public portfolio galleries.
type PortfolioHandler struct {
	galleryService service.GalleryService
}

func NewPortfolioHandler(galleryService service.GalleryService) *PortfolioHandler {
	return &PortfolioHandler{galleryService: galleryService}
}

// List handles GET /api/portfolio[?featured=true].
func (h *PortfolioHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := model.GalleryFilter{FeaturedOnly: r.URL.Query().Get("featured") == "true"}

	list, err := h.galleryService.List(r.Context(), filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "gallery list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Unable to load galleries.")
		return
	}

	galleries := list.Galleries
	if galleries == nil {
		galleries = []*model.Gallery{}
	}
	writeJSON(w, http.StatusOK, dataResponse{Data: galleries, Fallback: list.Fallback})
}

// Get handles GET /api/portfolio/{slug}.
func (h *PortfolioHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	res, err := h.galleryService.Get(r.Context(), slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Gallery not found.")
			return
		}
		slog.ErrorContext(r.Context(), "gallery lookup failed", "slug", slug, "error", err)
		writeError(w, http.StatusInternalServerError, "Unable to load gallery.")
		return
	}

	writeJSON(w, http.StatusOK, dataResponse{Data: res.Gallery, Fallback: res.Fallback})
}
