package http

import (
	"net/http"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

type galleryIndex struct {
	Categories []string                 `json:"categories"`
	Items      []interfaces.GalleryItem `json:"items"`
}

func (api *ReadAPI) registerGalleryRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "gallery")
	mux.HandleFunc("GET "+root, api.handleGalleryIndex)
	mux.HandleFunc("GET "+root+"/{category}", api.handleGalleryCategory)
}

func (api *ReadAPI) handleGalleryIndex(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.gallery == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, galleryIndex{
		Categories: api.gallery.Categories(),
		Items:      api.gallery.All(),
	})
}

func (api *ReadAPI) handleGalleryCategory(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.gallery == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	items, err := api.gallery.Items(pathValue(r, "category"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
