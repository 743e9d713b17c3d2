package handlers

import (
	"net/http"
	"sort"

	"github.com/Davazzzz/carparts-request/internal/catalog"
	"github.com/Davazzzz/carparts-request/internal/httpx"
)

// CatalogHandler answers part lookup and search against the price list.
type CatalogHandler struct {
	catalog *catalog.Catalog
}

func NewCatalogHandler(c *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: c}
}

type partEntry struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// List returns every priced part. Parts without a price are left out of the
// picker entirely.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	parts := []partEntry{}
	for _, name := range h.catalog.Parts() {
		price, ok := h.catalog.Price(name)
		if !ok || price == 0 {
			continue
		}
		parts = append(parts, partEntry{Name: name, Price: price})
	}
	httpx.OK(w, httpx.Envelope{"parts": parts})
}

// Search matches the q parameter against part names. An empty query returns
// an empty list without touching the index.
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	parts := []partEntry{}
	if query == "" {
		httpx.OK(w, httpx.Envelope{"parts": parts})
		return
	}

	matches := h.catalog.Search(query)
	for name, price := range matches {
		parts = append(parts, partEntry{Name: name, Price: price})
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].Name < parts[j].Name })
	httpx.OK(w, httpx.Envelope{"parts": parts})
}
