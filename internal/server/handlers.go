package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/aryannaik/clusterview/internal/controller"
	"github.com/aryannaik/clusterview/internal/loader"
	"github.com/aryannaik/clusterview/internal/render"
	"github.com/aryannaik/clusterview/internal/state"
)

type Handlers struct {
	// ctx bounds background work started by requests, such as reloads.
	ctx      context.Context
	store    *state.Store
	src      loader.Source
	renderer render.Renderer
	live     *hub
}

func newHandlers(ctx context.Context, store *state.Store, src loader.Source, renderer render.Renderer, live *hub) *Handlers {
	return &Handlers{
		ctx:      ctx,
		store:    store,
		src:      src,
		renderer: renderer,
		live:     live,
	}
}

// rows runs one refresh for keyword into a fresh table.
func (h *Handlers) rows(keyword string) []render.Row {
	var table render.RowSet
	controller.NewList(h.store, h.renderer, controller.StaticKeyword(keyword), &table).Refresh()
	return table.Rows()
}

func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	keyword := r.URL.Query().Get("q")
	rows := h.rows(keyword)

	page := render.Page{
		Keyword:      keyword,
		Rows:         rows,
		Total:        len(rows),
		ClusterCount: h.store.Count(),
	}
	if db := h.store.Database(); db != nil {
		page.Skipped = len(db.Skipped)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.WritePage(w, page); err != nil {
		log.Error("Render page failed", "err", err)
	}
}

func (h *Handlers) HandleClusters(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("q")
	rows := h.rows(keyword)

	writeJSON(w, http.StatusOK, map[string]any{
		"keyword": keyword,
		"rows":    rows,
		"total":   len(rows),
	})
}

type statusResponse struct {
	Source       string `json:"source"`
	ClusterCount int    `json:"clusterCount"`
	Skipped      int    `json:"skipped"`
	LoadedAt     string `json:"loadedAt"`
	LiveClients  int    `json:"liveClients"`
}

func (h *Handlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		Source:       h.src.String(),
		ClusterCount: h.store.Count(),
		LiveClients:  h.live.count(),
	}
	if db := h.store.Database(); db != nil {
		resp.Skipped = len(db.Skipped)
	}
	if loadedAt := h.store.LoadedAt(); !loadedAt.IsZero() {
		resp.LoadedAt = loadedAt.UTC().Format("2006-01-02T15:04:05Z")
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) HandleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	go loader.LoadInto(h.ctx, h.src, h.store)

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "reload started"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
