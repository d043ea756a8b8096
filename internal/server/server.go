package server

import (
	"context"
	"net/http"
	"path"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/aryannaik/clusterview/internal/loader"
	"github.com/aryannaik/clusterview/internal/render"
	"github.com/aryannaik/clusterview/internal/state"
)

// New builds the HTTP server. When assetsDir is set, clusters.json and the
// thumbnail directory are served from it. Live clients are refreshed on
// store changes, and reloads may replace the database, until ctx is done.
func New(ctx context.Context, port string, assetsDir string, store *state.Store, src loader.Source, renderer render.Renderer) *http.Server {
	live := newHub(store, renderer)
	go live.run(ctx)

	handlers := newHandlers(ctx, store, src, renderer, live)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: handlers.Routes(assetsDir),
	}
	srv.RegisterOnShutdown(live.closeAll)

	log.Info("Server listening", "url", "http://localhost:"+port)
	return srv
}

// Routes returns the request multiplexer.
func (h *Handlers) Routes(assetsDir string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/clusters", h.HandleClusters)
	mux.HandleFunc("/api/status", h.HandleStatus)
	mux.HandleFunc("/api/reload", h.HandleReload)
	mux.HandleFunc("/ws", h.HandleLive)

	if assetsDir != "" {
		files := http.FileServer(http.Dir(assetsDir))
		mux.Handle("/"+loader.FileName, files)
		if route, ok := thumbnailRoute(h.renderer.ThumbnailPrefix()); ok {
			mux.Handle(route, files)
		}
	}

	mux.HandleFunc("/", h.HandleIndex)
	return mux
}

// thumbnailRoute maps a relative thumbnail prefix to the mux pattern that
// serves it. Absolute URLs are served elsewhere.
func thumbnailRoute(prefix string) (string, bool) {
	if strings.Contains(prefix, "://") {
		return "", false
	}
	dir := path.Clean("/" + prefix)
	if dir == "/" {
		return "", false
	}
	return dir + "/", true
}
