package server

import (
	"context"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/aryannaik/clusterview/internal/controller"
	"github.com/aryannaik/clusterview/internal/render"
	"github.com/aryannaik/clusterview/internal/state"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// filterRequest is sent by the page whenever the filter input changes.
type filterRequest struct {
	Keyword string `json:"keyword"`
}

// liveUpdate carries the rendered table body for one keyword.
type liveUpdate struct {
	Keyword string `json:"keyword"`
	Total   int    `json:"total"`
	HTML    string `json:"html"`
}

// liveClient is one connected page with its own filter keyword.
type liveClient struct {
	conn    *websocket.Conn
	mu      sync.Mutex
	keyword controller.Keyword
	rows    render.RowSet
	list    *controller.List
}

// filter sets the keyword and pushes the refreshed table.
func (c *liveClient) filter(keyword string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keyword.Set(keyword)
	return c.pushLocked()
}

func (c *liveClient) push() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pushLocked()
}

func (c *liveClient) pushLocked() error {
	total := c.list.Refresh()
	html, err := render.RowsHTML(c.rows.Rows())
	if err != nil {
		return err
	}
	return c.conn.WriteJSON(liveUpdate{
		Keyword: c.keyword.Keyword(),
		Total:   total,
		HTML:    html,
	})
}

// hub tracks live clients and re-renders them when the store changes.
type hub struct {
	store    *state.Store
	renderer render.Renderer

	mu      sync.RWMutex
	clients map[*liveClient]bool
}

func newHub(store *state.Store, renderer render.Renderer) *hub {
	return &hub{
		store:    store,
		renderer: renderer,
		clients:  make(map[*liveClient]bool),
	}
}

func (h *hub) run(ctx context.Context) {
	changes := h.store.Changes()
	for {
		select {
		case <-ctx.Done():
			return
		case <-changes:
			h.refreshAll()
		}
	}
}

func (h *hub) refreshAll() {
	h.mu.RLock()
	clients := make([]*liveClient, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.push(); err != nil {
			log.Debug("Live push failed, dropping client", "err", err)
			h.remove(c)
			c.conn.Close()
		}
	}
}

func (h *hub) add(conn *websocket.Conn) *liveClient {
	c := &liveClient{conn: conn}
	c.list = controller.NewList(h.store, h.renderer, &c.keyword, &c.rows)

	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
	return c
}

func (h *hub) remove(c *liveClient) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

func (h *hub) count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.conn.Close()
		delete(h.clients, c)
	}
}

// HandleLive upgrades to a websocket and serves filter requests until the
// client disconnects.
func (h *Handlers) HandleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("WebSocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	client := h.live.add(conn)
	defer h.live.remove(client)
	log.Debug("Live client connected", "remote", r.RemoteAddr)

	if err := client.push(); err != nil {
		return
	}

	for {
		var req filterRequest
		if err := conn.ReadJSON(&req); err != nil {
			break
		}
		if err := client.filter(req.Keyword); err != nil {
			break
		}
	}

	log.Debug("Live client disconnected", "remote", r.RemoteAddr)
}
