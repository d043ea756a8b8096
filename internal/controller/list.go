package controller

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/aryannaik/clusterview/internal/clusters"
	"github.com/aryannaik/clusterview/internal/loader"
	"github.com/aryannaik/clusterview/internal/render"
	"github.com/aryannaik/clusterview/internal/state"
)

// Table is the container rows are rendered into.
type Table interface {
	Clear()
	Append(render.Row)
}

// KeywordSource provides the current filter keyword.
type KeywordSource interface {
	Keyword() string
}

// StaticKeyword is a fixed keyword.
type StaticKeyword string

func (k StaticKeyword) Keyword() string {
	return string(k)
}

// Keyword is a keyword that can be changed while a List is in use, like the
// contents of a text input.
type Keyword struct {
	mu    sync.RWMutex
	value string
}

func (k *Keyword) Set(v string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.value = v
}

func (k *Keyword) Keyword() string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.value
}

// List keeps a Table in sync with the store and a filter keyword.
type List struct {
	store    *state.Store
	renderer render.Renderer
	input    KeywordSource
	table    Table
}

func NewList(store *state.Store, renderer render.Renderer, input KeywordSource, table Table) *List {
	return &List{
		store:    store,
		renderer: renderer,
		input:    input,
		table:    table,
	}
}

// Refresh clears the table and fills it with one row per cluster matching
// the current keyword. Nothing is rendered before the first load.
// It returns the number of rows appended.
func (l *List) Refresh() int {
	l.table.Clear()

	keyword := l.input.Keyword()
	filtered := clusters.Filter(l.store.Clusters(), keyword)

	for _, c := range filtered {
		l.table.Append(l.renderer.Row(c, keyword))
	}

	log.Debug("Refreshed cluster list", "keyword", keyword, "rows", len(filtered))
	return len(filtered)
}

// Bootstrap loads the database and then refreshes the list once, whether
// or not the load succeeded.
func Bootstrap(ctx context.Context, src loader.Source, store *state.Store, list *List) {
	if !loader.LoadInto(ctx, src, store) {
		log.Warn("Initial load failed, rendering empty list", "source", src)
	}
	list.Refresh()
}
