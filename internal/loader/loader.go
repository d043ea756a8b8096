package loader

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/aryannaik/clusterview/internal/clusters"
	"github.com/aryannaik/clusterview/internal/state"
)

// FileName is the resource name of the cluster database, resolved relative
// to a source location.
const FileName = "clusters.json"

// Source retrieves the cluster database.
type Source interface {
	Load(ctx context.Context) (*clusters.Database, error)
	String() string
}

// NewSource returns an HTTPSource for http(s) locations and a FileSource
// otherwise.
func NewSource(location string) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPSource(location)
	}
	return NewFileSource(location)
}

// HTTPSource fetches clusters.json from a base URL.
type HTTPSource struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// URL is the address of clusters.json.
func (s *HTTPSource) URL() string {
	return s.baseURL + "/" + FileName
}

// BaseURL is the location clusters.json and its thumbnails are resolved
// against.
func (s *HTTPSource) BaseURL() string {
	return s.baseURL
}

func (s *HTTPSource) String() string {
	return s.URL()
}

func (s *HTTPSource) Load(ctx context.Context) (*clusters.Database, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.URL(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", s.URL(), resp.StatusCode)
	}

	return clusters.Decode(resp.Body)
}

// FileSource reads clusters.json from a directory.
type FileSource struct {
	dir string
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// Dir is the directory holding clusters.json and the thumbnail directory.
func (s *FileSource) Dir() string {
	return s.dir
}

// Path is the full path of clusters.json.
func (s *FileSource) Path() string {
	return filepath.Join(s.dir, FileName)
}

func (s *FileSource) String() string {
	return s.Path()
}

func (s *FileSource) Load(ctx context.Context) (*clusters.Database, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path())
	if err != nil {
		return nil, fmt.Errorf("open cluster database: %w", err)
	}
	defer f.Close()

	return clusters.Decode(f)
}

// LoadInto loads the database from src and replaces the store's copy.
// Failures are logged and leave the store untouched, as does a load that
// completes after ctx is done. The return value reports whether the store
// was updated.
func LoadInto(ctx context.Context, src Source, store *state.Store) bool {
	db, err := src.Load(ctx)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		log.Error("Failed to load cluster database", "source", src, "err", err)
		return false
	}

	for _, s := range db.Skipped {
		log.Warn("Skipped malformed cluster", "source", src, "index", s.Index, "reason", s.Reason)
	}

	store.Set(db)
	log.Info("Loaded cluster database", "source", src, "clusters", len(db.Clusters), "skipped", len(db.Skipped))
	return true
}
