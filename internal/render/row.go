package render

import (
	"strings"

	"github.com/aryannaik/clusterview/internal/clusters"
)

// ThumbnailDir is the default directory thumbnails are served from,
// relative to the page.
const ThumbnailDir = "cluster_thumbnails/"

// Link is a hyperlink to one member domain.
type Link struct {
	Domain     string `json:"domain"`
	Href       string `json:"href"`
	Emphasized bool   `json:"emphasized"`
}

// Row is the display form of a cluster.
type Row struct {
	ID          string `json:"id"`
	DomainCount int    `json:"domainCount"`
	Links       []Link `json:"links"`
	Thumbnail   string `json:"thumbnail"`
}

// Renderer turns clusters into rows.
type Renderer struct {
	thumbnailPrefix string
}

// NewRenderer returns a Renderer that resolves thumbnails under prefix.
// An empty prefix means ThumbnailDir; a missing trailing slash is added.
func NewRenderer(prefix string) Renderer {
	if prefix == "" {
		prefix = ThumbnailDir
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return Renderer{thumbnailPrefix: prefix}
}

// ThumbnailPrefix returns the prefix prepended to thumbnail filenames.
func (r Renderer) ThumbnailPrefix() string {
	if r.thumbnailPrefix == "" {
		return ThumbnailDir
	}
	return r.thumbnailPrefix
}

// Row renders one cluster. Domains containing a non-empty keyword are
// emphasized.
func (r Renderer) Row(c clusters.Cluster, keyword string) Row {
	links := make([]Link, 0, len(c.Domains))
	for _, domain := range c.Domains {
		links = append(links, Link{
			Domain:     domain,
			Href:       "http://" + domain,
			Emphasized: keyword != "" && strings.Contains(domain, keyword),
		})
	}

	return Row{
		ID:          c.ID.String(),
		DomainCount: len(c.Domains),
		Links:       links,
		Thumbnail:   r.ThumbnailPrefix() + c.Thumbnail,
	}
}

// RowSet is an in-memory table body.
type RowSet struct {
	rows []Row
}

func (s *RowSet) Clear() {
	s.rows = s.rows[:0]
}

func (s *RowSet) Append(row Row) {
	s.rows = append(s.rows, row)
}

// Rows returns a copy of the current rows.
func (s *RowSet) Rows() []Row {
	out := make([]Row, len(s.rows))
	copy(out, s.rows)
	return out
}

func (s *RowSet) Len() int {
	return len(s.rows)
}
