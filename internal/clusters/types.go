package clusters

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ID is a cluster identifier. The dataset uses either numbers or strings;
// the literal text is kept as-is.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return ErrMissingID
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a number or string: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Cluster is one group of related sites.
type Cluster struct {
	ID        ID
	Thumbnail string
	// Domains holds the keys of the "thumbnails" object in document order.
	Domains []string
}

// Skipped records a cluster entry that could not be decoded.
type Skipped struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Database is the decoded form of clusters.json.
type Database struct {
	Clusters []Cluster
	Skipped  []Skipped
}

var (
	ErrMissingClusters   = errors.New("missing clusters list")
	ErrMissingID         = errors.New("missing id")
	ErrMissingThumbnails = errors.New("missing thumbnails")
	ErrNotObject         = errors.New("not a JSON object")
)

// document is the raw top-level shape of clusters.json.
type document struct {
	Clusters *[]json.RawMessage `json:"clusters"`
}

// rawCluster is a single entry before validation.
type rawCluster struct {
	ID         *ID             `json:"id"`
	Thumbnail  string          `json:"thumbnail"`
	Thumbnails json.RawMessage `json:"thumbnails"`
}
