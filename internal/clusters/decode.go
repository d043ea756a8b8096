package clusters

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Decode parses a clusters.json document. A document that is not valid JSON,
// whose top level is not an object, or that has no "clusters" list is an
// error. Individual entries that are malformed are left out of Clusters and
// listed in Skipped.
func Decode(r io.Reader) (*Database, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read cluster database: %w", err)
	}
	return Parse(data)
}

// Parse is Decode over an in-memory document.
func Parse(data []byte) (*Database, error) {
	if !isObject(data) {
		return nil, fmt.Errorf("decode cluster database: %w", ErrNotObject)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode cluster database: %w", err)
	}
	if doc.Clusters == nil {
		return nil, fmt.Errorf("decode cluster database: %w", ErrMissingClusters)
	}
	entries := *doc.Clusters

	db := &Database{
		Clusters: make([]Cluster, 0, len(entries)),
	}

	for i, raw := range entries {
		c, err := parseCluster(raw)
		if err != nil {
			db.Skipped = append(db.Skipped, Skipped{Index: i, Reason: err.Error()})
			continue
		}
		db.Clusters = append(db.Clusters, c)
	}

	return db, nil
}

func parseCluster(raw json.RawMessage) (Cluster, error) {
	if !isObject(raw) {
		return Cluster{}, ErrNotObject
	}

	var rc rawCluster
	if err := json.Unmarshal(raw, &rc); err != nil {
		return Cluster{}, err
	}
	if rc.ID == nil {
		return Cluster{}, ErrMissingID
	}
	if len(rc.Thumbnails) == 0 {
		return Cluster{}, ErrMissingThumbnails
	}

	domains, err := objectKeys(rc.Thumbnails)
	if err != nil {
		return Cluster{}, fmt.Errorf("thumbnails: %w", err)
	}

	return Cluster{
		ID:        *rc.ID,
		Thumbnail: rc.Thumbnail,
		Domains:   domains,
	}, nil
}

// objectKeys returns the keys of a JSON object in the order they appear.
// Repeated keys are reported once, at their first position.
func objectKeys(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, ErrNotObject
	}

	keys := []string{}
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}

		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return keys, nil
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
