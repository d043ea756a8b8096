package clusters

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SingleCluster(t *testing.T) {
	db, err := Parse([]byte(`{"clusters":[{"id":1,"thumbnail":"a.png","thumbnails":{"foo.com":{}, "bar.com":{}}}]}`))
	require.NoError(t, err)
	require.Len(t, db.Clusters, 1)
	assert.Empty(t, db.Skipped)

	c := db.Clusters[0]
	assert.Equal(t, ID("1"), c.ID)
	assert.Equal(t, "a.png", c.Thumbnail)
	assert.Equal(t, []string{"foo.com", "bar.com"}, c.Domains)
}

func TestParse_KeepsDomainOrder(t *testing.T) {
	db, err := Parse([]byte(`{"clusters":[{"id":"x","thumbnail":"t.png","thumbnails":{
		"zeta.net": "z.png", "alpha.org": null, "mid.io": [1,2], "alpha.org": {"dup": true}
	}}]}`))
	require.NoError(t, err)
	require.Len(t, db.Clusters, 1)
	assert.Equal(t, []string{"zeta.net", "alpha.org", "mid.io"}, db.Clusters[0].Domains)
}

func TestParse_IDs(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want ID
	}{
		{"integer", `42`, "42"},
		{"float literal", `4.50`, "4.50"},
		{"string", `"c-17"`, "c-17"},
		{"empty string", `""`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := Parse([]byte(`{"clusters":[{"id":` + tt.raw + `,"thumbnail":"a.png","thumbnails":{"a.com":1}}]}`))
			require.NoError(t, err)
			require.Len(t, db.Clusters, 1)
			assert.Equal(t, tt.want, db.Clusters[0].ID)
		})
	}
}

func TestParse_SkipsMalformedClusters(t *testing.T) {
	doc := `{"clusters":[
		{"id":1,"thumbnail":"ok.png","thumbnails":{"ok.com":{}}},
		"not an object",
		{"thumbnail":"noid.png","thumbnails":{"noid.com":{}}},
		{"id":null,"thumbnail":"nullid.png","thumbnails":{"nullid.com":{}}},
		{"id":3,"thumbnail":"nothumbs.png"},
		{"id":4,"thumbnail":"arr.png","thumbnails":["a.com"]},
		{"id":5,"thumbnail":7,"thumbnails":{"x.com":{}}},
		{"id":true,"thumbnail":"b.png","thumbnails":{"b.com":{}}},
		{"id":6,"thumbnail":"empty.png","thumbnails":{}}
	]}`

	db, err := Parse([]byte(doc))
	require.NoError(t, err)

	require.Len(t, db.Clusters, 2)
	assert.Equal(t, ID("1"), db.Clusters[0].ID)
	assert.Equal(t, ID("6"), db.Clusters[1].ID)
	assert.Empty(t, db.Clusters[1].Domains)

	var indexes []int
	for _, s := range db.Skipped {
		indexes = append(indexes, s.Index)
		assert.NotEmpty(t, s.Reason)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, indexes)
	assert.Equal(t, ErrNotObject.Error(), db.Skipped[0].Reason)
	assert.Equal(t, ErrMissingID.Error(), db.Skipped[1].Reason)
	assert.Equal(t, ErrMissingThumbnails.Error(), db.Skipped[3].Reason)
}

func TestParse_MissingClustersList(t *testing.T) {
	for _, body := range []string{`{}`, `{"clusters":null}`, `{"cluster":[]}`} {
		_, err := Parse([]byte(body))
		assert.ErrorIs(t, err, ErrMissingClusters, "body %q", body)
	}

	db, err := Parse([]byte(`{"clusters":[]}`))
	require.NoError(t, err)
	assert.Empty(t, db.Clusters)
}

func TestDecode_MalformedDocument(t *testing.T) {
	for _, body := range []string{``, `null`, `{}`, `  null  `, `{"clusters":`, `[]`, `<html>oops</html>`, `{"clusters":{"id":1}}`} {
		_, err := Decode(strings.NewReader(body))
		assert.Error(t, err, "body %q", body)
	}
}
