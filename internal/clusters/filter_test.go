package clusters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleClusters() []Cluster {
	return []Cluster{
		{ID: "1", Thumbnail: "a.png", Domains: []string{"foo.com", "bar.com"}},
		{ID: "2", Thumbnail: "b.png", Domains: []string{"example.org", "www.example.org"}},
		{ID: "3", Thumbnail: "c.png", Domains: []string{}},
		{ID: "4", Thumbnail: "d.png", Domains: []string{"Example.net"}},
	}
}

func TestFilter_EmptyKeywordKeepsNonEmptyClusters(t *testing.T) {
	got := Filter(sampleClusters(), "")
	assert.Equal(t, []ID{"1", "2", "4"}, ids(got))
}

func TestFilter_Substring(t *testing.T) {
	tests := []struct {
		keyword string
		want    []ID
	}{
		{"example", []ID{"2"}},
		{"Example", []ID{"4"}},
		{".com", []ID{"1"}},
		{"o", []ID{"1", "2"}},
		{"nomatch", []ID{}},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(sampleClusters(), tt.keyword)))
		})
	}
}

func TestFilter_EmptyInput(t *testing.T) {
	got := Filter(nil, "anything")
	assert.NotNil(t, got)
	assert.Empty(t, got)

	assert.Empty(t, Filter([]Cluster{}, ""))
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	in := sampleClusters()
	before := sampleClusters()

	_ = Filter(in, "example")
	assert.Equal(t, before, in)
}

func TestFilter_MatchesIffSomeDomainContainsKeyword(t *testing.T) {
	in := sampleClusters()
	for _, keyword := range []string{"", "a", "bar", "org", "x", "zzz", "com"} {
		got := Filter(in, keyword)
		included := make(map[ID]bool)
		for _, c := range got {
			included[c.ID] = true
		}
		for _, c := range in {
			assert.Equal(t, c.Matches(keyword), included[c.ID], "cluster %s keyword %q", c.ID, keyword)
		}
	}
}

func ids(cs []Cluster) []ID {
	out := make([]ID, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}
