package clusters

import "strings"

// Matches reports whether any domain contains keyword. The match is a
// case-sensitive substring test, so an empty keyword matches any cluster
// with at least one domain.
func (c Cluster) Matches(keyword string) bool {
	for _, domain := range c.Domains {
		if strings.Contains(domain, keyword) {
			return true
		}
	}
	return false
}

// Filter returns the clusters matching keyword, in input order.
func Filter(clusters []Cluster, keyword string) []Cluster {
	matched := make([]Cluster, 0, len(clusters))
	for _, c := range clusters {
		if c.Matches(keyword) {
			matched = append(matched, c)
		}
	}
	return matched
}
