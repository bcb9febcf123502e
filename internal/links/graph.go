package links

import (
	"sort"

	"github.com/lazydino/lazyblog/internal/post"
)

// GraphNode holds the resolved links of one post in both directions.
type GraphNode struct {
	Path      string   `json:"path"`
	Outbound  []string `json:"outbound"`
	Backlinks []string `json:"backlinks"`
}

// Graph connects posts through their resolved internal links.
type Graph struct {
	Nodes map[string]GraphNode
}

// BuildGraph resolves the links of every post through m. Links that do not
// resolve to one of posts, and links of a post to itself, are left out.
func BuildGraph(posts []post.Post, m Map) Graph {
	known := make(map[string]struct{}, len(posts))
	for _, p := range posts {
		known[p.Path] = struct{}{}
	}

	outbound := make(map[string]map[string]struct{}, len(posts))
	backlinks := make(map[string]map[string]struct{}, len(posts))
	for _, p := range posts {
		for _, l := range m.ResolveAll(p.Body) {
			if !l.Resolved || l.Target == p.Path {
				continue
			}
			if _, ok := known[l.Target]; !ok {
				continue
			}
			add(outbound, p.Path, l.Target)
			add(backlinks, l.Target, p.Path)
		}
	}

	graph := Graph{Nodes: make(map[string]GraphNode, len(posts))}
	for _, p := range posts {
		graph.Nodes[p.Path] = GraphNode{
			Path:      p.Path,
			Outbound:  sortedKeys(outbound[p.Path]),
			Backlinks: sortedKeys(backlinks[p.Path]),
		}
	}
	return graph
}

func add(m map[string]map[string]struct{}, from, to string) {
	set, ok := m[from]
	if !ok {
		set = make(map[string]struct{})
		m[from] = set
	}
	set[to] = struct{}{}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
