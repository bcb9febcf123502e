// Package tree groups posts into the folder hierarchy used for navigation.
package tree

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/lazydino/lazyblog/internal/pathutil"
	"github.com/lazydino/lazyblog/internal/post"
)

type Kind string

const (
	KindFolder Kind = "folder"
	KindFile   Kind = "file"
)

// Node is one entry of the navigation tree. Folder paths are the prefix up to
// and including the folder; file paths are the full document path.
type Node struct {
	Name     string  `json:"name"`
	Kind     Kind    `json:"type"`
	Path     string  `json:"path"`
	Children []*Node `json:"children,omitempty"`
	// HasPost marks a folder whose path is also a document.
	HasPost bool `json:"hasPost,omitempty"`
}

func (n *Node) IsFolder() bool { return n.Kind == KindFolder }

// Build arranges posts into a sorted forest. Folders come before files at
// every level and names never repeat among siblings.
func Build(posts []post.Post) []*Node {
	var roots []*Node
	for _, p := range posts {
		segments := pathutil.Segments(p.Path)
		if len(segments) == 0 {
			continue
		}
		level := &roots
		for i, name := range segments {
			prefix := strings.Join(segments[:i+1], "/")
			last := i == len(segments)-1
			existing := find(*level, name)

			switch {
			case existing == nil && last:
				*level = append(*level, &Node{Name: name, Kind: KindFile, Path: p.Path})
			case existing == nil:
				folder := &Node{Name: name, Kind: KindFolder, Path: prefix}
				*level = append(*level, folder)
				level = &folder.Children
			case last:
				if existing.IsFolder() {
					existing.HasPost = true
				}
			default:
				if !existing.IsFolder() {
					existing.Kind = KindFolder
					existing.Path = prefix
					existing.HasPost = true
				}
				level = &existing.Children
			}
		}
	}

	sortNodes(roots, collate.New(language.Und))
	return roots
}

func find(nodes []*Node, name string) *Node {
	for _, n := range nodes {
		if n.Name == name {
			return n
		}
	}
	return nil
}

func sortNodes(nodes []*Node, c *collate.Collator) {
	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i], nodes[j]
		if a.IsFolder() != b.IsFolder() {
			return a.IsFolder()
		}
		if cmp := c.CompareString(a.Name, b.Name); cmp != 0 {
			return cmp < 0
		}
		return a.Name < b.Name
	})
	for _, n := range nodes {
		if len(n.Children) > 0 {
			sortNodes(n.Children, c)
		}
	}
}

// SkipChildren can be returned from a WalkFunc to skip a folder's contents.
var SkipChildren = errors.New("skip children")

type WalkFunc func(n *Node, depth int) error

// Walk visits nodes depth first in display order.
func Walk(nodes []*Node, fn WalkFunc) error {
	return walk(nodes, 0, fn)
}

func walk(nodes []*Node, depth int, fn WalkFunc) error {
	for _, n := range nodes {
		err := fn(n, depth)
		if errors.Is(err, SkipChildren) {
			continue
		}
		if err != nil {
			return err
		}
		if err := walk(n.Children, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// Render writes the forest as an indented outline.
func Render(w io.Writer, nodes []*Node) error {
	return render(w, nodes, "")
}

func render(w io.Writer, nodes []*Node, indent string) error {
	for i, n := range nodes {
		branch, next := "├── ", "│   "
		if i == len(nodes)-1 {
			branch, next = "└── ", "    "
		}
		label := n.Name
		if n.IsFolder() {
			label += "/"
			if n.HasPost {
				label += " *"
			}
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", indent, branch, label); err != nil {
			return err
		}
		if err := render(w, n.Children, indent+next); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of folders and files in the forest.
func Count(nodes []*Node) (folders, files int) {
	_ = Walk(nodes, func(n *Node, _ int) error {
		if n.IsFolder() {
			folders++
		} else {
			files++
		}
		return nil
	})
	return folders, files
}
