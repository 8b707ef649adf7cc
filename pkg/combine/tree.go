// File: pkg/combine/tree.go
package combine

import (
	"fmt"
	"sort"
	"strings"
)

// treeNode is a directory or file in the rendered selection tree.
type treeNode struct {
	name     string
	children map[string]*treeNode
}

func (n *treeNode) isDir() bool {
	return n.children != nil
}

// RenderTree renders the selected files as a tree rooted at root.
// Directories are listed before files, each group alphabetically.
func RenderTree(root string, files []CandidateFile) string {
	top := &treeNode{name: root, children: map[string]*treeNode{}}
	for _, file := range files {
		node := top
		parts := strings.Split(file.Rel, "/")
		for i, part := range parts {
			child, ok := node.children[part]
			if !ok {
				child = &treeNode{name: part}
				if i < len(parts)-1 {
					child.children = map[string]*treeNode{}
				}
				node.children[part] = child
			}
			node = child
		}
	}

	var tree strings.Builder
	tree.WriteString(strings.TrimSuffix(root, "/") + "/\n")
	renderTreeRecursively(&tree, top, "")
	return tree.String()
}

// renderTreeRecursively writes the children of node with the given line prefix.
func renderTreeRecursively(tree *strings.Builder, node *treeNode, prefix string) {
	entries := make([]*treeNode, 0, len(node.children))
	for _, child := range node.children {
		entries = append(entries, child)
	}

	// Sort entries: directories first, then files, alphabetically
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].isDir() != entries[j].isDir() {
			return entries[i].isDir()
		}
		li, lj := strings.ToLower(entries[i].name), strings.ToLower(entries[j].name)
		if li != lj {
			return li < lj
		}
		return entries[i].name < entries[j].name
	})

	for i, entry := range entries {
		connector := "├── "
		extension := "│   "
		if i == len(entries)-1 {
			connector = "└── "
			extension = "    "
		}

		if entry.isDir() {
			fmt.Fprintf(tree, "%s%s%s/\n", prefix, connector, entry.name)
			renderTreeRecursively(tree, entry, prefix+extension)
			continue
		}
		fmt.Fprintf(tree, "%s%s%s\n", prefix, connector, entry.name)
	}
}
