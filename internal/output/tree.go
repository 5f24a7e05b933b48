package output

import (
	"path/filepath"
	"sort"
	"strings"
)

const (
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	// descriptionColumn is the column descriptions are aligned to.
	descriptionColumn = 30
)

// FileEntry is one file shown in a file tree.
type FileEntry struct {
	// Path is relative to the tree root, slash or OS separated.
	Path string

	// Description is shown next to the file, aligned at descriptionColumn.
	Description string
}

type treeNode struct {
	name        string
	description string
	isDir       bool
	children    []*treeNode
}

// RenderFileTree renders entries below a root directory name.
// Directories are listed before files, each group alphabetically.
func RenderFileTree(root string, entries []FileEntry) string {
	if len(entries) == 0 {
		return ""
	}

	tree := &treeNode{name: root, isDir: true}
	for _, e := range entries {
		parts := strings.Split(filepath.ToSlash(e.Path), "/")
		current := tree
		for i, part := range parts {
			isLast := i == len(parts)-1
			child := current.child(part)
			if child == nil {
				child = &treeNode{name: part, isDir: !isLast}
				current.children = append(current.children, child)
			}
			if isLast {
				child.description = e.Description
			}
			current = child
		}
	}
	tree.sort()

	var sb strings.Builder
	sb.WriteString(StyleBold.Render(strings.TrimSuffix(root, "/") + "/"))
	sb.WriteString("\n")
	for i, c := range tree.children {
		c.render(&sb, "", i == len(tree.children)-1)
	}
	return sb.String()
}

func (n *treeNode) child(name string) *treeNode {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

func (n *treeNode) sort() {
	sort.Slice(n.children, func(i, j int) bool {
		if n.children[i].isDir != n.children[j].isDir {
			return n.children[i].isDir
		}
		return n.children[i].name < n.children[j].name
	})
	for _, c := range n.children {
		c.sort()
	}
}

func (n *treeNode) render(sb *strings.Builder, prefix string, isLast bool) {
	connector := treeEdge
	if isLast {
		connector = treeLast
	}

	name := n.name
	if n.isDir {
		name += "/"
	}
	line := prefix + connector + name

	if n.description != "" {
		padding := descriptionColumn - len([]rune(line))
		if padding < 2 {
			padding = 2
		}
		line += strings.Repeat(" ", padding) + StyleMuted.Render(n.description)
	}
	sb.WriteString(line)
	sb.WriteString("\n")

	childPrefix := prefix + treeVert
	if isLast {
		childPrefix = prefix + treeSpace
	}
	for i, c := range n.children {
		c.render(sb, childPrefix, i == len(n.children)-1)
	}
}
