// Package hierarchy implements value-generalization hierarchies for
// categorical quasi-identifiers.
//
// A tree is loaded from a headerless CSV file where every row lists
// one leaf's path: leaf id, leaf label, then ancestor labels up to the
// synthetic root "*". Labels are unique within a tree, so a label
// identifies a node. Nodes live in a dense arena and carry DFS
// enter/exit numbers, which makes the covering check a constant-time
// interval comparison.
package hierarchy

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// RootLabel is the synthetic root of every hierarchy.
const RootLabel = "*"

// Tree is one value-generalization hierarchy.
type Tree struct {
	// Attribute is the quasi-identifier this tree generalizes.
	Attribute string

	nodes   []node
	byLabel map[string]int
	byLeaf  map[int]int
}

type node struct {
	label    string
	parent   int
	children []int
	leafID   int
	isLeaf   bool
	enter    int
	exit     int
}

// Node is an exported view of a tree node.
type Node struct {
	Label  string
	LeafID int
	IsLeaf bool
}

// Load reads one hierarchy file. The attribute name is taken from the
// second underscore-separated token of the file name
// (hierarchy_<attribute>_<variant>.csv).
func Load(path string) (*Tree, error) {
	name := filepath.Base(path)
	parts := strings.Split(name, "_")
	if len(parts) < 2 {
		return nil, FileNameError(path)
	}
	attr := parts[1]
	attr = strings.TrimSuffix(attr, ".csv")

	f, err := os.Open(path)
	if err != nil {
		return nil, FileError(path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, FileError(path, err)
	}

	t := &Tree{
		Attribute: attr,
		byLabel:   make(map[string]int),
		byLeaf:    make(map[int]int),
	}
	t.addRoot()

	for _, row := range records {
		if err = t.insertRow(path, row); err != nil {
			return nil, err
		}
	}
	t.number(0, 0)
	return t, nil
}

// LoadDir builds all hierarchies found in a directory, keyed by
// attribute name.
func LoadDir(dir string) (map[string]*Tree, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, FileError(dir, err)
	}
	res := make(map[string]*Tree, len(paths))
	for _, path := range paths {
		t, err := Load(path)
		if err != nil {
			return nil, err
		}
		res[t.Attribute] = t
	}
	return res, nil
}

func (t *Tree) addRoot() {
	t.nodes = append(t.nodes, node{label: RootLabel, parent: -1})
	t.byLabel[RootLabel] = 0
}

// insertRow upserts one leaf path, root side first. Row layout:
// leaf id, leaf label, parent label, ..., "*".
func (t *Tree) insertRow(path string, row []string) error {
	if len(row) < 3 {
		return BuildError(path, "row too short")
	}
	leafID, err := strconv.Atoi(strings.TrimSpace(row[0]))
	if err != nil {
		return BuildError(path, "leaf id is not an integer")
	}
	labels := row[1:]
	if labels[len(labels)-1] != RootLabel {
		return BuildError(path, "row does not end at the root")
	}

	// walk root -> leaf, upserting label-keyed nodes
	parent := 0
	for i := len(labels) - 2; i >= 0; i-- {
		label := labels[i]
		id, ok := t.byLabel[label]
		if !ok {
			id = len(t.nodes)
			t.nodes = append(t.nodes, node{label: label, parent: parent})
			t.nodes[parent].children = append(t.nodes[parent].children, id)
			t.byLabel[label] = id
		}
		parent = id
	}

	// the deepest label of the row is the leaf
	leaf := &t.nodes[parent]
	leaf.isLeaf = true
	leaf.leafID = leafID
	t.byLeaf[leafID] = parent
	return nil
}

// number assigns DFS enter/exit intervals.
func (t *Tree) number(id, counter int) int {
	t.nodes[id].enter = counter
	counter++
	for _, child := range t.nodes[id].children {
		counter = t.number(child, counter)
	}
	t.nodes[id].exit = counter
	return counter + 1
}

func (t *Tree) view(id int) Node {
	n := t.nodes[id]
	return Node{Label: n.label, LeafID: n.leafID, IsLeaf: n.isLeaf}
}

// FindNode returns the node with the given label.
func (t *Tree) FindNode(label string) (Node, error) {
	id, ok := t.byLabel[label]
	if !ok {
		return Node{}, UnknownLabelError(t.Attribute, label)
	}
	return t.view(id), nil
}

// Covers reports whether the node labeled u is an ancestor of the node
// labeled v, or the same node. Both labels must exist in the tree.
func (t *Tree) Covers(u, v string) (bool, error) {
	ui, ok := t.byLabel[u]
	if !ok {
		return false, UnknownLabelError(t.Attribute, u)
	}
	vi, ok := t.byLabel[v]
	if !ok {
		return false, UnknownLabelError(t.Attribute, v)
	}
	un, vn := t.nodes[ui], t.nodes[vi]
	return un.enter <= vn.enter && vn.exit <= un.exit, nil
}

// CommonAncestor returns the lowest common ancestor of two leaves.
func (t *Tree) CommonAncestor(leafID1, leafID2 int) (Node, error) {
	a, ok := t.byLeaf[leafID1]
	if !ok {
		return Node{}, UnknownLeafIDError(t.Attribute, leafID1)
	}
	b, ok := t.byLeaf[leafID2]
	if !ok {
		return Node{}, UnknownLeafIDError(t.Attribute, leafID2)
	}
	bn := t.nodes[b]
	// ascend from a until its interval contains b
	for id := a; ; id = t.nodes[id].parent {
		n := t.nodes[id]
		if n.enter <= bn.enter && bn.exit <= n.exit {
			return t.view(id), nil
		}
	}
}

// Len returns the number of nodes including the root.
func (t *Tree) Len() int { return len(t.nodes) }

// Leaves returns all leaf nodes.
func (t *Tree) Leaves() []Node {
	var res []Node
	for i, n := range t.nodes {
		if n.isLeaf {
			res = append(res, t.view(i))
		}
	}
	return res
}
