// Package memory provides in-process adapters: a GraphLoader over a
// DecisionTree value and a StateStore backed by a map. Both are safe for
// concurrent use and are the default wiring for tests and single-process
// hosts.
package memory

import (
	"fmt"
	"sort"

	"github.com/aretw0/espalier/pkg/domain"
)

// Loader implements ports.GraphLoader over an in-memory decision tree.
type Loader struct {
	tree domain.DecisionTree
}

// NewLoader creates a loader from a decision tree. Node IDs are filled in
// from the map keys; a node carrying a different explicit ID is rejected.
func NewLoader(tree domain.DecisionTree) (*Loader, error) {
	normalized := make(domain.DecisionTree, len(tree))
	for id, node := range tree {
		if node.ID == "" {
			node.ID = id
		}
		if node.ID != id {
			return nil, fmt.Errorf("node keyed %q declares conflicting ID %q", id, node.ID)
		}
		normalized[id] = node
	}
	return &Loader{tree: normalized}, nil
}

// NewFromNodes creates a loader from node values, keyed by their IDs.
func NewFromNodes(nodes ...domain.Node) (*Loader, error) {
	tree := make(domain.DecisionTree, len(nodes))
	for _, n := range nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("node missing ID")
		}
		if _, dup := tree[n.ID]; dup {
			return nil, fmt.Errorf("duplicate node ID %q", n.ID)
		}
		tree[n.ID] = n
	}
	return &Loader{tree: tree}, nil
}

// GetNode retrieves a node by ID.
func (l *Loader) GetNode(id string) (*domain.Node, error) {
	node, ok := l.tree[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNodeNotFound, id)
	}
	// Copy so callers cannot mutate the shared tree.
	out := node
	return &out, nil
}

// ListNodes returns all available node IDs.
func (l *Loader) ListNodes() ([]string, error) {
	keys := make([]string, 0, len(l.tree))
	for k := range l.tree {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
