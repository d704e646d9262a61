package ports

import "github.com/aretw0/espalier/pkg/domain"

// GraphLoader defines how the engine retrieves node definitions. The dialogue
// graph is read-only: loaders are safe for concurrent use across sessions.
type GraphLoader interface {
	// GetNode retrieves a node by ID. Returns domain.ErrNodeNotFound
	// (possibly wrapped) when the ID does not exist.
	GetNode(id string) (*domain.Node, error)

	// ListNodes returns all node IDs available in the graph, used for
	// introspection and validation tools.
	ListNodes() ([]string, error)
}
