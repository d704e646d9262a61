// Package validator checks decision-tree integrity before a graph is served:
// every transition target must exist and quiz nodes must be structurally
// sound. It is the build-time counterpart of the runtime's fatal
// GraphIntegrityError.
package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
)

// ValidateGraph walks the tree from rootNodeID and reports every broken
// reference and malformed quiz node it finds. quizEntryNodeID may be empty
// when the tree carries no redirect_quiz nodes.
func ValidateGraph(loader ports.GraphLoader, rootNodeID, quizEntryNodeID string) error {
	var problems []string

	root, err := loader.GetNode(rootNodeID)
	if err != nil {
		return fmt.Errorf("root node %q not found: %w", rootNodeID, err)
	}

	visited := make(map[string]bool)
	queue := []string{root.ID}

	enqueue := func(from, target string, required bool) {
		if target == "" {
			if required {
				problems = append(problems, fmt.Sprintf("node %q: missing required continuation", from))
			}
			return
		}
		if !visited[target] {
			queue = append(queue, target)
		}
	}

	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]

		if visited[currentID] {
			continue
		}
		visited[currentID] = true

		node, err := loader.GetNode(currentID)
		if err != nil {
			problems = append(problems, fmt.Sprintf("missing node: %q", currentID))
			continue
		}

		switch node.Type {
		case domain.NodeQuestion, domain.NodeAnswer:
			for i, btn := range node.Buttons {
				if btn.Next == "" {
					problems = append(problems, fmt.Sprintf("node %q: button %d has no target", node.ID, i))
					continue
				}
				enqueue(node.ID, btn.Next, false)
			}
			enqueue(node.ID, node.Next, false)

		case domain.NodeLoopQuestion:
			for key, branch := range node.Branches {
				if branch.Next == "" {
					problems = append(problems, fmt.Sprintf("node %q: branch %q has no target", node.ID, key))
					continue
				}
				enqueue(node.ID, branch.Next, false)
			}
			enqueue(node.ID, node.Next, false)
			enqueue(node.ID, node.ParentLoop, false)

		case domain.NodePrompt, domain.NodeRedirect:
			enqueue(node.ID, node.Next, true)

		case domain.NodeRedirectQuiz:
			if quizEntryNodeID == "" {
				problems = append(problems, fmt.Sprintf("node %q: redirect_quiz used but no quiz entry configured", node.ID))
			} else {
				enqueue(node.ID, quizEntryNodeID, false)
			}

		case domain.NodeQuizDragDrop:
			problems = append(problems, validateQuizNode(node)...)
			enqueue(node.ID, node.Next, true)
			enqueue(node.ID, node.IncorrectNext, true)

		default:
			problems = append(problems, fmt.Sprintf("node %q: unknown type %q", node.ID, node.Type))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("found %d problems:\n- %s", len(problems), strings.Join(problems, "\n- "))
	}
	return nil
}

// validateQuizNode checks the item/target shape of a drag-drop node:
// unique IDs, and every target matched to exactly one declared item.
func validateQuizNode(node *domain.Node) []string {
	var problems []string

	items := make(map[string]bool, len(node.Items))
	for _, it := range node.Items {
		if it.ID == "" {
			problems = append(problems, fmt.Sprintf("node %q: item with empty ID", node.ID))
			continue
		}
		if items[it.ID] {
			problems = append(problems, fmt.Sprintf("node %q: duplicate item %q", node.ID, it.ID))
		}
		items[it.ID] = true
	}

	targets := make(map[string]bool, len(node.Targets))
	correct := make(map[string]bool, len(node.Targets))
	for _, tgt := range node.Targets {
		if tgt.ID == "" {
			problems = append(problems, fmt.Sprintf("node %q: target with empty ID", node.ID))
			continue
		}
		if targets[tgt.ID] {
			problems = append(problems, fmt.Sprintf("node %q: duplicate target %q", node.ID, tgt.ID))
		}
		targets[tgt.ID] = true

		if !items[tgt.Correct] {
			problems = append(problems, fmt.Sprintf("node %q: target %q expects unknown item %q", node.ID, tgt.ID, tgt.Correct))
		}
		if correct[tgt.Correct] {
			problems = append(problems, fmt.Sprintf("node %q: item %q is the answer for more than one target", node.ID, tgt.Correct))
		}
		correct[tgt.Correct] = true
	}

	if len(node.Items) != len(node.Targets) {
		problems = append(problems, fmt.Sprintf("node %q: %d items but %d targets", node.ID, len(node.Items), len(node.Targets)))
	}

	return problems
}
