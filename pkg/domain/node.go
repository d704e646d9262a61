package domain

// NodeType is the discriminant of the Node union.
type NodeType string

const (
	// NodeQuestion displays content and halts waiting for a button choice.
	NodeQuestion NodeType = "question"
	// NodeAnswer is an informational node; it may carry buttons or a default
	// continuation, or neither (sink state).
	NodeAnswer NodeType = "answer"
	// NodeLoopQuestion offers named branches and a default continuation,
	// optionally pointing back to an enclosing loop.
	NodeLoopQuestion NodeType = "loop_question"
	// NodePrompt displays content and continues to Next once the host
	// signals continuation.
	NodePrompt NodeType = "prompt"
	// NodeRedirect jumps to Next immediately without rendering anything.
	NodeRedirect NodeType = "redirect"
	// NodeRedirectQuiz jumps to the configured quiz entry node immediately.
	NodeRedirectQuiz NodeType = "redirect_quiz"
	// NodeQuizDragDrop is a matching mini-game: items must be placed onto
	// targets before the conversation can continue.
	NodeQuizDragDrop NodeType = "quiz_drag_drop"
)

// ButtonStyle hints how the host should render a button.
type ButtonStyle string

const (
	// ButtonLink is a plain navigation button (default).
	ButtonLink ButtonStyle = "link"
	// ButtonShare marks a button as an external share action.
	ButtonShare ButtonStyle = "share"
)

// Button is one selectable choice on a question or answer node.
type Button struct {
	TextKey   string      `json:"text_key" yaml:"text_key" mapstructure:"text_key"`
	Next      string      `json:"next" yaml:"next" mapstructure:"next"`
	BranchKey string      `json:"branch_key,omitempty" yaml:"branch_key,omitempty" mapstructure:"branch_key"`
	Style     ButtonStyle `json:"style,omitempty" yaml:"style,omitempty" mapstructure:"style"`
}

// Branch is a named alternative transition out of a loop question.
type Branch struct {
	TextKey string `json:"text_key" yaml:"text_key" mapstructure:"text_key"`
	Next    string `json:"next" yaml:"next" mapstructure:"next"`
}

// QuizItem is a draggable item of a drag-drop quiz node.
type QuizItem struct {
	ID      string `json:"id" yaml:"id" mapstructure:"id"`
	TextKey string `json:"text_key" yaml:"text_key" mapstructure:"text_key"`
}

// QuizTarget is a labeled drop target. Correct names the single item ID that
// belongs on it.
type QuizTarget struct {
	ID      string `json:"id" yaml:"id" mapstructure:"id"`
	Label   string `json:"label" yaml:"label" mapstructure:"label"`
	Correct string `json:"correct" yaml:"correct" mapstructure:"correct"`
}

// Node is one unit of conversation, tagged by Type. Only the fields relevant
// to the variant are populated; consumers must switch on Type exhaustively.
type Node struct {
	ID   string   `json:"id"`
	Type NodeType `json:"type"`

	// TextKey is resolved through the Translator at display time.
	// Redirect variants carry no text.
	TextKey string `json:"text_key,omitempty"`

	// Next is the default continuation. For quiz nodes it is the path taken
	// on a correct submission.
	Next string `json:"next,omitempty"`

	// Dynamic marks nodes whose content is computed at display time.
	Dynamic bool `json:"dynamic,omitempty"`

	// Correct marks this node as representing a correct quiz outcome.
	// Informational for the presenter; it does not mutate game state.
	Correct bool `json:"correct,omitempty"`

	// AchievementID is unlocked the first time this node is reached.
	AchievementID string `json:"achievement_id,omitempty"`

	// Buttons (question, answer).
	Buttons []Button `json:"buttons,omitempty"`

	// Branches and ParentLoop (loop_question). ParentLoop is a plain
	// identifier into the tree, never a structural link: loops may point
	// back to themselves or to ancestors.
	Branches   map[string]Branch `json:"branches,omitempty"`
	ParentLoop string            `json:"parent_loop,omitempty"`

	// Items, Targets and IncorrectNext (quiz_drag_drop).
	Items         []QuizItem   `json:"items,omitempty"`
	Targets       []QuizTarget `json:"targets,omitempty"`
	IncorrectNext string       `json:"incorrect_next,omitempty"`
}

// DecisionTree is the immutable dialogue graph: NodeID -> Node.
type DecisionTree map[string]Node

// TargetIDs returns the IDs of the node's quiz targets, in declared order.
func (n *Node) TargetIDs() []string {
	ids := make([]string, 0, len(n.Targets))
	for _, t := range n.Targets {
		ids = append(ids, t.ID)
	}
	return ids
}

// HasItem reports whether the node declares an item with the given ID.
func (n *Node) HasItem(itemID string) bool {
	for _, it := range n.Items {
		if it.ID == itemID {
			return true
		}
	}
	return false
}

// HasTarget reports whether the node declares a target with the given ID.
func (n *Node) HasTarget(targetID string) bool {
	for _, t := range n.Targets {
		if t.ID == targetID {
			return true
		}
	}
	return false
}
