package domain

// Sender identifies which side of the conversation produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// MessageButton is a rendered choice attached to a bot message. Label is
// already translated; Index addresses the button when choosing, BranchKey is
// set when the choice selects a loop branch.
type MessageButton struct {
	Index     int         `json:"index"`
	Label     string      `json:"label"`
	BranchKey string      `json:"branch_key,omitempty"`
	Style     ButtonStyle `json:"style,omitempty"`
}

// QuizPromptItem is a draggable item as shown to the user.
type QuizPromptItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// QuizPromptTarget is a drop target as shown to the user. The correct answer
// is deliberately not part of the prompt.
type QuizPromptTarget struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// QuizPrompt is the presentation payload attached to a quiz message. Items
// appear in the attempt's shuffled order.
type QuizPrompt struct {
	NodeID  string             `json:"node_id"`
	Items   []QuizPromptItem   `json:"items"`
	Targets []QuizPromptTarget `json:"targets"`
}

// Message is one entry of the transcript. Messages are append-only records;
// they are never mutated after creation.
type Message struct {
	ID       string          `json:"id"`
	Sender   Sender          `json:"sender"`
	Text     string          `json:"text"`
	Buttons  []MessageButton `json:"buttons,omitempty"`
	Quiz     *QuizPrompt     `json:"quiz,omitempty"`
	Language string          `json:"language,omitempty"`

	// Dynamic mirrors the source node's flag: the presenter recomputes the
	// content at display time instead of caching it.
	Dynamic bool `json:"dynamic,omitempty"`
}
