package ports

import "github.com/aretw0/espalier/pkg/domain"

// Presenter renders conversation output for the user. The engine drives it;
// the host implements it (CLI, TUI, HTTP push, ...).
type Presenter interface {
	// Render displays one transcript message.
	Render(msg domain.Message) error

	// RenderQuiz displays a drag-drop board. onComplete is invoked exactly
	// once when the attempt resolves, with the correctness outcome.
	RenderQuiz(prompt domain.QuizPrompt, onComplete func(correct bool)) error
}

// Translator maps an opaque text key to a display string for a language.
// Implementations must fall back to returning the key unchanged when no
// translation exists; the engine propagates that fallback as ordinary text.
type Translator interface {
	Translate(key, language string) string
}
