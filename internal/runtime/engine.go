// Package runtime implements the traversal controller: the state machine
// that walks the decision tree, mutates the session's game record, and
// delegates drag-drop nodes to the placement engine.
package runtime

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"log/slog"
	mathrand "math/rand"
	"sync"

	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
)

// Engine is the core state machine runner. It holds no per-session state:
// every operation takes a State and returns a new one, leaving the input
// untouched. The decision tree behind the loader is read-only, so one Engine
// serves any number of sessions.
type Engine struct {
	loader     ports.GraphLoader
	translator ports.Translator
	language   string

	entryNodeID     string
	quizEntryNodeID string
	quizEndNodeID   string

	achievementPoints map[string]int
	quizPoints        int

	hooks  domain.LifecycleHooks
	logger *slog.Logger

	rngMu sync.Mutex
	rng   *mathrand.Rand
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithEntryNode sets the root node ID (default: "start").
func WithEntryNode(nodeID string) EngineOption {
	return func(e *Engine) {
		if nodeID != "" {
			e.entryNodeID = nodeID
		}
	}
}

// WithQuizEntryNode sets the node redirect_quiz nodes jump to.
func WithQuizEntryNode(nodeID string) EngineOption {
	return func(e *Engine) {
		e.quizEntryNodeID = nodeID
	}
}

// WithQuizEndNode designates the node whose entry marks the overall quiz
// flow as completed.
func WithQuizEndNode(nodeID string) EngineOption {
	return func(e *Engine) {
		e.quizEndNodeID = nodeID
	}
}

// WithAchievementPoints sets the point award per achievement ID.
// Achievements absent from the map grant zero points.
func WithAchievementPoints(points map[string]int) EngineOption {
	return func(e *Engine) {
		e.achievementPoints = points
	}
}

// WithQuizPoints sets the score added per correct quiz resolution.
func WithQuizPoints(points int) EngineOption {
	return func(e *Engine) {
		e.quizPoints = points
	}
}

// WithTranslator sets the text-key resolver.
func WithTranslator(tr ports.Translator) EngineOption {
	return func(e *Engine) {
		if tr != nil {
			e.translator = tr
		}
	}
}

// WithLanguage sets the language tag passed to the translator and stamped on
// messages.
func WithLanguage(lang string) EngineOption {
	return func(e *Engine) {
		e.language = lang
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a structured logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRand injects the randomness source used for quiz shuffles, for
// reproducible tests.
func WithRand(rng *mathrand.Rand) EngineOption {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// NewEngine creates a new engine with dependencies.
func NewEngine(loader ports.GraphLoader, opts ...EngineOption) *Engine {
	e := &Engine{
		loader:      loader,
		translator:  keyTranslator{},
		entryNodeID: "start",
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = mathrand.New(mathrand.NewSource(entropySeed()))
	}
	return e
}

// EntryNodeID returns the configured root node.
func (e *Engine) EntryNodeID() string {
	return e.entryNodeID
}

// Start creates the initial state for a session and processes the entry into
// the root node.
func (e *Engine) Start(ctx context.Context, sessionID string) (*domain.State, error) {
	state := domain.NewState(sessionID, e.entryNodeID)
	if err := e.enterNode(ctx, state, "", e.entryNodeID, 0); err != nil {
		return nil, err
	}
	return state, nil
}

// Inspect returns the full graph definition for introspection tools.
func (e *Engine) Inspect() ([]domain.Node, error) {
	ids, err := e.loader.ListNodes()
	if err != nil {
		return nil, err
	}
	nodes := make([]domain.Node, 0, len(ids))
	for _, id := range ids {
		node, err := e.loader.GetNode(id)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, *node)
	}
	return nodes, nil
}

// translate resolves a text key, falling back to the key itself.
func (e *Engine) translate(key string) string {
	if key == "" {
		return ""
	}
	return e.translator.Translate(key, e.language)
}

// keyTranslator is the default Translator: every key translates to itself.
type keyTranslator struct{}

func (keyTranslator) Translate(key, _ string) string { return key }

// entropySeed derives a one-off seed from the OS entropy pool.
func entropySeed() int64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 1
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}
