package espalier

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"

	"log/slog"

	"github.com/aretw0/espalier/internal/runtime"
	"github.com/aretw0/espalier/pkg/adapters/file"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
)

// Engine is the high-level entry point for the espalier library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime     *runtime.Engine
	loader      ports.GraphLoader
	runtimeOpts []runtime.EngineOption
	fileOpts    []runtime.EngineOption
	Name        string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLoader injects a custom GraphLoader, bypassing the default file loader.
func WithLoader(l ports.GraphLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithEntryNode configures the initial node ID (default: "start").
func WithEntryNode(nodeID string) Option {
	return passthrough(runtime.WithEntryNode(nodeID))
}

// WithQuizEntryNode configures the node redirect_quiz nodes jump to.
func WithQuizEntryNode(nodeID string) Option {
	return passthrough(runtime.WithQuizEntryNode(nodeID))
}

// WithQuizEndNode configures the node whose arrival marks the quiz finished.
func WithQuizEndNode(nodeID string) Option {
	return passthrough(runtime.WithQuizEndNode(nodeID))
}

// WithAchievementPoints configures the score granted per achievement ID.
func WithAchievementPoints(points map[string]int) Option {
	return passthrough(runtime.WithAchievementPoints(points))
}

// WithQuizPoints configures the score granted for a correct quiz submission.
func WithQuizPoints(points int) Option {
	return passthrough(runtime.WithQuizPoints(points))
}

// WithTranslator sets a custom text key translator.
func WithTranslator(tr ports.Translator) Option {
	return passthrough(runtime.WithTranslator(tr))
}

// WithLanguage sets the display language passed to the translator.
func WithLanguage(language string) Option {
	return passthrough(runtime.WithLanguage(language))
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return passthrough(runtime.WithLifecycleHooks(hooks))
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return passthrough(runtime.WithLogger(logger))
}

// WithRand injects the randomness source used to shuffle quiz items.
// Intended for deterministic tests.
func WithRand(rng *rand.Rand) Option {
	return passthrough(runtime.WithRand(rng))
}

func passthrough(opt runtime.EngineOption) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, opt)
	}
}

// New initializes an espalier Engine.
// By default it loads a conversation document from treePath; the document's
// entry points, language and translations configure the runtime. If the
// WithLoader option is provided, treePath can be empty and no file is read.
// Explicit options always win over document-derived configuration.
func New(treePath string, opts ...Option) (*Engine, error) {
	eng := &Engine{}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.loader == nil {
		if treePath == "" {
			return nil, fmt.Errorf("treePath is required when no custom loader is provided")
		}

		absPath, err := filepath.Abs(treePath)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		eng.Name = filepath.Base(absPath)

		tree, err := file.Load(absPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load tree: %w", err)
		}
		eng.loader = tree

		eng.fileOpts = append(eng.fileOpts,
			runtime.WithEntryNode(tree.Root()),
			runtime.WithTranslator(tree.Translator()),
		)
		if tree.QuizEntry() != "" {
			eng.fileOpts = append(eng.fileOpts, runtime.WithQuizEntryNode(tree.QuizEntry()))
		}
		if tree.QuizEnd() != "" {
			eng.fileOpts = append(eng.fileOpts, runtime.WithQuizEndNode(tree.QuizEnd()))
		}
		if tree.Language() != "" {
			eng.fileOpts = append(eng.fileOpts, runtime.WithLanguage(tree.Language()))
		}
	}

	eng.runtime = runtime.NewEngine(eng.loader, append(eng.fileOpts, eng.runtimeOpts...)...)
	return eng, nil
}

// Start creates a new session positioned at the entry node.
func (e *Engine) Start(ctx context.Context, sessionID string) (*domain.State, error) {
	return e.runtime.Start(ctx, sessionID)
}

// Choose selects button i on the current question or answer node.
func (e *Engine) Choose(ctx context.Context, state *domain.State, i int) (*domain.State, error) {
	return e.runtime.Choose(ctx, state, i)
}

// ChooseBranch selects a named branch on the current loop question.
func (e *Engine) ChooseBranch(ctx context.Context, state *domain.State, key string) (*domain.State, error) {
	return e.runtime.ChooseBranch(ctx, state, key)
}

// ChooseDefault applies the current loop question's default continuation.
func (e *Engine) ChooseDefault(ctx context.Context, state *domain.State) (*domain.State, error) {
	return e.runtime.ChooseDefault(ctx, state)
}

// Continue advances past a prompt or an answer with a default continuation.
func (e *Engine) Continue(ctx context.Context, state *domain.State) (*domain.State, error) {
	return e.runtime.Continue(ctx, state)
}

// PlaceItem applies one drag-drop placement to the active quiz attempt.
func (e *Engine) PlaceItem(ctx context.Context, state *domain.State, itemID, targetID string) (*domain.State, error) {
	return e.runtime.PlaceItem(ctx, state, itemID, targetID)
}

// CheckAnswer resolves the active quiz attempt and reports correctness.
func (e *Engine) CheckAnswer(ctx context.Context, state *domain.State) (*domain.State, bool, error) {
	return e.runtime.CheckAnswer(ctx, state)
}

// UnplacedItems lists the items of the active attempt still in the pool.
func (e *Engine) UnplacedItems(state *domain.State) ([]domain.QuizItem, error) {
	return e.runtime.UnplacedItems(state)
}

// Inspect returns every node of the loaded graph.
func (e *Engine) Inspect() ([]domain.Node, error) {
	return e.runtime.Inspect()
}

// EntryNodeID returns the configured entry node.
func (e *Engine) EntryNodeID() string {
	return e.runtime.EntryNodeID()
}

// Runtime exposes the underlying engine for adapters that consume the
// ports.ConversationEngine interface.
func (e *Engine) Runtime() ports.ConversationEngine {
	return e.runtime
}
