package espalier

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/aretw0/espalier/pkg/quiz"
)

// Runner handles the execution loop of the engine using provided IO.
// This allows for easy testing and integration with different frontends
// (CLI, TUI, etc).
type Runner struct {
	Input     io.Reader
	Output    io.Writer
	Presenter ports.Presenter
	SessionID string
}

// NewRunner creates a Runner. Input and Output must be set before Run
// (use os.Stdin / os.Stdout for an interactive CLI).
func NewRunner() *Runner {
	return &Runner{SessionID: "local"}
}

// Run executes the conversation loop until the session terminates or the
// input is exhausted.
func (r *Runner) Run(engine *Engine) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	lineReader := bufio.NewReader(r.Input)

	presenter := r.Presenter
	if presenter == nil {
		presenter = &textPresenter{out: r.Output}
	}

	nodes, err := engine.Inspect()
	if err != nil {
		return fmt.Errorf("failed to inspect graph: %w", err)
	}
	graph := make(map[string]domain.Node, len(nodes))
	for _, n := range nodes {
		graph[n.ID] = n
	}

	ctx := context.Background()
	state, err := engine.Start(ctx, r.SessionID)
	if err != nil {
		return err
	}

	rendered := 0
	var resolveQuiz func(bool)

	for {
		// Render phase: show everything appended since the last turn.
		for ; rendered < len(state.Transcript); rendered++ {
			msg := state.Transcript[rendered]
			if msg.Quiz != nil {
				done := false
				onComplete := func(correct bool) {
					if done {
						return
					}
					done = true
					if correct {
						fmt.Fprintln(r.Output, "Correct!")
					} else {
						fmt.Fprintln(r.Output, "Not quite. Let's try again.")
					}
				}
				if err := presenter.RenderQuiz(*msg.Quiz, onComplete); err != nil {
					return err
				}
				resolveQuiz = onComplete
				continue
			}
			if err := presenter.Render(msg); err != nil {
				return err
			}
		}

		if state.Status == domain.StatusTerminated {
			return nil
		}

		fmt.Fprint(r.Output, "> ")
		text, err := lineReader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}
		input := strings.TrimSpace(text)

		if input == "exit" || input == "quit" {
			fmt.Fprintln(r.Output, "Bye!")
			return nil
		}

		next, err := r.step(ctx, engine, graph, state, input, resolveQuiz)
		if err != nil {
			// User-level mistakes are reported and the turn repeats.
			fmt.Fprintf(r.Output, "! %v\n", err)
			continue
		}
		if next.Status != domain.StatusQuiz {
			resolveQuiz = nil
		}
		state = next
	}
}

// step maps one line of input to an engine operation for the current node.
func (r *Runner) step(ctx context.Context, engine *Engine, graph map[string]domain.Node, state *domain.State, input string, resolveQuiz func(bool)) (*domain.State, error) {
	node, ok := graph[state.CurrentNodeID]
	if !ok {
		return nil, &domain.GraphIntegrityError{TargetNodeID: state.CurrentNodeID}
	}

	if state.Status == domain.StatusQuiz {
		return r.stepQuiz(ctx, engine, state, input, resolveQuiz)
	}

	switch node.Type {
	case domain.NodeQuestion, domain.NodeAnswer:
		if len(node.Buttons) == 0 {
			return engine.Continue(ctx, state)
		}
		i, err := strconv.Atoi(input)
		if err != nil {
			return nil, fmt.Errorf("enter a button number")
		}
		return engine.Choose(ctx, state, i-1)

	case domain.NodeLoopQuestion:
		if input == "" {
			return engine.ChooseDefault(ctx, state)
		}
		keys := make([]string, 0, len(node.Branches))
		for key := range node.Branches {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		if i, err := strconv.Atoi(input); err == nil && i >= 1 && i <= len(keys) {
			return engine.ChooseBranch(ctx, state, keys[i-1])
		}
		return engine.ChooseBranch(ctx, state, input)

	case domain.NodePrompt:
		return engine.Continue(ctx, state)

	default:
		return nil, fmt.Errorf("no input accepted at node %q", node.ID)
	}
}

// stepQuiz understands "place <item> [onto] <target>", "reset" and "check".
func (r *Runner) stepQuiz(ctx context.Context, engine *Engine, state *domain.State, input string, resolveQuiz func(bool)) (*domain.State, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return nil, fmt.Errorf(`commands: "place <item> <target>", "reset", "check"`)
	}

	switch fields[0] {
	case "place":
		if len(fields) == 4 && fields[2] == "onto" {
			fields = []string{fields[0], fields[1], fields[3]}
		}
		if len(fields) != 3 {
			return nil, fmt.Errorf(`usage: place <item> [onto] <target>`)
		}
		return engine.PlaceItem(ctx, state, fields[1], fields[2])

	case "reset":
		for _, itemID := range state.Quiz.Placements {
			if itemID == "" {
				continue
			}
			next, err := engine.PlaceItem(ctx, state, itemID, quiz.Pool)
			if err != nil {
				return nil, err
			}
			state = next
		}
		return state, nil

	case "check":
		next, correct, err := engine.CheckAnswer(ctx, state)
		if err != nil {
			return nil, err
		}
		if resolveQuiz != nil {
			resolveQuiz(correct)
		}
		return next, nil

	default:
		return nil, fmt.Errorf(`commands: "place <item> <target>", "reset", "check"`)
	}
}

// textPresenter is the plain-text fallback presenter.
type textPresenter struct {
	out io.Writer
}

func (p *textPresenter) Render(msg domain.Message) error {
	prefix := ""
	if msg.Sender == domain.SenderUser {
		prefix = "you: "
	}
	fmt.Fprintln(p.out, prefix+msg.Text)
	for _, btn := range msg.Buttons {
		fmt.Fprintf(p.out, "  %d) %s\n", btn.Index+1, btn.Label)
	}
	return nil
}

func (p *textPresenter) RenderQuiz(prompt domain.QuizPrompt, onComplete func(bool)) error {
	fmt.Fprintln(p.out, "Match the items to their targets:")
	for _, it := range prompt.Items {
		fmt.Fprintf(p.out, "  item   %s: %s\n", it.ID, it.Text)
	}
	for _, tgt := range prompt.Targets {
		fmt.Fprintf(p.out, "  target %s: %s\n", tgt.ID, tgt.Label)
	}
	fmt.Fprintln(p.out, `Use "place <item> <target>" then "check".`)
	return nil
}
