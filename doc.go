/*
Package espalier is a deterministic engine for branching conversations with
embedded drag-drop quizzes and gamification.

It models a dialogue as a graph of typed nodes (questions, answers, loops,
prompts, redirects and quiz boards). The engine owns traversal, transcript
building and game-state bookkeeping, while your application ("Host") owns
I/O and rendering. This hexagonal architecture lets espalier run behind any
interface: CLI, TUI, or HTTP server.

# Key Features

  - Deterministic traversal: given the same state and input, the transition
    is always reproducible (quiz shuffling uses an injectable source).
  - Stateless core: every operation returns a new state snapshot; the input
    state is never mutated, so persistence and replay are trivial.
  - Gamification: achievements, score, streaks and quiz progress are
    tracked monotonically inside the session state.
  - Hexagonal architecture: storage, locking, translation and presentation
    are ports with in-memory, Redis, YAML-file and HTTP adapters included.

# Usage

Load a conversation document and drive the loop yourself, or hand it to the
built-in Runner:

	package main

	import (
		"log"
		"os"

		"github.com/aretw0/espalier"
	)

	func main() {
		eng, err := espalier.New("./my-tree.yaml")
		if err != nil {
			log.Fatal(err)
		}

		runner := espalier.NewRunner()
		runner.Input = os.Stdin
		runner.Output = os.Stdout
		if err := runner.Run(eng); err != nil {
			log.Fatal(err)
		}
	}

For server deployments, wrap the engine with pkg/session for concurrency
control and pkg/adapters/http for the JSON API.
*/
package espalier
