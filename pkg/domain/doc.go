/*
Package domain contains the core domain models for the Espalier engine.

It defines the fundamental entities of the conversation state machine: the
Node union and its DecisionTree, the session State with its GameState and
transcript, and the lifecycle events. This package is kept pure and free of
external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - Node: one unit of conversation, tagged by variant (question, answer,
    loop_question, prompt, redirect, redirect_quiz, quiz_drag_drop).
  - State: the runtime snapshot of a session (current node, game record,
    transcript, active quiz attempt).
  - GameState: the monotonically growing score/streak/achievement record.
  - Message: an append-only transcript entry.
*/
package domain
