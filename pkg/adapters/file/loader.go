// Package file loads a decision tree from a single YAML document. The
// document carries the graph, its entry points, and optional translation
// tables, so a whole conversation ships as one file.
package file

import (
	"fmt"
	"os"

	"github.com/aretw0/espalier/internal/i18n"
	"github.com/aretw0/espalier/pkg/adapters/memory"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// documentSpec mirrors the YAML document shape. Nodes stay untyped here and
// are decoded per-node so errors can name the offending node.
type documentSpec struct {
	Root         string                       `yaml:"root"`
	QuizEntry    string                       `yaml:"quiz_entry"`
	QuizEnd      string                       `yaml:"quiz_end"`
	Language     string                       `yaml:"language"`
	Nodes        map[string]map[string]any    `yaml:"nodes"`
	Translations map[string]map[string]string `yaml:"translations"`
}

// nodeSpec uses mapstructure tags to match the YAML keys of a node entry.
type nodeSpec struct {
	Type          string                   `mapstructure:"type"`
	TextKey       string                   `mapstructure:"text_key"`
	Next          string                   `mapstructure:"next"`
	Dynamic       bool                     `mapstructure:"dynamic"`
	Correct       bool                     `mapstructure:"correct"`
	AchievementID string                   `mapstructure:"achievement_id"`
	Buttons       []domain.Button          `mapstructure:"buttons"`
	Branches      map[string]domain.Branch `mapstructure:"branches"`
	ParentLoop    string                   `mapstructure:"parent_loop"`
	Items         []domain.QuizItem        `mapstructure:"items"`
	Targets       []domain.QuizTarget      `mapstructure:"targets"`
	IncorrectNext string                   `mapstructure:"incorrect_next"`
}

// Tree is a loaded conversation document: the graph plus its entry points
// and translation table.
type Tree struct {
	*memory.Loader

	root      string
	quizEntry string
	quizEnd   string
	language  string
	table     i18n.Table
}

// Load reads and decodes a conversation document from disk.
func Load(path string) (*Tree, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tree file: %w", err)
	}
	return Parse(payload)
}

// Parse decodes a conversation document from raw YAML.
func Parse(payload []byte) (*Tree, error) {
	var doc documentSpec
	if err := yaml.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse tree document: %w", err)
	}

	if doc.Root == "" {
		return nil, fmt.Errorf("tree document has no root node")
	}
	if len(doc.Nodes) == 0 {
		return nil, fmt.Errorf("tree document has no nodes")
	}

	tree := make(domain.DecisionTree, len(doc.Nodes))
	for id, raw := range doc.Nodes {
		var spec nodeSpec
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:      &spec,
			ErrorUnused: true,
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(raw); err != nil {
			return nil, fmt.Errorf("node %q: %w", id, err)
		}
		if spec.Type == "" {
			return nil, fmt.Errorf("node %q: missing type", id)
		}

		tree[id] = domain.Node{
			ID:            id,
			Type:          domain.NodeType(spec.Type),
			TextKey:       spec.TextKey,
			Next:          spec.Next,
			Dynamic:       spec.Dynamic,
			Correct:       spec.Correct,
			AchievementID: spec.AchievementID,
			Buttons:       spec.Buttons,
			Branches:      spec.Branches,
			ParentLoop:    spec.ParentLoop,
			Items:         spec.Items,
			Targets:       spec.Targets,
			IncorrectNext: spec.IncorrectNext,
		}
	}

	loader, err := memory.NewLoader(tree)
	if err != nil {
		return nil, err
	}

	if _, err := loader.GetNode(doc.Root); err != nil {
		return nil, fmt.Errorf("root node %q not present in document", doc.Root)
	}

	table := make(i18n.Table, len(doc.Translations))
	for lang, entries := range doc.Translations {
		table[lang] = entries
	}

	return &Tree{
		Loader:    loader,
		root:      doc.Root,
		quizEntry: doc.QuizEntry,
		quizEnd:   doc.QuizEnd,
		language:  doc.Language,
		table:     table,
	}, nil
}

// Root returns the entry node ID.
func (t *Tree) Root() string { return t.root }

// QuizEntry returns the quiz entry node ID, or empty.
func (t *Tree) QuizEntry() string { return t.quizEntry }

// QuizEnd returns the node whose arrival marks the quiz finished, or empty.
func (t *Tree) QuizEnd() string { return t.quizEnd }

// Language returns the document's default language, or empty.
func (t *Tree) Language() string { return t.language }

// Translator builds a Translator over the document's translation table.
func (t *Tree) Translator() *i18n.Translator {
	return i18n.New(t.table, t.language)
}
