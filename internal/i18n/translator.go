// Package i18n provides a table-backed Translator for multi-language
// decision trees. Missing keys fall back to the key itself so untranslated
// graphs stay usable.
package i18n

import "sync"

// Table maps language -> text key -> rendered string.
type Table map[string]map[string]string

// Translator resolves text keys against an in-memory table.
type Translator struct {
	mu              sync.RWMutex
	table           Table
	defaultLanguage string
}

// New creates a Translator over the given table. defaultLanguage is used when
// a lookup names a language the table does not carry.
func New(table Table, defaultLanguage string) *Translator {
	if table == nil {
		table = Table{}
	}
	return &Translator{table: table, defaultLanguage: defaultLanguage}
}

// Translate resolves key for the given language. Resolution order: requested
// language, default language, the key itself.
func (t *Translator) Translate(key, language string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if entries, ok := t.table[language]; ok {
		if text, ok := entries[key]; ok {
			return text
		}
	}
	if entries, ok := t.table[t.defaultLanguage]; ok {
		if text, ok := entries[key]; ok {
			return text
		}
	}
	return key
}

// AddLanguage merges entries for a language, overwriting existing keys.
func (t *Translator) AddLanguage(language string, entries map[string]string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.table[language] == nil {
		t.table[language] = make(map[string]string, len(entries))
	}
	for k, v := range entries {
		t.table[language][k] = v
	}
}

// Languages returns the languages the table carries.
func (t *Translator) Languages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	langs := make([]string, 0, len(t.table))
	for lang := range t.table {
		langs = append(langs, lang)
	}
	return langs
}
