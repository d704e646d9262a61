package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslator(t *testing.T) {
	tr := New(Table{
		"en": {"greet": "Hello", "bye": "Goodbye"},
		"pt": {"greet": "Olá"},
	}, "en")

	t.Run("Direct Hit", func(t *testing.T) {
		assert.Equal(t, "Olá", tr.Translate("greet", "pt"))
	})

	t.Run("Falls Back To Default Language", func(t *testing.T) {
		assert.Equal(t, "Goodbye", tr.Translate("bye", "pt"))
	})

	t.Run("Falls Back To Key", func(t *testing.T) {
		assert.Equal(t, "missing.key", tr.Translate("missing.key", "pt"))
	})

	t.Run("Unknown Language Uses Default", func(t *testing.T) {
		assert.Equal(t, "Hello", tr.Translate("greet", "fr"))
	})

	t.Run("AddLanguage Merges", func(t *testing.T) {
		tr.AddLanguage("pt", map[string]string{"bye": "Tchau"})
		assert.Equal(t, "Tchau", tr.Translate("bye", "pt"))
		assert.Equal(t, "Olá", tr.Translate("greet", "pt"))
	})

	t.Run("Nil Table", func(t *testing.T) {
		empty := New(nil, "en")
		assert.Equal(t, "key", empty.Translate("key", "en"))
	})
}
