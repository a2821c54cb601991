package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohandalborai/ShopSphere/internal/kvstore"
	"github.com/mohandalborai/ShopSphere/internal/models"
)

func TestToggleLanguageFlipsAndPersists(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	lang := NewLanguageStore(kv, "language", models.LangEnglish)

	assert.Equal(t, models.LangEnglish, lang.Language())
	assert.Equal(t, models.DirLTR, lang.Dir())

	got, dir := lang.ToggleLanguage()
	assert.Equal(t, models.LangArabic, got)
	assert.Equal(t, models.DirRTL, dir)

	// persisted as the raw language code
	raw, ok, err := kv.Get("language")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.LangArabic, raw)

	got, dir = lang.ToggleLanguage()
	assert.Equal(t, models.LangEnglish, got)
	assert.Equal(t, models.DirLTR, dir)
}

func TestLanguageRestoredFromPersistence(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	first := NewLanguageStore(kv, "language", models.LangEnglish)
	first.ToggleLanguage()

	restored := NewLanguageStore(kv, "language", models.LangEnglish)
	assert.Equal(t, models.LangArabic, restored.Language())
	assert.Equal(t, models.DirRTL, restored.Dir())
}

func TestLanguageIgnoresUnsupportedPersistedValue(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	require.NoError(t, kv.Set("language", "fr"))

	lang := NewLanguageStore(kv, "language", models.LangEnglish)
	assert.Equal(t, models.LangEnglish, lang.Language())
}

func TestLanguageTranslation(t *testing.T) {
	lang := NewLanguageStore(kvstore.NewMemoryStore(), "language", models.LangEnglish)

	assert.Equal(t, "Cart", lang.T("cart", nil))
	assert.Equal(t, "Welcome back, Sara!", lang.T("welcome_back", map[string]string{"name": "Sara"}))
	assert.Equal(t, "missing_key", lang.T("missing_key", nil))

	lang.ToggleLanguage()
	assert.Equal(t, "عربة التسوق", lang.T("cart", nil))
}
