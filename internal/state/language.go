package state

import (
	"sync"

	"go.uber.org/zap"

	"github.com/mohandalborai/ShopSphere/internal/i18n"
	"github.com/mohandalborai/ShopSphere/internal/kvstore"
	"github.com/mohandalborai/ShopSphere/internal/models"
	"github.com/mohandalborai/ShopSphere/internal/util"
)

// LanguageStore owns the session's language preference and its derived
// text direction, and resolves translation keys for the active locale.
type LanguageStore struct {
	notifier

	mu     sync.Mutex
	tr     *i18n.Translator
	kv     kvstore.Store
	key    string
	logger *zap.Logger
}

// NewLanguageStore creates a language store, restoring any persisted
// preference and falling back to defaultLang.
func NewLanguageStore(kv kvstore.Store, key, defaultLang string) *LanguageStore {
	s := &LanguageStore{
		kv:     kv,
		key:    key,
		logger: util.NamedLogger("language"),
	}

	lang := defaultLang
	raw, ok, err := kv.Get(key)
	if err != nil {
		s.logger.Error("Failed to load language preference", zap.Error(err))
	} else if ok && i18n.Supported(raw) {
		lang = raw
	}
	s.tr = i18n.NewTranslator(lang)
	return s
}

// ToggleLanguage flips between English and Arabic, persists the new
// preference and returns the language plus its text direction. The
// document-level direction update is the caller's concern.
func (s *LanguageStore) ToggleLanguage() (lang, dir string) {
	s.mu.Lock()
	next := models.LangEnglish
	if s.tr.Language() == models.LangEnglish {
		next = models.LangArabic
	}
	s.tr = i18n.NewTranslator(next)
	s.mu.Unlock()

	util.LanguageTogglesTotal.Inc()
	if err := s.kv.Set(s.key, next); err != nil {
		util.KVWriteFailuresTotal.WithLabelValues("language").Inc()
		s.logger.Error("Failed to persist language preference", zap.Error(err))
	}
	s.notify()
	return next, i18n.DirFor(next)
}

// T resolves a translation key against the active locale's dictionary.
func (s *LanguageStore) T(key string, replacements map[string]string) string {
	s.mu.Lock()
	tr := s.tr
	s.mu.Unlock()
	return tr.T(key, replacements)
}

// Language returns the active language.
func (s *LanguageStore) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tr.Language()
}

// Dir returns the active text direction.
func (s *LanguageStore) Dir() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return i18n.DirFor(s.tr.Language())
}
