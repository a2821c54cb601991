package state

import (
	"encoding/json"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/mohandalborai/ShopSphere/internal/authhash"
	"github.com/mohandalborai/ShopSphere/internal/kvstore"
	"github.com/mohandalborai/ShopSphere/internal/models"
	"github.com/mohandalborai/ShopSphere/internal/util"
)

// Auth failure messages. Login deliberately returns the same message
// for an unknown email and a wrong password so callers learn nothing
// about which accounts exist.
const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgWeakPassword       = "Password must be at least 8 characters long."
)

const minPasswordLength = 8

// credentialKeyPrefix is the kv key space for account records. It is
// shared across sessions, matching the original per-origin storage.
const credentialKeyPrefix = "user_db:"

// AuthResult is the outcome of a register or login attempt.
type AuthResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// AuthStore simulates session presence for one client session. It is
// not a security boundary: credentials live in the same key-value store
// as the rest of the state.
type AuthStore struct {
	notifier

	mu         sync.Mutex
	user       *models.UserSession
	kv         kvstore.Store
	sessionKey string
	hasher     authhash.Hasher
	logger     *zap.Logger
}

// NewAuthStore creates an auth store, restoring any persisted session.
func NewAuthStore(kv kvstore.Store, sessionKey string, hasher authhash.Hasher) *AuthStore {
	s := &AuthStore{
		kv:         kv,
		sessionKey: sessionKey,
		hasher:     hasher,
		logger:     util.NamedLogger("auth"),
	}
	var user models.UserSession
	raw, ok, err := kv.Get(sessionKey)
	if err != nil {
		s.logger.Error("Failed to load session", zap.Error(err))
	} else if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			s.logger.Error("Failed to decode persisted session", zap.Error(err))
		} else {
			s.user = &user
		}
	}
	return s
}

// Register validates the password, stores a credential record keyed by
// email and establishes a session for the new user. Registering while
// already logged in replaces the session.
func (s *AuthStore) Register(name, email, password string) AuthResult {
	if len(password) < minPasswordLength {
		util.AuthAttemptsTotal.WithLabelValues("register", "weak_password").Inc()
		return AuthResult{Success: false, Error: MsgWeakPassword}
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		util.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		return AuthResult{Success: false, Error: MsgInvalidCredentials}
	}

	cred := models.Credential{Name: name, Email: email, PasswordHash: hash}
	b, _ := json.Marshal(cred)
	if err := s.kv.Set(credentialKey(email), string(b)); err != nil {
		util.KVWriteFailuresTotal.WithLabelValues("auth").Inc()
		s.logger.Error("Failed to persist credential record", zap.Error(err))
	}

	s.establishSession(models.UserSession{Email: email, Name: name})
	util.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()
	return AuthResult{Success: true}
}

// Login verifies the password against the stored credential record for
// email. Failure is a single generic message regardless of the cause.
func (s *AuthStore) Login(email, password string) AuthResult {
	raw, ok, err := s.kv.Get(credentialKey(email))
	if err != nil {
		s.logger.Error("Failed to read credential record", zap.Error(err))
	}
	if !ok || err != nil {
		util.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		return AuthResult{Success: false, Error: MsgInvalidCredentials}
	}

	var cred models.Credential
	if err := json.Unmarshal([]byte(raw), &cred); err != nil {
		s.logger.Error("Failed to decode credential record", zap.Error(err))
		util.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		return AuthResult{Success: false, Error: MsgInvalidCredentials}
	}

	match, err := s.hasher.Verify(password, cred.PasswordHash)
	if err != nil {
		s.logger.Error("Failed to verify password", zap.Error(err))
	}
	if err != nil || !match {
		util.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		return AuthResult{Success: false, Error: MsgInvalidCredentials}
	}

	s.establishSession(models.UserSession{Email: cred.Email, Name: cred.Name})
	util.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	return AuthResult{Success: true}
}

// Logout clears the active session and its persisted representation.
// It does not clear the cart; that is a caller-driven policy.
func (s *AuthStore) Logout() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	if err := s.kv.Remove(s.sessionKey); err != nil {
		util.KVWriteFailuresTotal.WithLabelValues("auth").Inc()
		s.logger.Error("Failed to remove persisted session", zap.Error(err))
	}
	s.notify()
}

// CurrentUser returns the active session. The boolean reports whether
// anyone is logged in.
func (s *AuthStore) CurrentUser() (models.UserSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return models.UserSession{}, false
	}
	return *s.user, true
}

func (s *AuthStore) establishSession(user models.UserSession) {
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()

	persistJSON(s.kv, s.logger, "auth", s.sessionKey, user)
	s.notify()
}

func credentialKey(email string) string {
	return credentialKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}
