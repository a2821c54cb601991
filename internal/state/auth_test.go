package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohandalborai/ShopSphere/internal/authhash"
	"github.com/mohandalborai/ShopSphere/internal/kvstore"
)

func newAuth(kv kvstore.Store) *AuthStore {
	return NewAuthStore(kv, "user", authhash.Default())
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	auth := newAuth(kvstore.NewMemoryStore())

	result := auth.Register("Sara", "sara@example.com", "short12")

	assert.False(t, result.Success)
	assert.Equal(t, MsgWeakPassword, result.Error)

	// no session was established
	_, loggedIn := auth.CurrentUser()
	assert.False(t, loggedIn)
}

func TestRegisterEstablishesSession(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	auth := newAuth(kv)

	result := auth.Register("Sara", "sara@example.com", "password")
	require.True(t, result.Success)
	assert.Empty(t, result.Error)

	user, loggedIn := auth.CurrentUser()
	require.True(t, loggedIn)
	assert.Equal(t, "sara@example.com", user.Email)
	assert.Equal(t, "Sara", user.Name)

	// the account is retrievable by a subsequent login from another session
	fresh := NewAuthStore(kv, "user2", authhash.Default())
	result = fresh.Login("sara@example.com", "password")
	assert.True(t, result.Success)
}

func TestLoginFailureIsGeneric(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	auth := newAuth(kv)
	require.True(t, auth.Register("Sara", "sara@example.com", "password").Success)
	auth.Logout()

	wrongPassword := auth.Login("sara@example.com", "nottherightone")
	unknownEmail := auth.Login("nobody@example.com", "password")

	assert.False(t, wrongPassword.Success)
	assert.False(t, unknownEmail.Success)
	// identical message in both cases, no enumeration signal
	assert.Equal(t, MsgInvalidCredentials, wrongPassword.Error)
	assert.Equal(t, wrongPassword.Error, unknownEmail.Error)

	_, loggedIn := auth.CurrentUser()
	assert.False(t, loggedIn)
}

func TestLogoutClearsSession(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	auth := newAuth(kv)
	require.True(t, auth.Register("Sara", "sara@example.com", "password").Success)

	auth.Logout()

	_, loggedIn := auth.CurrentUser()
	assert.False(t, loggedIn)

	// the persisted session is gone too
	_, ok, err := kv.Get("user")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionRestoredFromPersistence(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	auth := newAuth(kv)
	require.True(t, auth.Register("Sara", "sara@example.com", "password").Success)

	restored := newAuth(kv)
	user, loggedIn := restored.CurrentUser()
	require.True(t, loggedIn)
	assert.Equal(t, "sara@example.com", user.Email)
}

func TestLoginWhileLoggedInReplacesSession(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	auth := newAuth(kv)
	require.True(t, auth.Register("Sara", "sara@example.com", "password").Success)
	require.True(t, auth.Register("Omar", "omar@example.com", "password2").Success)

	user, loggedIn := auth.CurrentUser()
	require.True(t, loggedIn)
	assert.Equal(t, "omar@example.com", user.Email)

	result := auth.Login("sara@example.com", "password")
	require.True(t, result.Success)

	user, _ = auth.CurrentUser()
	assert.Equal(t, "sara@example.com", user.Email)
}

func TestLegacyCredentialRecordsStillVerify(t *testing.T) {
	kv := kvstore.NewMemoryStore()

	// a record written by the original checksum scheme
	sum, err := authhash.LegacyChecksumHasher{}.Hash("password123")
	require.NoError(t, err)
	require.NoError(t, kv.Set("user_db:legacy@example.com",
		`{"name":"Legacy","email":"legacy@example.com","password_hash":"`+sum+`"}`))

	auth := newAuth(kv)
	result := auth.Login("legacy@example.com", "password123")
	assert.True(t, result.Success)
}

func TestCredentialEmailIsCaseInsensitive(t *testing.T) {
	auth := newAuth(kvstore.NewMemoryStore())
	require.True(t, auth.Register("Sara", "Sara@Example.com", "password").Success)
	auth.Logout()

	result := auth.Login("sara@example.com", "password")
	assert.True(t, result.Success)
}
