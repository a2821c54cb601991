package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohandalborai/ShopSphere/internal/authhash"
	"github.com/mohandalborai/ShopSphere/internal/kvstore"
	"github.com/mohandalborai/ShopSphere/internal/models"
)

func TestRegistryReturnsSameInstancePerSession(t *testing.T) {
	reg := NewRegistry(kvstore.NewMemoryStore(), authhash.Default(), models.LangEnglish)

	a := reg.Session("sess-a")
	assert.Same(t, a, reg.Session("sess-a"))
	assert.NotSame(t, a, reg.Session("sess-b"))
}

func TestSessionsAreIsolated(t *testing.T) {
	reg := NewRegistry(kvstore.NewMemoryStore(), authhash.Default(), models.LangEnglish)

	reg.Session("sess-a").Cart.AddToCart(product(1, 10), 2)

	assert.Equal(t, 2, reg.Session("sess-a").Cart.CartCount())
	assert.Equal(t, 0, reg.Session("sess-b").Cart.CartCount())
}

func TestAccountsAreSharedAcrossSessions(t *testing.T) {
	reg := NewRegistry(kvstore.NewMemoryStore(), authhash.Default(), models.LangEnglish)

	result := reg.Session("sess-a").Auth.Register("Sara", "sara@example.com", "password")
	require.True(t, result.Success)

	result = reg.Session("sess-b").Auth.Login("sara@example.com", "password")
	assert.True(t, result.Success)
}
