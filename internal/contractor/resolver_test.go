package contractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homereno/renoterm/internal/model"
)

var roster = []model.Contractor{
	{ID: "507f1f77bcf86cd799439011", FullName: "Acme Builders", Price: 1200, Expertise: model.ExpertiseSenior},
	{ID: "507f1f77bcf86cd799439012", FullName: "Smith & Sons", Price: 800, Expertise: model.ExpertiseJunior},
}

func TestIsHexID(t *testing.T) {
	assert.True(t, IsHexID("507f1f77bcf86cd799439011"))
	assert.True(t, IsHexID(strings.ToUpper("507f1f77bcf86cd799439011")))
	assert.False(t, IsHexID("Acme Builders"))
	assert.False(t, IsHexID("507f1f77bcf86cd79943901"), "23 chars")
	assert.False(t, IsHexID("507f1f77bcf86cd7994390111"), "25 chars")
	assert.False(t, IsHexID("507f1f77bcf86cd79943901z"), "non-hex char")
	assert.False(t, IsHexID(""))
}

func TestClassify(t *testing.T) {
	r := NewResolver(nil)

	t.Run("hex string is an id", func(t *testing.T) {
		ref := r.Classify("507f1f77bcf86cd799439011")
		assert.Equal(t, "507f1f77bcf86cd799439011", ref.ID)
		assert.Empty(t, ref.Name)
	})

	t.Run("anything else is a display name", func(t *testing.T) {
		ref := r.Classify("Acme Builders")
		assert.Empty(t, ref.ID)
		assert.Equal(t, "Acme Builders", ref.Name)
	})

	t.Run("empty string is no contractor", func(t *testing.T) {
		assert.True(t, r.Classify("").IsZero())
	})

	t.Run("custom predicate overrides the heuristic", func(t *testing.T) {
		custom := NewResolver(func(s string) bool {
			return strings.HasPrefix(s, "ctr-")
		})
		assert.Equal(t, "ctr-42", custom.Classify("ctr-42").ID)
		ref := custom.Classify("507f1f77bcf86cd799439011")
		assert.Equal(t, "507f1f77bcf86cd799439011", ref.Name)
	})
}

func TestFind(t *testing.T) {
	r := NewResolver(nil)

	t.Run("id match wins", func(t *testing.T) {
		c, ok := r.Find(model.ContractorRef{ID: "507f1f77bcf86cd799439012", Name: "Acme Builders"}, roster)
		require.True(t, ok)
		assert.Equal(t, "Smith & Sons", c.FullName)
	})

	t.Run("name fallback when id misses the roster", func(t *testing.T) {
		c, ok := r.Find(model.ContractorRef{ID: "ffffffffffffffffffffffff", Name: "Acme Builders"}, roster)
		require.True(t, ok)
		assert.Equal(t, "507f1f77bcf86cd799439011", c.ID)
	})

	t.Run("name-only refs resolve by exact match", func(t *testing.T) {
		c, ok := r.Find(model.ContractorRef{Name: "Smith & Sons"}, roster)
		require.True(t, ok)
		assert.Equal(t, "507f1f77bcf86cd799439012", c.ID)

		_, ok = r.Find(model.ContractorRef{Name: "smith & sons"}, roster)
		assert.False(t, ok, "name matching is exact")
	})

	t.Run("zero ref never resolves", func(t *testing.T) {
		_, ok := r.Find(model.ContractorRef{}, roster)
		assert.False(t, ok)
	})
}

func TestResolveID(t *testing.T) {
	r := NewResolver(nil)

	id, ok := r.ResolveID(model.ContractorRef{ID: "507f1f77bcf86cd799439011"})
	require.True(t, ok)
	assert.Equal(t, "507f1f77bcf86cd799439011", id)

	// A name-only ref carries no id to fetch by.
	_, ok = r.ResolveID(model.ContractorRef{Name: "Acme Builders"})
	assert.False(t, ok)

	_, ok = r.ResolveID(model.ContractorRef{})
	assert.False(t, ok)
}

func TestResolveLookups(t *testing.T) {
	r := NewResolver(nil)
	ref := model.ContractorRef{ID: "507f1f77bcf86cd799439011"}

	exp, ok := r.ResolveExpertise(ref, roster)
	require.True(t, ok)
	assert.Equal(t, model.ExpertiseSenior, exp)

	assert.Equal(t, 1200.0, r.ResolvePrice(ref, roster))
	assert.Equal(t, 0.0, r.ResolvePrice(model.ContractorRef{}, roster))
	assert.Equal(t, 0.0, r.ResolvePrice(model.ContractorRef{ID: "ffffffffffffffffffffffff"}, roster))

	name, ok := r.ResolveName(model.ContractorRef{ID: "507f1f77bcf86cd799439012"}, roster)
	require.True(t, ok)
	assert.Equal(t, "Smith & Sons", name)

	// The embedded name survives even when the roster has not loaded yet.
	name, ok = r.ResolveName(model.ContractorRef{Name: "Acme Builders"}, nil)
	require.True(t, ok)
	assert.Equal(t, "Acme Builders", name)

	_, ok = r.ResolveName(model.ContractorRef{}, roster)
	assert.False(t, ok)
}
