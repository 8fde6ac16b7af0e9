package idgen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-arena/internal/pkg/idgen"
)

func TestSequentialGenerator(t *testing.T) {
	g := idgen.NewSequential("sess")
	assert.Equal(t, "sess_1", g.Generate())
	assert.Equal(t, "sess_2", g.Generate())

	bare := idgen.NewSequential("")
	assert.Equal(t, "1", bare.Generate())
}

func TestUUIDGenerator(t *testing.T) {
	g := idgen.NewUUID("sess")
	first := g.Generate()
	second := g.Generate()

	require.True(t, strings.HasPrefix(first, "sess_"))
	assert.NotEqual(t, first, second)
	assert.Len(t, strings.TrimPrefix(first, "sess_"), 36)
}

func TestPrefixedGenerator(t *testing.T) {
	g := idgen.NewPrefixed("fighter")
	id := g.Generate()

	parts := strings.Split(id, "_")
	require.Len(t, parts, 3)
	assert.Equal(t, "fighter", parts[0])
	assert.Len(t, parts[2], 8)
	assert.NotEqual(t, id, g.Generate())
}
