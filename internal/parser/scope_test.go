package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeShadowing(t *testing.T) {
	var s scopeStack
	s.push(true)
	require.NoError(t, s.insert("T"))
	s.push(false)
	require.NoError(t, s.insert("U"))

	assert.True(t, s.contains("T"))
	assert.True(t, s.contains("U"))

	require.NoError(t, s.pop())
	assert.True(t, s.contains("T"))
	assert.False(t, s.contains("U"))
}

func TestScopeResetHidesOuterNames(t *testing.T) {
	var s scopeStack
	s.push(true)
	require.NoError(t, s.insert("T"))

	s.push(true)
	assert.False(t, s.contains("T"))
	require.NoError(t, s.insert("T"))
	require.NoError(t, s.insert("X"))
	assert.True(t, s.contains("X"))

	require.NoError(t, s.pop())
	assert.True(t, s.contains("T"))
	assert.False(t, s.contains("X"))
	assert.Equal(t, 2, s.depth())

	require.NoError(t, s.pop())
	assert.Equal(t, 0, s.depth())
}

func TestScopeErrors(t *testing.T) {
	var s scopeStack
	assert.ErrorIs(t, s.pop(), errEmptyScope)
	assert.ErrorIs(t, s.insert("T"), errEmptyScope)

	s.tables = append(s.tables, &typeVarTable{boundary: true})
	assert.ErrorIs(t, s.insert("T"), errResetScope)
}
