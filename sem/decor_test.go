package sem

import (
	"testing"

	"aslc/ast"
	"aslc/types"

	"github.com/stretchr/testify/assert"
)

func TestDecorations_attributes(t *testing.T) {
	tm := types.NewManager()
	dec := NewDecorations()

	n1 := &ast.Ident{Name: "a"}
	n2 := &ast.Ident{Name: "b"}

	dec.PutType(n1, tm.CreateFloatTy())
	dec.PutIsLValue(n1, true)
	dec.PutScope(n1, ScopeId(2))

	assert.Equal(t, tm.CreateFloatTy(), dec.GetType(n1))
	assert.True(t, dec.GetIsLValue(n1))
	assert.Equal(t, ScopeId(2), dec.GetScope(n1))
	assert.True(t, dec.HasType(n1))
	assert.True(t, dec.HasIsLValue(n1))

	// Undecorated nodes read back as the error type and non-l-value.
	assert.True(t, tm.IsErrorTy(dec.GetType(n2)))
	assert.False(t, dec.GetIsLValue(n2))
	assert.Equal(t, ScopeId(-1), dec.GetScope(n2))
	assert.False(t, dec.HasType(n2))
}

func TestDecorations_identityKeyed(t *testing.T) {
	tm := types.NewManager()
	dec := NewDecorations()

	// Two structurally equal nodes are distinct keys.
	n1 := &ast.Ident{Name: "x"}
	n2 := &ast.Ident{Name: "x"}

	dec.PutType(n1, tm.CreateIntegerTy())
	assert.False(t, dec.HasType(n2))
}
