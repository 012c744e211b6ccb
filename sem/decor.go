package sem

import (
	"aslc/ast"
	"aslc/types"
)

// nodeDecor holds the attributes computed for a single tree node.
type nodeDecor struct {
	scope    ScopeId
	hasScope bool

	typ    types.TypeId
	hasTyp bool

	isLValue  bool
	hasLValue bool
}

// Decorations is the side table of per-node attributes.  The symbols pass
// writes scope and type decorations, the type-check pass writes type and
// l-value decorations, and the codegen pass only reads.  Nodes are keyed by
// identity, so the tree itself stays immutable.
type Decorations struct {
	table map[ast.Node]*nodeDecor
}

// NewDecorations creates a new, empty decoration table.
func NewDecorations() *Decorations {
	return &Decorations{table: make(map[ast.Node]*nodeDecor)}
}

func (d *Decorations) decorOf(n ast.Node) *nodeDecor {
	if dec, ok := d.table[n]; ok {
		return dec
	}
	dec := &nodeDecor{}
	d.table[n] = dec
	return dec
}

// PutScope records the scope attribute of a node.
func (d *Decorations) PutScope(n ast.Node, id ScopeId) {
	dec := d.decorOf(n)
	dec.scope = id
	dec.hasScope = true
}

// GetScope returns the scope attribute of a node.
func (d *Decorations) GetScope(n ast.Node) ScopeId {
	if dec, ok := d.table[n]; ok && dec.hasScope {
		return dec.scope
	}
	return -1
}

// PutType records the type attribute of a node.
func (d *Decorations) PutType(n ast.Node, t types.TypeId) {
	dec := d.decorOf(n)
	dec.typ = t
	dec.hasTyp = true
}

// GetType returns the type attribute of a node.  A node that was never
// decorated reads back as the error type.
func (d *Decorations) GetType(n ast.Node) types.TypeId {
	if dec, ok := d.table[n]; ok && dec.hasTyp {
		return dec.typ
	}
	return types.TypeId(0)
}

// HasType returns whether a node carries a type attribute.
func (d *Decorations) HasType(n ast.Node) bool {
	dec, ok := d.table[n]
	return ok && dec.hasTyp
}

// PutIsLValue records the l-value attribute of a node.
func (d *Decorations) PutIsLValue(n ast.Node, b bool) {
	dec := d.decorOf(n)
	dec.isLValue = b
	dec.hasLValue = true
}

// GetIsLValue returns the l-value attribute of a node.
func (d *Decorations) GetIsLValue(n ast.Node) bool {
	if dec, ok := d.table[n]; ok && dec.hasLValue {
		return dec.isLValue
	}
	return false
}

// HasIsLValue returns whether a node carries an l-value attribute.
func (d *Decorations) HasIsLValue(n ast.Node) bool {
	dec, ok := d.table[n]
	return ok && dec.hasLValue
}
