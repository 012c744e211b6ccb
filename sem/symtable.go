package sem

import (
	"fmt"
	"strings"

	"aslc/types"
)

// ScopeId identifies a lexical scope.  Ids are stable for the lifetime of the
// compilation session so that later passes can re-enter the scopes created by
// the symbols pass in the same order.
type ScopeId int

// GlobalScopeName is the name given to the outermost scope.
const GlobalScopeName = "$global"

// Enumeration of symbol classes.
const (
	classLocalVar = iota
	classParameter
	classFunction
)

// symbol is one entry of a scope: a name bound to a class and a type.
type symbol struct {
	name  string
	class int
	typ   types.TypeId
}

// scope is a single lexical scope: a named set of symbols.  The declaration
// order is kept for deterministic dumps.
type scope struct {
	id    ScopeId
	name  string
	syms  map[string]*symbol
	order []string
}

// SymTable is the stacked symbol table shared by the three passes.  The
// symbols pass creates scopes with PushNewScope; the type-check and codegen
// passes revisit them with PushThisScope using the ids recorded on the tree.
type SymTable struct {
	// Every scope ever created, indexed by its id.
	scopes []*scope

	// The currently active scope stack, innermost last.
	stack []ScopeId
}

// NewSymTable creates a new, empty symbol table.
func NewSymTable() *SymTable {
	return &SymTable{}
}

// -----------------------------------------------------------------------------

// PushNewScope creates a new scope with the given name and makes it current.
// It returns the new scope's id.
func (st *SymTable) PushNewScope(name string) ScopeId {
	id := ScopeId(len(st.scopes))
	st.scopes = append(st.scopes, &scope{
		id:   id,
		name: name,
		syms: make(map[string]*symbol),
	})
	st.stack = append(st.stack, id)
	return id
}

// PushThisScope re-enters a previously created scope.
func (st *SymTable) PushThisScope(id ScopeId) {
	st.stack = append(st.stack, id)
}

// PopScope removes the current scope from the stack.  The scope itself is
// retained so it can be re-entered later.
func (st *SymTable) PopScope() {
	st.stack = st.stack[:len(st.stack)-1]
}

func (st *SymTable) current() *scope {
	return st.scopes[st.stack[len(st.stack)-1]]
}

func (st *SymTable) add(name string, class int, t types.TypeId) {
	sc := st.current()
	sc.syms[name] = &symbol{name: name, class: class, typ: t}
	sc.order = append(sc.order, name)
}

// AddLocalVar declares a local variable in the current scope.
func (st *SymTable) AddLocalVar(name string, t types.TypeId) {
	st.add(name, classLocalVar, t)
}

// AddParameter declares a parameter in the current scope.
func (st *SymTable) AddParameter(name string, t types.TypeId) {
	st.add(name, classParameter, t)
}

// AddFunction declares a function in the current scope.  The type is always a
// function type.
func (st *SymTable) AddFunction(name string, t types.TypeId) {
	st.add(name, classFunction, t)
}

// -----------------------------------------------------------------------------

// FindInCurrentScope returns whether name is declared in the current scope.
func (st *SymTable) FindInCurrentScope(name string) bool {
	_, ok := st.current().syms[name]
	return ok
}

// FindInStack looks name up through the scope stack, innermost first.  It
// returns the id of the scope declaring it, or -1 if it is not declared.
func (st *SymTable) FindInStack(name string) ScopeId {
	for i := len(st.stack) - 1; i >= 0; i-- {
		sc := st.scopes[st.stack[i]]
		if _, ok := sc.syms[name]; ok {
			return sc.id
		}
	}
	return -1
}

func (st *SymTable) lookup(name string) *symbol {
	for i := len(st.stack) - 1; i >= 0; i-- {
		if sym, ok := st.scopes[st.stack[i]].syms[name]; ok {
			return sym
		}
	}
	return nil
}

// GetType returns the type of the innermost visible declaration of name.  It
// returns the error type when name is not declared.
func (st *SymTable) GetType(name string) types.TypeId {
	if sym := st.lookup(name); sym != nil {
		return sym.typ
	}
	return types.TypeId(0)
}

// IsFunctionClass returns whether the innermost visible declaration of name is
// a function.
func (st *SymTable) IsFunctionClass(name string) bool {
	sym := st.lookup(name)
	return sym != nil && sym.class == classFunction
}

// IsParameterClass returns whether the innermost visible declaration of name
// is a parameter.
func (st *SymTable) IsParameterClass(name string) bool {
	sym := st.lookup(name)
	return sym != nil && sym.class == classParameter
}

// IsLocalVarClass returns whether the innermost visible declaration of name is
// a local variable.
func (st *SymTable) IsLocalVarClass(name string) bool {
	sym := st.lookup(name)
	return sym != nil && sym.class == classLocalVar
}

// -----------------------------------------------------------------------------

// NoMainProperlyDeclared holds when the global scope has no function `main`
// taking no parameters and returning void.
func (st *SymTable) NoMainProperlyDeclared(tm *types.Manager) bool {
	if len(st.scopes) == 0 {
		return true
	}

	sym, ok := st.scopes[0].syms["main"]
	if !ok || sym.class != classFunction {
		return true
	}

	return !tm.IsVoidFunction(sym.typ) || tm.GetNumOfParameters(sym.typ) != 0
}

// -----------------------------------------------------------------------------

var classNames = []string{"local", "parameter", "function"}

// Repr renders every scope of the table for the debug harness.
func (st *SymTable) Repr(tm *types.Manager) string {
	sb := &strings.Builder{}
	for _, sc := range st.scopes {
		fmt.Fprintf(sb, "scope %d (%s)\n", sc.id, sc.name)
		for _, name := range sc.order {
			sym := sc.syms[name]
			fmt.Fprintf(sb, "  %s: %s %s\n", sym.name, classNames[sym.class], tm.ToString(sym.typ))
		}
	}
	return sb.String()
}
