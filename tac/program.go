package tac

import (
	"fmt"
	"strings"
)

// Param is a formal parameter of a subroutine.  Array parameters are passed by
// reference and flagged with ByRef; their type tag is the element type's tag.
type Param struct {
	Name    string
	TypeTag string
	ByRef   bool
}

// Var is a local variable of a subroutine.  Size is the element count: 1 for
// scalars, the declared length for arrays.
type Var struct {
	Name    string
	TypeTag string
	Size    uint32
}

// Subroutine is one compiled function: its parameters, locals, and instruction
// sequence.
type Subroutine struct {
	Name string

	Params []Param
	Vars   []Var

	Instrs []Instruction
}

// NewSubroutine creates a new, empty subroutine with the given name.
func NewSubroutine(name string) *Subroutine {
	return &Subroutine{Name: name}
}

// AddParam appends a formal parameter.
func (s *Subroutine) AddParam(name, typeTag string, byRef bool) {
	s.Params = append(s.Params, Param{Name: name, TypeTag: typeTag, ByRef: byRef})
}

// AddVar appends a local variable.
func (s *Subroutine) AddVar(name, typeTag string, size uint32) {
	s.Vars = append(s.Vars, Var{Name: name, TypeTag: typeTag, Size: size})
}

// SetInstructions installs the subroutine's instruction sequence.
func (s *Subroutine) SetInstructions(instrs []Instruction) {
	s.Instrs = instrs
}

// Repr returns the full textual representation of the subroutine.
func (s *Subroutine) Repr() string {
	sb := strings.Builder{}

	fmt.Fprintf(&sb, "subroutine %s\n", s.Name)

	for _, p := range s.Params {
		fmt.Fprintf(&sb, "  param %s %s", p.Name, p.TypeTag)
		if p.ByRef {
			sb.WriteString(" &")
		}
		sb.WriteRune('\n')
	}

	for _, v := range s.Vars {
		fmt.Fprintf(&sb, "  var %s %s %d\n", v.Name, v.TypeTag, v.Size)
	}

	for _, ins := range s.Instrs {
		sb.WriteString("  ")
		sb.WriteString(ins.Repr())
		sb.WriteRune('\n')
	}

	sb.WriteString("endsubroutine\n")
	return sb.String()
}

// -----------------------------------------------------------------------------

// Program is a complete TAC module: an ordered list of subroutines.
type Program struct {
	Subrs []*Subroutine
}

// AddSubroutine appends a subroutine to the module.
func (p *Program) AddSubroutine(s *Subroutine) {
	p.Subrs = append(p.Subrs, s)
}

// Repr returns the full textual representation of the TAC module.
func (p *Program) Repr() string {
	sb := strings.Builder{}

	for i, s := range p.Subrs {
		if i > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(s.Repr())
	}

	return sb.String()
}
