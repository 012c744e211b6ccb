package tac

import "strings"

// Instruction is a single three-address instruction.  Operands are symbolic:
// variable names, parameter names, temporaries (`%N`), labels, or literal
// text.  Unused operand slots are left empty.
type Instruction struct {
	// Op is the integer code designating the instruction.
	Op int

	Arg1, Arg2, Arg3 string
}

// Enumeration of instruction op codes.
const (
	OpILoad = iota
	OpFLoad
	OpChLoad
	OpLoad
	OpFloat
	OpALoad
	OpLoadX
	OpXLoad

	OpAdd
	OpSub
	OpMul
	OpDiv
	OpFAdd
	OpFSub
	OpFMul
	OpFDiv
	OpNeg
	OpFNeg

	OpEq
	OpLt
	OpLe
	OpFEq
	OpFLt
	OpFLe

	OpAnd
	OpOr
	OpNot

	OpPush
	OpPop
	OpCall
	OpReturn

	OpLabel
	OpUJump
	OpFJump

	OpReadI
	OpReadF
	OpReadC
	OpWriteI
	OpWriteF
	OpWriteC
	OpWriteS

	OpHalt
)

// displayTable converts an op code into the mnemonic written to the module.
var displayTable = []string{
	"ILOAD",
	"FLOAD",
	"CHLOAD",
	"LOAD",
	"FLOAT",
	"ALOAD",
	"LOADX",
	"XLOAD",

	"ADD",
	"SUB",
	"MUL",
	"DIV",
	"FADD",
	"FSUB",
	"FMUL",
	"FDIV",
	"NEG",
	"FNEG",

	"EQ",
	"LT",
	"LE",
	"FEQ",
	"FLT",
	"FLE",

	"AND",
	"OR",
	"NOT",

	"PUSH",
	"POP",
	"CALL",
	"RETURN",

	"LABEL",
	"UJUMP",
	"FJUMP",

	"READI",
	"READF",
	"READC",
	"WRITEI",
	"WRITEF",
	"WRITEC",
	"WRITES",

	"HALT",
}

// Enumeration of trap codes for HALT.
const (
	HaltInvalidIntegerOperand = 1
	HaltIndexOutOfRange       = 2
	HaltDivisionByZero        = 3
)

// Repr returns the textual form of the instruction: the mnemonic followed by
// its operands, comma separated.  Operand slots are left-packed, so rendering
// stops at the first empty slot.
func (ins Instruction) Repr() string {
	sb := strings.Builder{}
	sb.WriteString(displayTable[ins.Op])

	for _, arg := range []string{ins.Arg1, ins.Arg2, ins.Arg3} {
		if arg == "" {
			break
		}
		if sb.Len() > len(displayTable[ins.Op]) {
			sb.WriteString(", ")
		} else {
			sb.WriteRune(' ')
		}
		sb.WriteString(arg)
	}

	return sb.String()
}

// -----------------------------------------------------------------------------
// Constructors, one per instruction shape.

func ILoad(d, src string) Instruction  { return Instruction{Op: OpILoad, Arg1: d, Arg2: src} }
func FLoad(d, src string) Instruction  { return Instruction{Op: OpFLoad, Arg1: d, Arg2: src} }
func ChLoad(d, src string) Instruction { return Instruction{Op: OpChLoad, Arg1: d, Arg2: src} }
func Load(d, src string) Instruction   { return Instruction{Op: OpLoad, Arg1: d, Arg2: src} }
func Float(d, src string) Instruction  { return Instruction{Op: OpFloat, Arg1: d, Arg2: src} }
func ALoad(d, arr string) Instruction  { return Instruction{Op: OpALoad, Arg1: d, Arg2: arr} }

func LoadX(d, base, offs string) Instruction {
	return Instruction{Op: OpLoadX, Arg1: d, Arg2: base, Arg3: offs}
}

func XLoad(base, offs, src string) Instruction {
	return Instruction{Op: OpXLoad, Arg1: base, Arg2: offs, Arg3: src}
}

func Add(d, a, b string) Instruction  { return Instruction{Op: OpAdd, Arg1: d, Arg2: a, Arg3: b} }
func Sub(d, a, b string) Instruction  { return Instruction{Op: OpSub, Arg1: d, Arg2: a, Arg3: b} }
func Mul(d, a, b string) Instruction  { return Instruction{Op: OpMul, Arg1: d, Arg2: a, Arg3: b} }
func Div(d, a, b string) Instruction  { return Instruction{Op: OpDiv, Arg1: d, Arg2: a, Arg3: b} }
func FAdd(d, a, b string) Instruction { return Instruction{Op: OpFAdd, Arg1: d, Arg2: a, Arg3: b} }
func FSub(d, a, b string) Instruction { return Instruction{Op: OpFSub, Arg1: d, Arg2: a, Arg3: b} }
func FMul(d, a, b string) Instruction { return Instruction{Op: OpFMul, Arg1: d, Arg2: a, Arg3: b} }
func FDiv(d, a, b string) Instruction { return Instruction{Op: OpFDiv, Arg1: d, Arg2: a, Arg3: b} }
func Neg(d, a string) Instruction     { return Instruction{Op: OpNeg, Arg1: d, Arg2: a} }
func FNeg(d, a string) Instruction    { return Instruction{Op: OpFNeg, Arg1: d, Arg2: a} }

func Eq(d, a, b string) Instruction  { return Instruction{Op: OpEq, Arg1: d, Arg2: a, Arg3: b} }
func Lt(d, a, b string) Instruction  { return Instruction{Op: OpLt, Arg1: d, Arg2: a, Arg3: b} }
func Le(d, a, b string) Instruction  { return Instruction{Op: OpLe, Arg1: d, Arg2: a, Arg3: b} }
func FEq(d, a, b string) Instruction { return Instruction{Op: OpFEq, Arg1: d, Arg2: a, Arg3: b} }
func FLt(d, a, b string) Instruction { return Instruction{Op: OpFLt, Arg1: d, Arg2: a, Arg3: b} }
func FLe(d, a, b string) Instruction { return Instruction{Op: OpFLe, Arg1: d, Arg2: a, Arg3: b} }

func And(d, a, b string) Instruction { return Instruction{Op: OpAnd, Arg1: d, Arg2: a, Arg3: b} }
func Or(d, a, b string) Instruction  { return Instruction{Op: OpOr, Arg1: d, Arg2: a, Arg3: b} }
func Not(d, a string) Instruction    { return Instruction{Op: OpNot, Arg1: d, Arg2: a} }

// Push pushes a value onto the call stack; with no operand it reserves an
// empty slot for a result.
func Push(src string) Instruction { return Instruction{Op: OpPush, Arg1: src} }

// PushEmpty reserves an empty result slot.
func PushEmpty() Instruction { return Instruction{Op: OpPush} }

// Pop pops a value into dst; with no operand the value is discarded.
func Pop(dst string) Instruction { return Instruction{Op: OpPop, Arg1: dst} }

// PopEmpty discards the top of the call stack.
func PopEmpty() Instruction { return Instruction{Op: OpPop} }

func Call(name string) Instruction { return Instruction{Op: OpCall, Arg1: name} }
func Return() Instruction          { return Instruction{Op: OpReturn} }

func Label(l string) Instruction    { return Instruction{Op: OpLabel, Arg1: l} }
func UJump(l string) Instruction    { return Instruction{Op: OpUJump, Arg1: l} }
func FJump(c, l string) Instruction { return Instruction{Op: OpFJump, Arg1: c, Arg2: l} }

func ReadI(d string) Instruction    { return Instruction{Op: OpReadI, Arg1: d} }
func ReadF(d string) Instruction    { return Instruction{Op: OpReadF, Arg1: d} }
func ReadC(d string) Instruction    { return Instruction{Op: OpReadC, Arg1: d} }
func WriteI(src string) Instruction { return Instruction{Op: OpWriteI, Arg1: src} }
func WriteF(src string) Instruction { return Instruction{Op: OpWriteF, Arg1: src} }
func WriteC(src string) Instruction { return Instruction{Op: OpWriteC, Arg1: src} }
func WriteS(s string) Instruction   { return Instruction{Op: OpWriteS, Arg1: s} }

func Halt(code string) Instruction { return Instruction{Op: OpHalt, Arg1: code} }
