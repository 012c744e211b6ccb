package tac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstruction_repr(t *testing.T) {
	assert.Equal(t, "ILOAD %0, 1", ILoad("%0", "1").Repr())
	assert.Equal(t, "LOADX %1, a, %0", LoadX("%1", "a", "%0").Repr())
	assert.Equal(t, "XLOAD a, %0, %1", XLoad("a", "%0", "%1").Repr())
	assert.Equal(t, "RETURN", Return().Repr())
	assert.Equal(t, "PUSH", PushEmpty().Repr())
	assert.Equal(t, "PUSH %2", Push("%2").Repr())
	assert.Equal(t, "POP", PopEmpty().Repr())
	assert.Equal(t, "FJUMP %0, else1", FJump("%0", "else1").Repr())
	assert.Equal(t, `WRITES "hello"`, WriteS(`"hello"`).Repr())
	assert.Equal(t, "HALT 1", Halt("1").Repr())
}

func TestCounters_resetPerSubroutine(t *testing.T) {
	c := &Counters{}

	assert.Equal(t, "%0", c.NewTemp())
	assert.Equal(t, "%1", c.NewTemp())
	assert.Equal(t, "1", c.NewIfLabel())
	assert.Equal(t, "2", c.NewIfLabel())
	assert.Equal(t, "1", c.NewWhileLabel())

	c.Reset()
	assert.Equal(t, "%0", c.NewTemp())
	assert.Equal(t, "1", c.NewIfLabel())
	assert.Equal(t, "1", c.NewWhileLabel())
}

func TestSubroutine_repr(t *testing.T) {
	s := NewSubroutine("f")
	s.AddParam("_result", "integer", false)
	s.AddParam("v", "integer", true)
	s.AddVar("x", "float", 1)
	s.AddVar("a", "integer", 4)
	s.SetInstructions([]Instruction{
		ILoad("%0", "7"),
		Load("_result", "%0"),
		Return(),
	})

	expected := `subroutine f
  param _result integer
  param v integer &
  var x float 1
  var a integer 4
  ILOAD %0, 7
  LOAD _result, %0
  RETURN
endsubroutine
`
	assert.Equal(t, expected, s.Repr())
}

func TestProgram_repr(t *testing.T) {
	p := &Program{}

	s1 := NewSubroutine("f")
	s1.SetInstructions([]Instruction{Return()})
	s2 := NewSubroutine("main")
	s2.SetInstructions([]Instruction{Return()})

	p.AddSubroutine(s1)
	p.AddSubroutine(s2)

	expected := `subroutine f
  RETURN
endsubroutine

subroutine main
  RETURN
endsubroutine
`
	assert.Equal(t, expected, p.Repr())
}
