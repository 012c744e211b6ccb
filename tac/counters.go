package tac

import "strconv"

// Counters allocates fresh temporary names and label numbers.  One Counters
// value belongs to the subroutine being generated; it is reset at each
// subroutine boundary, so names repeat across subroutines but never within
// one.
type Counters struct {
	temps  int
	ifs    int
	whiles int
}

// Reset restarts all counters for a new subroutine.
func (c *Counters) Reset() {
	c.temps = 0
	c.ifs = 0
	c.whiles = 0
}

// NewTemp returns a fresh temporary name of the form %N, starting at %0.
func (c *Counters) NewTemp() string {
	t := "%" + strconv.Itoa(c.temps)
	c.temps++
	return t
}

// NewIfLabel returns a fresh label number for an if statement.  The same
// number is shared by the statement's else and endif labels.
func (c *Counters) NewIfLabel() string {
	c.ifs++
	return strconv.Itoa(c.ifs)
}

// NewWhileLabel returns a fresh label number for a while statement, shared by
// its while and endwhile labels.
func (c *Counters) NewWhileLabel() string {
	c.whiles++
	return strconv.Itoa(c.whiles)
}
