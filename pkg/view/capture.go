package view

import (
	"bytes"
	"errors"
	"fmt"
)

var errNoCaptureScope = errors.New("no capture scope is open")

// Scope identifies one open capture on a CaptureStack.
type Scope struct {
	depth int
	stack *CaptureStack
}

type capture struct {
	buf   bytes.Buffer
	block bool
	name  string
}

// CaptureStack is a stack of output buffers. Writes always go to the most
// recently opened scope; closing a scope returns what was written to it.
// Scopes must be closed in reverse order of opening.
type CaptureStack struct {
	scopes []*capture
}

// Open starts a new capture scope on top of the stack.
func (s *CaptureStack) Open() Scope {
	return s.push(&capture{})
}

// Close ends the scope and returns its buffered output. It fails when
// another scope was opened after this one and is still open.
func (s *CaptureStack) Close(sc Scope) (string, error) {
	if sc.stack != s || sc.depth == 0 || sc.depth > len(s.scopes) {
		return "", errors.New("capture scope is not open on this stack")
	}
	if sc.depth != len(s.scopes) {
		return "", fmt.Errorf("capture scope closed out of order: %d scope(s) still open above it", len(s.scopes)-sc.depth)
	}
	c := s.pop()
	return c.buf.String(), nil
}

// Discard drops the scope and every scope opened after it.
func (s *CaptureStack) Discard(sc Scope) {
	if sc.stack != s || sc.depth == 0 || sc.depth > len(s.scopes) {
		return
	}
	for i := sc.depth - 1; i < len(s.scopes); i++ {
		s.scopes[i] = nil
	}
	s.scopes = s.scopes[:sc.depth-1]
}

// Depth returns the number of open scopes.
func (s *CaptureStack) Depth() int {
	return len(s.scopes)
}

// Write appends p to the innermost open scope.
func (s *CaptureStack) Write(p []byte) (int, error) {
	if len(s.scopes) == 0 {
		return 0, errNoCaptureScope
	}
	return s.scopes[len(s.scopes)-1].buf.Write(p)
}

func (s *CaptureStack) openBlock(name string) Scope {
	return s.push(&capture{block: true, name: name})
}

// closeBlock closes the innermost scope if it belongs to a block.
func (s *CaptureStack) closeBlock() (string, string, error) {
	if len(s.scopes) == 0 || !s.scopes[len(s.scopes)-1].block {
		return "", "", ErrNoOpenBlock
	}
	c := s.pop()
	return c.name, c.buf.String(), nil
}

// openBlockAbove returns the innermost block scope opened after sc, if any.
func (s *CaptureStack) openBlockAbove(sc Scope) (string, bool) {
	for i := len(s.scopes) - 1; i >= sc.depth; i-- {
		if s.scopes[i].block {
			return s.scopes[i].name, true
		}
	}
	return "", false
}

func (s *CaptureStack) push(c *capture) Scope {
	s.scopes = append(s.scopes, c)
	return Scope{depth: len(s.scopes), stack: s}
}

func (s *CaptureStack) pop() *capture {
	last := len(s.scopes) - 1
	c := s.scopes[last]
	s.scopes[last] = nil
	s.scopes = s.scopes[:last]
	return c
}
