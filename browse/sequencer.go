package browse

import (
	"fmt"

	"github.com/s0up4200/marquee/tmdb"
)

// Class identifies a family of requests that supersede each other
type Class int

const (
	// ClassSearch covers search requests
	ClassSearch Class = iota
	// ClassBulk covers the all-categories load
	ClassBulk

	classRefreshBase
)

const numClasses = int(classRefreshBase) + tmdb.NumCategories

// RefreshClass returns the class for single refreshes of category. Each
// category sequences independently so switching categories quickly never
// discards a valid response for another list.
func RefreshClass(category tmdb.Category) Class {
	return classRefreshBase + Class(category)
}

// String returns the string representation of a Class
func (c Class) String() string {
	switch {
	case c == ClassSearch:
		return "search"
	case c == ClassBulk:
		return "bulk"
	case c >= classRefreshBase && int(c) < numClasses:
		return "refresh:" + tmdb.Category(c-classRefreshBase).String()
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// Ticket tags an outbound request. The zero Ticket is never current.
type Ticket struct {
	Class Class
	Seq   uint64
}

// Sequencer hands out strictly increasing tickets per class. It is a value
// type so State stays copyable; the owner serializes access.
type Sequencer struct {
	issued [numClasses]uint64
}

// Issue returns a new ticket for class, superseding all earlier ones
func (s *Sequencer) Issue(class Class) Ticket {
	if !validClass(class) {
		return Ticket{}
	}
	s.issued[class]++
	return Ticket{Class: class, Seq: s.issued[class]}
}

// Invalidate retires every outstanding ticket for class without issuing one
func (s *Sequencer) Invalidate(class Class) {
	if validClass(class) {
		s.issued[class]++
	}
}

// Current reports whether t is the highest ticket issued for its class
func (s Sequencer) Current(t Ticket) bool {
	if !validClass(t.Class) || t.Seq == 0 {
		return false
	}
	return s.issued[t.Class] == t.Seq
}

func validClass(c Class) bool {
	return c >= 0 && int(c) < numClasses
}
