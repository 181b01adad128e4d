package browse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/s0up4200/marquee/tmdb"
)

func TestSequencer_IssueIsStrictlyIncreasing(t *testing.T) {
	var s Sequencer

	t1 := s.Issue(ClassSearch)
	t2 := s.Issue(ClassSearch)
	t3 := s.Issue(ClassSearch)

	assert.Less(t, t1.Seq, t2.Seq)
	assert.Less(t, t2.Seq, t3.Seq)
	assert.False(t, s.Current(t1))
	assert.False(t, s.Current(t2))
	assert.True(t, s.Current(t3))
	assert.Equal(t, t3.Seq, s.issued[ClassSearch])
}

func TestSequencer_ClassesAreIndependent(t *testing.T) {
	var s Sequencer

	search := s.Issue(ClassSearch)
	bulk := s.Issue(ClassBulk)
	trending := s.Issue(RefreshClass(tmdb.Trending))
	upcoming := s.Issue(RefreshClass(tmdb.Upcoming))

	assert.True(t, s.Current(search))
	assert.True(t, s.Current(bulk))
	assert.True(t, s.Current(trending))
	assert.True(t, s.Current(upcoming))

	s.Issue(RefreshClass(tmdb.Trending))
	assert.False(t, s.Current(trending))
	assert.True(t, s.Current(upcoming), "refreshing one category must not retire another")
}

func TestSequencer_Invalidate(t *testing.T) {
	var s Sequencer

	ticket := s.Issue(ClassSearch)
	s.Invalidate(ClassSearch)
	assert.False(t, s.Current(ticket))

	next := s.Issue(ClassSearch)
	assert.True(t, s.Current(next))
	assert.Greater(t, next.Seq, ticket.Seq)
}

func TestSequencer_ZeroAndInvalidTickets(t *testing.T) {
	var s Sequencer

	assert.False(t, s.Current(Ticket{}))
	assert.Equal(t, Ticket{}, s.Issue(Class(-1)))
	assert.Equal(t, Ticket{}, s.Issue(Class(numClasses)))
	assert.False(t, s.Current(Ticket{Class: Class(numClasses), Seq: 1}))
	s.Invalidate(Class(99))
	assert.False(t, s.Current(Ticket{Class: Class(99), Seq: 1}))
}

func TestSequencer_ValueCopyIsIndependent(t *testing.T) {
	var s Sequencer
	ticket := s.Issue(ClassBulk)

	copied := s
	copied.Issue(ClassBulk)

	assert.True(t, s.Current(ticket))
	assert.False(t, copied.Current(ticket))
}

func TestClass_String(t *testing.T) {
	assert.Equal(t, "search", ClassSearch.String())
	assert.Equal(t, "bulk", ClassBulk.String())
	assert.Equal(t, "refresh:topRated", RefreshClass(tmdb.TopRated).String())
	assert.Equal(t, "class(99)", Class(99).String())
}
