package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nalyk/sequentialthinking/internal/model"
)

func plainThought(number int, content string) model.Thought {
	return model.Thought{
		Number:            number,
		Content:           content,
		TotalThoughts:     number,
		NextThoughtNeeded: true,
	}
}

func TestAppendMainLine(t *testing.T) {
	s := NewThoughtStore()
	s.Append(plainThought(1, "first"))
	s.Append(plainThought(2, "second"))

	require.Equal(t, 2, s.Len())
	got, ok := s.Get(2)
	require.True(t, ok)
	assert.Equal(t, "second", got.Content)
}

func TestBranchSeeding(t *testing.T) {
	s := NewThoughtStore()
	for i := 1; i <= 5; i++ {
		s.Append(plainThought(i, "main"))
	}

	branch := plainThought(6, "fork")
	branch.BranchID = "alt"
	branch.BranchFromThought = 3
	s.Append(branch)

	line := s.AllInLine("alt")
	require.Len(t, line, 4)
	for i := 0; i < 3; i++ {
		assert.Equal(t, s.AllInLine("")[i], line[i], "seed entry %d should equal main line", i)
	}
	assert.Equal(t, "fork", line[3].Content)
	assert.Equal(t, []string{"alt"}, s.BranchNames())
}

func TestBranchSeededOnlyOnce(t *testing.T) {
	s := NewThoughtStore()
	s.Append(plainThought(1, "main"))

	first := plainThought(2, "a")
	first.BranchID = "b1"
	first.BranchFromThought = 1
	s.Append(first)

	second := plainThought(3, "b")
	second.BranchID = "b1"
	s.Append(second)

	require.Len(t, s.AllInLine("b1"), 3) // 1 seeded + 2 appended
}

func TestReviseInPlace(t *testing.T) {
	s := NewThoughtStore()
	s.Append(plainThought(1, "original"))
	s.Append(plainThought(2, "keep"))

	rev := plainThought(1, "revised")
	rev.IsRevision = true
	rev.RevisesThought = 1
	require.True(t, s.ReviseInPlace(rev))

	require.Equal(t, 2, s.Len())
	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, "revised", got.Content)
	assert.True(t, got.IsRevision)
}

func TestReviseInPlaceMissingTarget(t *testing.T) {
	s := NewThoughtStore()
	s.Append(plainThought(1, "only"))

	rev := plainThought(5, "ghost")
	rev.IsRevision = true
	rev.RevisesThought = 5
	require.False(t, s.ReviseInPlace(rev))
	assert.Equal(t, 1, s.Len())
}

func TestReviseInPlaceOnBranch(t *testing.T) {
	s := NewThoughtStore()
	s.Append(plainThought(1, "main"))

	bt := plainThought(2, "branch original")
	bt.BranchID = "alt"
	bt.BranchFromThought = 1
	s.Append(bt)

	rev := plainThought(2, "branch revised")
	rev.IsRevision = true
	rev.RevisesThought = 2
	rev.BranchID = "alt"
	require.True(t, s.ReviseInPlace(rev))

	line := s.AllInLine("alt")
	assert.Equal(t, "branch revised", line[len(line)-1].Content)
	// Main line untouched.
	got, _ := s.Get(1)
	assert.Equal(t, "main", got.Content)
}

func TestReviseInPlaceOpensBranch(t *testing.T) {
	s := NewThoughtStore()
	s.Append(plainThought(1, "original"))
	s.Append(plainThought(2, "second"))

	rev := plainThought(1, "revised on fork")
	rev.IsRevision = true
	rev.RevisesThought = 1
	rev.BranchID = "alt"
	rev.BranchFromThought = 2
	require.True(t, s.ReviseInPlace(rev))

	line := s.AllInLine("alt")
	require.Len(t, line, 2)
	assert.Equal(t, "revised on fork", line[0].Content)
	// Main line untouched.
	got, _ := s.Get(1)
	assert.Equal(t, "original", got.Content)
}

func TestReviseInPlaceOpensBranchMissingTarget(t *testing.T) {
	s := NewThoughtStore()
	s.Append(plainThought(1, "only"))

	rev := plainThought(5, "ghost")
	rev.IsRevision = true
	rev.RevisesThought = 5
	rev.BranchID = "alt"
	rev.BranchFromThought = 1
	require.False(t, s.ReviseInPlace(rev))
	assert.False(t, s.HasBranch("alt"))
}

func TestSeedLength(t *testing.T) {
	s := NewThoughtStore()
	for i := 1; i <= 5; i++ {
		s.Append(plainThought(i, "main"))
	}
	assert.Equal(t, 3, s.SeedLength(3))
	assert.Equal(t, 5, s.SeedLength(99))
	assert.Equal(t, 0, s.SeedLength(0))
}
