package projection

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pinchat/domain"
)

func TestTimeline_Append_KeepsArrivalOrder(t *testing.T) {
	tl := NewTimeline("Bob")

	tl.Append(domain.NewMessage("Alice", "Hello Bob"))
	tl.Append(domain.NewMessage("Clara", "Hi Bob"))

	require.Len(t, tl.Messages, 2)
	require.Equal(t, "Alice", tl.Messages[0].Author)
	require.Equal(t, "Clara", tl.Messages[1].Author)
	require.Equal(t, 2, tl.Len())
}

func TestTimeline_Own_HighlightsOwner(t *testing.T) {
	tl := NewTimeline("Bob")
	mine := domain.NewMessage("Bob", "hola")
	theirs := domain.NewMessage("Alice", "hola")

	require.True(t, tl.Own(mine))
	require.False(t, tl.Own(theirs))
}
