package reactions

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidKind(t *testing.T) {
	for _, kind := range Kinds {
		require.True(t, ValidKind(kind), kind)
	}

	require.False(t, ValidKind(""))
	require.False(t, ValidKind("dislike"))
	require.False(t, ValidKind("Heart"))
}

func TestBreakdownTotal(t *testing.T) {
	b := NewBreakdown()
	require.EqualValues(t, 0, b.Total())

	// Every kind starts at zero so clients always see the full shape
	require.Len(t, b, len(Kinds))

	b["heart"] = 3
	b["like"] = 2
	require.EqualValues(t, 5, b.Total())
}
