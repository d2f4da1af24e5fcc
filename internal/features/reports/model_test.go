package reports

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidReason(t *testing.T) {
	for _, reason := range Reasons {
		require.True(t, ValidReason(reason), reason)
	}

	require.False(t, ValidReason(""))
	require.False(t, ValidReason("boring"))
	require.False(t, ValidReason("Spam"))
}
