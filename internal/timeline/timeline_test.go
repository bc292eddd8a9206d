package timeline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClampPageSize(t *testing.T) {
	require.Equal(t, MinPageSize, ClampPageSize(0))
	require.Equal(t, MinPageSize, ClampPageSize(-3))
	require.Equal(t, 10, ClampPageSize(10))
	require.Equal(t, MaxPageSize, ClampPageSize(1000))
}
