package http

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForcedNav_TakeIsOneShot(t *testing.T) {
	t.Parallel()

	nav := NewForcedNav()

	_, ok := nav.Take()
	require.False(t, ok)

	nav.Navigate("/login?session=expired")
	require.True(t, nav.Pending())

	target, ok := nav.Take()
	require.True(t, ok)
	require.Equal(t, "/login?session=expired", target)

	_, ok = nav.Take()
	require.False(t, ok)
	require.False(t, nav.Pending())
}

// Две подряд принудительные навигации схлопываются в последнюю.
func TestForcedNav_LastWriteWins(t *testing.T) {
	t.Parallel()

	nav := NewForcedNav()
	nav.Navigate("/forbidden")
	nav.Navigate("/login?session=expired")

	target, ok := nav.Take()
	require.True(t, ok)
	require.Equal(t, "/login?session=expired", target)
}
