package main

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", truncate("short", 10))
	require.Equal(t, "exact", truncate("exact", 5))

	long := strings.Repeat("a", 250)
	got := truncate(long, maxDetailWidth)
	require.Len(t, got, maxDetailWidth)
	require.True(t, strings.HasSuffix(got, "..."))

	// Multi-byte content is cut on rune boundaries, never mid-rune.
	accented := strings.Repeat("é", 250)
	got = truncate(accented, maxDetailWidth)
	require.True(t, utf8.ValidString(got))
	require.True(t, strings.HasSuffix(got, "..."))
}

func TestPadRight(t *testing.T) {
	require.Equal(t, "abc  ", padRight("abc", 5))
	require.Equal(t, "abcdef", padRight("abcdef", 5))
	require.Equal(t, "", padRight("", 0))
}

func TestFormatDuration(t *testing.T) {
	require.Equal(t, "250ms", formatDuration(250*time.Millisecond))
	require.Equal(t, "2.5s", formatDuration(2500*time.Millisecond))
	require.Equal(t, "1m30s", formatDuration(90*time.Second))
}
