package ui

import (
	"errors"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
)

type point struct{ X, Y int }

func TestDisplay(t *testing.T) {
	require.Equal(t, "plain", Display("plain"))
	require.Equal(t, "boom", Display(errors.New("boom")))
	require.Equal(t, `{"X":1,"Y":2}`, Display(point{1, 2}))
}

func TestTable(t *testing.T) {
	out := Table([][]string{
		{"10.0.0.1", "a", "b"},
		{},
		{"::1", "localhost"},
	}, lipgloss.NewStyle())
	require.Equal(t, "10.0.0.1  a  b\n::1       localhost\n", out)
}
