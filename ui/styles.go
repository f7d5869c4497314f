package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/whales-names/whales/config"
)

var (
	FaintColor   = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#8b8b8b"}
	FaintStyle   = lipgloss.NewStyle().Foreground(FaintColor)
	OkColor      = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	OkStyle      = lipgloss.NewStyle().Foreground(OkColor)
	ErrColor     = lipgloss.AdaptiveColor{Light: "#770000", Dark: "#AA0000"}
	ErrStyle     = lipgloss.NewStyle().Foreground(ErrColor)
	AddressColor = lipgloss.AdaptiveColor{Light: "#A67C53", Dark: "#A67C53"}
	AddressStyle = lipgloss.NewStyle().Foreground(AddressColor)
)

var errLinePfx = lipgloss.NewStyle().Background(ErrColor).Bold(true).Render(" ERR ") + " "
var okLinePfx = lipgloss.NewStyle().Background(OkColor).Bold(true).Render(" OK ") + " "

func init() {
	if *config.Dumb {
		lipgloss.SetColorProfile(termenv.Ascii)
		errLinePfx = "ERR "
		okLinePfx = "OK "
	}
}

func RenderErrorLine(err any) string {
	return errLinePfx + Display(err)
}
func ExitWithError(err any) {
	fmt.Fprintln(os.Stderr, RenderErrorLine(err))
	os.Exit(1)
}

func RenderOkLine(res any) string {
	return okLinePfx + Display(res)
}
