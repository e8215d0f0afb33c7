package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// Terminal palette. Numbers are ANSI 256 colors.
var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorCmd    = lipgloss.Color("75")
	colorValue  = lipgloss.Color("255")
	colorLabel  = lipgloss.Color("245")
	colorMuted  = lipgloss.Color("240")
)

var (
	styleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	styleDim       = lipgloss.NewStyle().Foreground(colorMuted)
	styleValue     = lipgloss.NewStyle().Foreground(colorValue)
	styleLabel     = lipgloss.NewStyle().Foreground(colorLabel).Width(12)
	styleCommand   = lipgloss.NewStyle().Foreground(colorCmd)
	styleSpinner   = lipgloss.NewStyle().Foreground(colorAccent)
	styleCached    = lipgloss.NewStyle().Foreground(colorOK)
	styleFresh     = lipgloss.NewStyle().Foreground(colorLabel)
)

// Status icons, each with its color.
var (
	iconSuccess = lipgloss.NewStyle().Foreground(colorOK).Render("✓")
	iconError   = lipgloss.NewStyle().Foreground(colorFail).Render("✗")
	iconWarning = lipgloss.NewStyle().Foreground(colorWarn).Render("!")
	iconInfo    = lipgloss.NewStyle().Foreground(colorLabel).Render("›")
)

const arrow = "→"

func status(icon, format string, args ...any) {
	fmt.Println(icon + " " + fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { status(iconSuccess, format, args...) }
func printError(format string, args ...any)   { status(iconError, format, args...) }
func printInfo(format string, args ...any)    { status(iconInfo, format, args...) }

func printWarning(format string, args ...any) {
	fmt.Println(iconWarning + " " + lipgloss.NewStyle().Foreground(colorWarn).Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented, muted line under the previous status.
func printDetail(format string, args ...any) {
	fmt.Println("  " + styleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile reports a written file.
func printFile(path string) {
	fmt.Println("  " + styleDim.Render(arrow) + " " + styleValue.Render(path))
}

// printFileSize reports a written file with its size, e.g. "→ me.png (12 kB)".
func printFileSize(path string, size int) {
	fmt.Println("  " + styleDim.Render(arrow) + " " + styleValue.Render(path) + " " + styleDim.Render("("+humanize.Bytes(uint64(size))+")"))
}

func printKeyValue(key, value string) {
	fmt.Println(styleLabel.Render(key) + " " + styleValue.Render(value))
}

// printStats prints "2 formats · 14 kB · seed 42 · cached" under a render.
func printStats(formats, size int, seed uint64, cached bool) {
	var parts []string
	if formats > 1 {
		parts = append(parts, fmt.Sprintf("%d formats", formats))
	}
	if size > 0 {
		parts = append(parts, humanize.Bytes(uint64(size)))
	}
	parts = append(parts, fmt.Sprintf("seed %d", seed))

	state := styleFresh.Render("fresh")
	if cached {
		state = styleCached.Render("cached")
	}
	sep := styleDim.Render(" · ")
	fmt.Println("  " + styleDim.Render(strings.Join(parts, " · ")) + sep + state)
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(styleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}
