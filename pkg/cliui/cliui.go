// Package cliui provides reusable terminal UI helpers for crucible CLI
// commands.
package cliui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	SuccessMark = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Render("✓")
	KeyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true)
	ValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	DimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)
