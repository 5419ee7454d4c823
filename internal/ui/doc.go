// Package ui implements the piecebook terminal interface with Bubble Tea.
//
// A single Model owns navigation (state.Nav), the active locale and theme,
// and the per-screen state for the list, detail and form screens. Every
// catalog call runs as a tea.Cmd and comes back as a message, so Update never
// blocks. Navigation changes go through Model.transition, which decides which
// fetch the new screen needs.
//
// Screens:
//
//   - List: filtered pieces with open, edit, delete and filter keys
//   - Detail: one piece, read-only, scrollable
//   - Form: create or edit, validated on submit
//
// Dialogs (confirm, alert, year filter) and the help overlay take all input
// while shown.
package ui
