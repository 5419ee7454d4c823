// Package state holds piecebook's navigation and filter state.
//
// Nav is a plain value owned by the UI's root model. Each user action maps to
// one transition method that returns the next Nav, so the whole screen state
// can be compared and tested without a terminal:
//
//	nav := state.Nav{}
//	nav = nav.ToggleAlive()         // alive composers only
//	nav, err := nav.ApplyYearFilter("1900", "1950")
//	q := nav.Query()                // QueryYears 1900..1950
//
// Screen() derives which view is visible: an open form first, then a selected
// piece, then the list. Query() turns the filters into exactly one list
// request with the precedence year range, life status, all.
package state
