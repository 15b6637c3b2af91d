// Package view provides view components for the TUI application.
//
// Each view draws part of a render.Layout with the styles package. Views
// hold no search state; everything they draw comes from their arguments.
package view
