/*
Package tui implements the terminal user interface for browsing Firefox
sessions.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: Maintains all application state
  - Update: Processes messages and returns commands
  - View: Renders the current state to the terminal

# Key Components

  - model.go: Core state, the Update loop and message types
  - keys.go: Keyboard input handling and per-mode routing
  - render.go: View rendering for the main tree/preview layout
  - actions.go: Side effects (session loads, exports, clipboard)
  - tree.go: Flattening of windows and tabs into navigable rows

# Modes and Phases

Input routing is mode-based (ModeBrowse, ModeFilter, ModeWizard, ...):
each mode has a handler in keys.go and, for modals, a render function in
its own file. Independently of the mode, the loaded document moves
through phases (PhaseEmpty, PhaseLoading, PhaseReady). A failed load is
not a phase: the previous document stays on screen and the failure is
reported on the status bar. Exports are not a phase either, they run on
a snapshot of the visible document and the interface stays live while
one is written.

# Threading Model

The TUI runs in a single goroutine (Bubble Tea's event loop) and spawns
goroutines for session loading and export. Background work reports back
through channels and tea.Cmd functions; every load carries a generation
number so results of a superseded load are discarded instead of
clobbering newer state.

# Example Usage

	if err := tui.Run("/path/to/sessionstore.jsonlz4"); err != nil {
		log.Fatal(err)
	}
*/
package tui
