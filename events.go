package main

// Event name constants for Wails runtime events
const (
	// EventWindowVisibility carries "shown" or "hidden" after each transition.
	EventWindowVisibility = "window:visibility"
)
