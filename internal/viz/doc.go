// Package viz renders statmech results in the terminal.
//
//   - [RenderTable]: bordered lipgloss table of a storage.Table
//   - [Plot]: asciigraph line plot of one column against another
//   - [Explorer]: bubbletea model for interactively varying a rotor
package viz
