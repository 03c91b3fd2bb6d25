// Package layouts provides the reference Layout implementations: boxes,
// grid, ratio, margin, graphic fitting and a scrolling viewport.
package layouts

// Align positions content inside leftover space along one axis.
type Align uint8

const (
	// Start aligns to the left or top.
	Start Align = iota
	// Center centers the content.
	Center
	// End aligns to the right or bottom.
	End
)
