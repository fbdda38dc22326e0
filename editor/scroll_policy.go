package editor

// ScrollPolicy controls whether the viewport may move without the cursor.
type ScrollPolicy int

const (
	// ScrollAllowManual lets the mouse wheel scroll the viewport even when the
	// cursor does not move.
	ScrollAllowManual ScrollPolicy = iota
	// ScrollFollowCursorOnly keeps viewport movement cursor-driven. Wheel
	// events are ignored.
	ScrollFollowCursorOnly
)
