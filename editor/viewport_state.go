package editor

// ViewportState is a host-facing snapshot of the editor's scroll position.
type ViewportState struct {
	// TopRow is the document row rendered at screen row 0.
	TopRow int
	// VisibleRows is the number of content rows available for rendering.
	VisibleRows int
	// LeftCellOffset is the horizontal scroll in cells.
	LeftCellOffset int
}

func (m Model) ViewportState() ViewportState {
	return ViewportState{
		TopRow:         max(m.viewport.YOffset, 0),
		VisibleRows:    m.visibleRowCount(),
		LeftCellOffset: max(m.xOffset, 0),
	}
}
