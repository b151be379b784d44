package tui

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// layout is the screen geometry shared by View and mouse handling.
type layout struct {
	contentW, contentH int
	sidebarW           int
	mapX, mapY         int
	mapW, mapH         int
}

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

func (m Model) layout() layout {
	var lo layout
	if m.showSidebar {
		lo.sidebarW = sidebarWidth
	}
	lo.contentH = max(4, m.height-headerHeight-footerHeight)
	lo.contentW = max(10, m.width)
	lo.mapW = max(10, lo.contentW-lo.sidebarW-1)
	lo.mapH = lo.contentH
	lo.mapX = lo.sidebarW
	if m.showSidebar {
		lo.mapX++
	}
	lo.mapY = headerHeight
	return lo
}
