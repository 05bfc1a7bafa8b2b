// Package rendering flattens a layout tree into renderer-consumable nodes.
// The renderer proper (canvas or public page) is a consumer of this
// package, not part of it.
package rendering

import (
	"context"
	"fmt"

	"github.com/LagoonLabs/modulecraft-go/internal/domain/entities/content"
	"github.com/LagoonLabs/modulecraft-go/internal/domain/entities/layout"
)

// DataContext supplies the owning module's live data for blocks that bind
// at render time (MenuList, Sessions, Calendar, and data-sourced Grids).
// A nil DataContext yields empty bindings: blocks are empty by default and
// renderer-populated.
type DataContext interface {
	MenuItems(ctx context.Context, moduleID string) ([]content.MenuItem, error)
	SessionListings(ctx context.Context, moduleID string) ([]content.SessionListing, error)
	Availability(ctx context.Context, moduleID string) ([]content.CalendarDay, error)
}

// RenderNode is one block in depth-first document order with its live data
// bindings resolved.
type RenderNode struct {
	ID       string                   `json:"id"`
	Type     layout.BlockType         `json:"type"`
	Depth    int                      `json:"depth"`
	Block    layout.Block             `json:"block"`
	Menu     []content.MenuItem       `json:"menu,omitempty"`
	Sessions []content.SessionListing `json:"sessions,omitempty"`
	Calendar []content.CalendarDay    `json:"calendar,omitempty"`
}

// Plan is the complete render input for one module page.
type Plan struct {
	ModuleID string       `json:"moduleId"`
	Nodes    []RenderNode `json:"nodes"`
}

// BuildPlan flattens the tree depth-first, preserving document order, and
// resolves each data-bound block against the module's live data. Reads are
// performed at most once per data kind.
func BuildPlan(ctx context.Context, moduleID string, t layout.Tree, data DataContext) (Plan, error) {
	if err := t.Validate(); err != nil {
		return Plan{}, fmt.Errorf("refusing to plan invalid tree: %w", err)
	}

	plan := Plan{ModuleID: moduleID, Nodes: make([]RenderNode, 0, t.Len())}

	var menu []content.MenuItem
	var sessions []content.SessionListing
	var calendar []content.CalendarDay
	menuLoaded, sessionsLoaded, calendarLoaded := false, false, false

	loadMenu := func() ([]content.MenuItem, error) {
		if data == nil {
			return nil, nil
		}
		if !menuLoaded {
			items, err := data.MenuItems(ctx, moduleID)
			if err != nil {
				return nil, fmt.Errorf("failed to load menu items: %w", err)
			}
			menu, menuLoaded = items, true
		}
		return menu, nil
	}
	loadSessions := func() ([]content.SessionListing, error) {
		if data == nil {
			return nil, nil
		}
		if !sessionsLoaded {
			listings, err := data.SessionListings(ctx, moduleID)
			if err != nil {
				return nil, fmt.Errorf("failed to load session listings: %w", err)
			}
			sessions, sessionsLoaded = listings, true
		}
		return sessions, nil
	}
	loadCalendar := func() ([]content.CalendarDay, error) {
		if data == nil {
			return nil, nil
		}
		if !calendarLoaded {
			days, err := data.Availability(ctx, moduleID)
			if err != nil {
				return nil, fmt.Errorf("failed to load availability: %w", err)
			}
			calendar, calendarLoaded = days, true
		}
		return calendar, nil
	}

	depths := depthIndex(t)
	for _, id := range t.FlattenOrder() {
		b, _ := t.Get(id)
		node := RenderNode{ID: id, Type: b.Type, Depth: depths[id], Block: b}

		var err error
		switch {
		case b.Type == layout.BlockMenuList:
			node.Menu, err = loadMenu()
		case b.Type == layout.BlockSessions:
			node.Sessions, err = loadSessions()
		case b.Type == layout.BlockCalendar:
			node.Calendar, err = loadCalendar()
		case b.Type == layout.BlockGrid && b.Grid.DataSource == layout.SourceMenu:
			node.Menu, err = loadMenu()
		case b.Type == layout.BlockGrid && b.Grid.DataSource == layout.SourceSessions:
			node.Sessions, err = loadSessions()
		}
		if err != nil {
			return Plan{}, err
		}

		plan.Nodes = append(plan.Nodes, node)
	}

	return plan, nil
}

// depthIndex maps every block id to its nesting depth (top-level is 0).
func depthIndex(t layout.Tree) map[string]int {
	depths := make(map[string]int, t.Len())
	var walk func(id string, depth int)
	walk = func(id string, depth int) {
		depths[id] = depth
		b, _ := t.Get(id)
		for _, child := range b.Children {
			walk(child, depth+1)
		}
	}
	for _, id := range t.Order {
		walk(id, 0)
	}
	return depths
}
