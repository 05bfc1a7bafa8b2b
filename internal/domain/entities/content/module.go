// Package content defines the application's core content-related domain entities.
package content

import "time"

// ModuleNode is a resort feature area (restaurant, spa, activities…) whose
// public page is composed from a layout tree. The module row is owned by
// the wider platform; this system references it by id and slug and owns at
// most one layout per module.
type ModuleNode struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	NodeType string     `json:"nodeType"`
	Slug     string     `json:"slug"`
	Summary  *string    `json:"summary,omitempty"`
	Created  time.Time  `json:"created"`
	Changed  *time.Time `json:"changed,omitempty"`
}

// MenuItem is one dish or offering surfaced by MenuList blocks and
// menu-sourced Grid blocks at render time.
type MenuItem struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Featured    bool    `json:"featured"`
}

// SessionListing is one bookable activity slot surfaced by Sessions blocks.
type SessionListing struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	StartsAt time.Time `json:"startsAt"`
	Capacity int       `json:"capacity"`
	Booked   int       `json:"booked"`
}

// CalendarDay is one day of booking availability surfaced by Calendar
// blocks.
type CalendarDay struct {
	Date      string `json:"date"`
	Available bool   `json:"available"`
}
