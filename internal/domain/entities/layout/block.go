// Package layout defines the application's core layout domain entities: the
// typed block variants that compose a module's public page and the tree that
// orders them.
package layout

import "github.com/oklog/ulid/v2"

// BlockType discriminates the block variants a layout may contain.
type BlockType string

const (
	BlockHero      BlockType = "Hero"
	BlockText      BlockType = "TextBlock"
	BlockImage     BlockType = "Image"
	BlockGrid      BlockType = "Grid"
	BlockMenuList  BlockType = "MenuList"
	BlockSessions  BlockType = "Sessions"
	BlockContainer BlockType = "Container"
	BlockCalendar  BlockType = "Calendar"
)

// BlockTypes lists every valid variant in a stable order.
var BlockTypes = []BlockType{
	BlockHero, BlockText, BlockImage, BlockGrid,
	BlockMenuList, BlockSessions, BlockContainer, BlockCalendar,
}

// IsValidBlockType reports whether t names a known block variant.
func IsValidBlockType(t BlockType) bool {
	for _, bt := range BlockTypes {
		if bt == t {
			return true
		}
	}
	return false
}

// Size presets for the universal width and height style properties.
const (
	SizeAuto         = "auto"
	SizeQuarter      = "quarter"
	SizeHalf         = "half"
	SizeThreeQuarter = "threequarter"
	SizeFull         = "full"
)

// Spacing scale shared by padding and border radius.
const (
	ScaleNone   = "0"
	ScaleSmall  = "sm"
	ScaleMedium = "md"
	ScaleLarge  = "lg"
	ScaleXLarge = "xl"
)

var (
	sizePresets  = []string{SizeAuto, SizeQuarter, SizeHalf, SizeThreeQuarter, SizeFull}
	spacingScale = []string{ScaleNone, ScaleSmall, ScaleMedium, ScaleLarge, ScaleXLarge}
)

// Style holds the universal presentation properties every block carries
// regardless of its variant.
type Style struct {
	Width        string `json:"width"`
	Height       string `json:"height"`
	Padding      string `json:"padding"`
	BorderRadius string `json:"borderRadius"`
}

// DefaultStyle returns the style applied to freshly created blocks.
func DefaultStyle() Style {
	return Style{
		Width:        SizeAuto,
		Height:       SizeAuto,
		Padding:      ScaleNone,
		BorderRadius: ScaleNone,
	}
}

// Text alignment values for Hero blocks.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// Font size scale for TextBlock content.
const (
	FontSmall  = "sm"
	FontMedium = "md"
	FontLarge  = "lg"
	FontXLarge = "xl"
)

// Object fit values for Image blocks.
const (
	FitCover   = "cover"
	FitContain = "contain"
	FitFill    = "fill"
)

// Grid data sources.
const (
	SourceMenu     = "menu"
	SourceSessions = "sessions"
	SourceCustom   = "custom"
)

// MaxGridColumns bounds the columns property of Grid blocks.
const MaxGridColumns = 6

// HeroProps carries the variant properties of a Hero block.
type HeroProps struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	BackgroundImage string `json:"backgroundImage"`
	TextAlignment   string `json:"textAlignment"`
}

// TextProps carries the variant properties of a TextBlock.
type TextProps struct {
	Content  string `json:"content"`
	FontSize string `json:"fontSize"`
}

// ImageProps carries the variant properties of an Image block.
type ImageProps struct {
	Src       string `json:"src"`
	Alt       string `json:"alt"`
	ObjectFit string `json:"objectFit"`
}

// GridProps carries the variant properties of a Grid block.
type GridProps struct {
	Columns    int    `json:"columns"`
	DataSource string `json:"dataSource"`
	Gap        string `json:"gap"`
}

// Block is the atomic unit of page composition. MenuList, Sessions and
// Calendar blocks carry no variant properties; they bind to the owning
// module's live data at render time. Container blocks hold an ordered list
// of child block ids in Children.
type Block struct {
	ID       string      `json:"id"`
	Type     BlockType   `json:"type"`
	Hero     *HeroProps  `json:"hero,omitempty"`
	Text     *TextProps  `json:"text,omitempty"`
	Image    *ImageProps `json:"image,omitempty"`
	Grid     *GridProps  `json:"grid,omitempty"`
	Children []string    `json:"children,omitempty"`
	Style    Style       `json:"style"`
}

// IsContainer reports whether the block may hold children.
func (b Block) IsContainer() bool {
	return b.Type == BlockContainer
}

// clone returns a deep copy of the block. Variant property structs and the
// children slice are copied so the original is never shared.
func (b Block) clone() Block {
	c := b
	if b.Hero != nil {
		hero := *b.Hero
		c.Hero = &hero
	}
	if b.Text != nil {
		text := *b.Text
		c.Text = &text
	}
	if b.Image != nil {
		img := *b.Image
		c.Image = &img
	}
	if b.Grid != nil {
		grid := *b.Grid
		c.Grid = &grid
	}
	if b.Children != nil {
		c.Children = append([]string(nil), b.Children...)
	}
	return c
}

// NewID generates a fresh block identifier. Ids are ULIDs: unique, stable,
// and never reused after deletion.
func NewID() string {
	return ulid.Make().String()
}
