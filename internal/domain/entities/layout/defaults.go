package layout

import "fmt"

// NewDefaultBlock returns a fresh block of the given variant with a newly
// generated id, the variant's default properties, and the default style.
// Defaults are always self-valid: every default field passes ApplyProperty
// for its own key.
func NewDefaultBlock(t BlockType) (Block, error) {
	if !IsValidBlockType(t) {
		return Block{}, fmt.Errorf("cannot create block of type %q: %w", t, ErrTypeMismatch)
	}

	b := Block{
		ID:    NewID(),
		Type:  t,
		Style: DefaultStyle(),
	}

	switch t {
	case BlockHero:
		b.Hero = &HeroProps{TextAlignment: AlignCenter}
	case BlockText:
		b.Text = &TextProps{FontSize: FontMedium}
	case BlockImage:
		b.Image = &ImageProps{ObjectFit: FitCover}
	case BlockGrid:
		b.Grid = &GridProps{Columns: 3, DataSource: SourceCustom, Gap: ScaleMedium}
	case BlockContainer:
		b.Children = []string{}
	case BlockMenuList, BlockSessions, BlockCalendar:
		// No editable content; these bind to live module data at render time.
	}

	return b, nil
}
