package layout

import "fmt"

// ApplyProperty validates a single property edit against the block's variant
// schema and, on success, returns a copy of the block with the edit applied.
// The receiver is never mutated. Universal style keys (width, height,
// padding, borderRadius) are accepted for every variant; all other keys are
// checked against the variant's own property set. Container children are not
// a property; structure is edited through tree operations only.
func ApplyProperty(b Block, key string, value any) (Block, error) {
	out := b.clone()

	// Universal style properties apply regardless of block type.
	switch key {
	case "width":
		s, err := enumString(key, value, sizePresets)
		if err != nil {
			return b, err
		}
		out.Style.Width = s
		return out, nil
	case "height":
		s, err := enumString(key, value, sizePresets)
		if err != nil {
			return b, err
		}
		out.Style.Height = s
		return out, nil
	case "padding":
		s, err := enumString(key, value, spacingScale)
		if err != nil {
			return b, err
		}
		out.Style.Padding = s
		return out, nil
	case "borderRadius":
		s, err := enumString(key, value, spacingScale)
		if err != nil {
			return b, err
		}
		out.Style.BorderRadius = s
		return out, nil
	}

	switch b.Type {
	case BlockHero:
		switch key {
		case "title":
			return setString(b, out, key, value, &out.Hero.Title)
		case "subtitle":
			return setString(b, out, key, value, &out.Hero.Subtitle)
		case "backgroundImage":
			return setString(b, out, key, value, &out.Hero.BackgroundImage)
		case "textAlignment":
			s, err := enumString(key, value, []string{AlignLeft, AlignCenter, AlignRight})
			if err != nil {
				return b, err
			}
			out.Hero.TextAlignment = s
			return out, nil
		}
	case BlockText:
		switch key {
		case "content":
			return setString(b, out, key, value, &out.Text.Content)
		case "fontSize":
			s, err := enumString(key, value, []string{FontSmall, FontMedium, FontLarge, FontXLarge})
			if err != nil {
				return b, err
			}
			out.Text.FontSize = s
			return out, nil
		}
	case BlockImage:
		switch key {
		case "src":
			return setString(b, out, key, value, &out.Image.Src)
		case "alt":
			return setString(b, out, key, value, &out.Image.Alt)
		case "objectFit":
			s, err := enumString(key, value, []string{FitCover, FitContain, FitFill})
			if err != nil {
				return b, err
			}
			out.Image.ObjectFit = s
			return out, nil
		}
	case BlockGrid:
		switch key {
		case "columns":
			n, err := intValue(key, value)
			if err != nil {
				return b, err
			}
			if n < 1 || n > MaxGridColumns {
				return b, fmt.Errorf("columns must be between 1 and %d, got %d: %w", MaxGridColumns, n, ErrInvalidEnum)
			}
			out.Grid.Columns = n
			return out, nil
		case "dataSource":
			s, err := enumString(key, value, []string{SourceMenu, SourceSessions, SourceCustom})
			if err != nil {
				return b, err
			}
			out.Grid.DataSource = s
			return out, nil
		case "gap":
			s, err := enumString(key, value, spacingScale)
			if err != nil {
				return b, err
			}
			out.Grid.Gap = s
			return out, nil
		}
	}

	return b, fmt.Errorf("%s block has no property %q: %w", b.Type, key, ErrUnknownProperty)
}

func setString(orig, out Block, key string, value any, dst *string) (Block, error) {
	s, ok := value.(string)
	if !ok {
		return orig, fmt.Errorf("property %q wants a string, got %T: %w", key, value, ErrTypeMismatch)
	}
	*dst = s
	return out, nil
}

func enumString(key string, value any, allowed []string) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("property %q wants a string, got %T: %w", key, value, ErrTypeMismatch)
	}
	for _, a := range allowed {
		if s == a {
			return s, nil
		}
	}
	return "", fmt.Errorf("property %q rejects %q: %w", key, s, ErrInvalidEnum)
}

// intValue accepts native ints and the float64 form JSON decoding produces.
func intValue(key string, value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("property %q wants an integer, got %v: %w", key, v, ErrTypeMismatch)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("property %q wants an integer, got %T: %w", key, value, ErrTypeMismatch)
	}
}
