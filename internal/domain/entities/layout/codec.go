package layout

import (
	"encoding/json"
	"fmt"
)

// treeDocument is the stored form of a layout tree: the top-level ordering
// list plus every block (nested children included) in depth-first order.
type treeDocument struct {
	Order  []string `json:"order"`
	Blocks []Block  `json:"blocks"`
}

// EncodeTree serializes a validated tree to its stored JSON form. Blocks are
// written in depth-first document order so encoding is deterministic.
func EncodeTree(t Tree) ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("refusing to encode invalid tree: %w", err)
	}

	doc := treeDocument{Order: t.Order, Blocks: make([]Block, 0, len(t.Blocks))}
	if doc.Order == nil {
		doc.Order = []string{}
	}
	for _, id := range t.FlattenOrder() {
		doc.Blocks = append(doc.Blocks, t.Blocks[id])
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode layout tree: %w", err)
	}
	return payload, nil
}

// DecodeTree parses the stored JSON form back into a tree and re-checks
// every structural invariant before returning it.
func DecodeTree(data []byte) (Tree, error) {
	var doc treeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return Tree{}, fmt.Errorf("failed to parse layout payload: %w", err)
	}

	t := NewTree()
	t.Order = append(t.Order, doc.Order...)
	for _, b := range doc.Blocks {
		if err := checkShape(b); err != nil {
			return Tree{}, err
		}
		if _, exists := t.Blocks[b.ID]; exists {
			return Tree{}, fmt.Errorf("stored payload repeats block %s: %w", b.ID, ErrDuplicateID)
		}
		t.Blocks[b.ID] = b
	}

	if err := t.Validate(); err != nil {
		return Tree{}, fmt.Errorf("stored payload is structurally invalid: %w", err)
	}
	return t, nil
}

// checkShape verifies a decoded block carries exactly the variant property
// set its type requires.
func checkShape(b Block) error {
	if b.ID == "" {
		return fmt.Errorf("block without id: %w", ErrNotFound)
	}
	if !IsValidBlockType(b.Type) {
		return fmt.Errorf("block %s has unknown type %q: %w", b.ID, b.Type, ErrTypeMismatch)
	}

	wantHero := b.Type == BlockHero
	wantText := b.Type == BlockText
	wantImage := b.Type == BlockImage
	wantGrid := b.Type == BlockGrid

	if (b.Hero != nil) != wantHero || (b.Text != nil) != wantText ||
		(b.Image != nil) != wantImage || (b.Grid != nil) != wantGrid {
		return fmt.Errorf("block %s carries properties for the wrong variant: %w", b.ID, ErrTypeMismatch)
	}
	if len(b.Children) > 0 && !b.IsContainer() {
		return fmt.Errorf("block %s (%s) holds children: %w", b.ID, b.Type, ErrNotAContainer)
	}
	return nil
}
