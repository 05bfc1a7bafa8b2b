package layout

import "fmt"

// Tree is the full id-addressed collection of blocks composing one module
// page: an ordered list of top-level block ids plus the arena mapping every
// id (including nested container children) to its block. Order is rendering
// order.
//
// All mutating operations return a new Tree value and leave the receiver
// untouched, so prior values stay valid as undo snapshots. Every operation
// re-checks the structural invariants: no dangling references, no id
// referenced by more than one ordering list, no container that is its own
// ancestor.
type Tree struct {
	Order  []string         `json:"order"`
	Blocks map[string]Block `json:"blocks"`
}

// AtEnd is the position value that appends to an ordering list.
const AtEnd = -1

// NewTree returns an empty layout tree.
func NewTree() Tree {
	return Tree{Order: []string{}, Blocks: map[string]Block{}}
}

// Get returns the block with the given id, if present.
func (t Tree) Get(id string) (Block, bool) {
	b, ok := t.Blocks[id]
	return b, ok
}

// Len returns the number of blocks in the arena, nested children included.
func (t Tree) Len() int {
	return len(t.Blocks)
}

// copy duplicates the ordering list and arena. Block values are shared;
// any block an operation modifies must be cloned before the write.
func (t Tree) copy() Tree {
	c := Tree{
		Order:  append([]string{}, t.Order...),
		Blocks: make(map[string]Block, len(t.Blocks)),
	}
	for id, b := range t.Blocks {
		c.Blocks[id] = b
	}
	return c
}

// Insert adds a top-level block at position. Positions outside the valid
// range are clamped; pass a negative position to append. The block's id
// must not already exist in the tree, and a fresh container must arrive
// with no children of its own.
func (t Tree) Insert(b Block, position int) (Tree, error) {
	if _, exists := t.Blocks[b.ID]; exists {
		return t, fmt.Errorf("insert %s: %w", b.ID, ErrDuplicateID)
	}

	out := t.copy()
	out.Blocks[b.ID] = b.clone()
	out.Order = insertAt(out.Order, b.ID, position)

	if err := out.validateIntegrity(); err != nil {
		return t, err
	}
	return out, nil
}

// InsertChild adds a block into a container's children at position.
func (t Tree) InsertChild(parentID string, b Block, position int) (Tree, error) {
	parent, ok := t.Blocks[parentID]
	if !ok {
		return t, fmt.Errorf("insert into %s: %w", parentID, ErrNotFound)
	}
	if !parent.IsContainer() {
		return t, fmt.Errorf("insert into %s (%s): %w", parentID, parent.Type, ErrNotAContainer)
	}
	if _, exists := t.Blocks[b.ID]; exists {
		return t, fmt.Errorf("insert %s: %w", b.ID, ErrDuplicateID)
	}

	out := t.copy()
	out.Blocks[b.ID] = b.clone()
	parent = parent.clone()
	parent.Children = insertAt(parent.Children, b.ID, position)
	out.Blocks[parentID] = parent

	if err := out.validateIntegrity(); err != nil {
		return t, err
	}
	return out, nil
}

// Remove deletes the block and, for containers, every descendant. The id is
// removed from whichever ordering list referenced it.
func (t Tree) Remove(id string) (Tree, error) {
	if _, ok := t.Blocks[id]; !ok {
		return t, fmt.Errorf("remove %s: %w", id, ErrNotFound)
	}

	out := t.copy()
	for _, victim := range out.subtreeIDs(id) {
		delete(out.Blocks, victim)
	}

	if idx := indexOf(out.Order, id); idx >= 0 {
		out.Order = removeAt(out.Order, idx)
	} else if parentID := out.parentOf(id); parentID != "" {
		parent := out.Blocks[parentID].clone()
		parent.Children = removeAt(parent.Children, indexOf(parent.Children, id))
		out.Blocks[parentID] = parent
	}

	if err := out.validateIntegrity(); err != nil {
		return t, err
	}
	return out, nil
}

// Duplicate deep-clones the block (descendants included) with freshly
// generated ids for every cloned node, and places the clone immediately
// after the original in the same ordering list. It returns the new tree and
// the clone's root id.
func (t Tree) Duplicate(id string) (Tree, string, error) {
	if _, ok := t.Blocks[id]; !ok {
		return t, "", fmt.Errorf("duplicate %s: %w", id, ErrNotFound)
	}

	out := t.copy()
	cloneID := out.cloneSubtree(id)

	if idx := indexOf(out.Order, id); idx >= 0 {
		out.Order = insertAt(out.Order, cloneID, idx+1)
	} else if parentID := out.parentOf(id); parentID != "" {
		parent := out.Blocks[parentID].clone()
		parent.Children = insertAt(parent.Children, cloneID, indexOf(parent.Children, id)+1)
		out.Blocks[parentID] = parent
	}

	if err := out.validateIntegrity(); err != nil {
		return t, "", err
	}
	return out, cloneID, nil
}

// Reorder moves a block within its current ordering list to newIndex,
// clamped to the valid range. An empty parentID addresses the top-level
// list; otherwise the named container's children list.
func (t Tree) Reorder(parentID, id string, newIndex int) (Tree, error) {
	out := t.copy()

	var list []string
	if parentID == "" {
		list = out.Order
	} else {
		parent, ok := out.Blocks[parentID]
		if !ok {
			return t, fmt.Errorf("reorder in %s: %w", parentID, ErrNotFound)
		}
		if !parent.IsContainer() {
			return t, fmt.Errorf("reorder in %s (%s): %w", parentID, parent.Type, ErrNotAContainer)
		}
		list = parent.Children
	}

	idx := indexOf(list, id)
	if idx < 0 {
		return t, fmt.Errorf("reorder %s: not in target list: %w", id, ErrNotFound)
	}

	list = removeAt(append([]string{}, list...), idx)
	list = insertAt(list, id, newIndex)

	if parentID == "" {
		out.Order = list
	} else {
		parent := out.Blocks[parentID].clone()
		parent.Children = list
		out.Blocks[parentID] = parent
	}

	if err := out.validateIntegrity(); err != nil {
		return t, err
	}
	return out, nil
}

// Replace swaps a block value for another carrying the same id and type.
// It is the structural half of a property edit; structure (children) must
// come from the existing block.
func (t Tree) Replace(b Block) (Tree, error) {
	old, ok := t.Blocks[b.ID]
	if !ok {
		return t, fmt.Errorf("replace %s: %w", b.ID, ErrNotFound)
	}
	if old.Type != b.Type {
		return t, fmt.Errorf("replace %s: cannot change type %s to %s: %w", b.ID, old.Type, b.Type, ErrTypeMismatch)
	}

	out := t.copy()
	next := b.clone()
	if old.Children == nil {
		next.Children = nil
	} else {
		next.Children = append([]string{}, old.Children...)
	}
	out.Blocks[b.ID] = next

	if err := out.validateIntegrity(); err != nil {
		return t, err
	}
	return out, nil
}

// FlattenOrder returns every block id in depth-first rendering order.
func (t Tree) FlattenOrder() []string {
	var ids []string
	var walk func(id string)
	walk = func(id string) {
		ids = append(ids, id)
		for _, child := range t.Blocks[id].Children {
			walk(child)
		}
	}
	for _, id := range t.Order {
		walk(id)
	}
	return ids
}

// Validate runs the full structural invariant check: referential integrity,
// single-parent ownership, container-only children, and acyclicity.
func (t Tree) Validate() error {
	return t.validateIntegrity()
}

func (t Tree) validateIntegrity() error {
	seen := make(map[string]bool, len(t.Blocks))

	var visit func(id string, ancestors map[string]bool) error
	visit = func(id string, ancestors map[string]bool) error {
		if ancestors[id] {
			return fmt.Errorf("block %s: %w", id, ErrCycleDetected)
		}
		b, ok := t.Blocks[id]
		if !ok {
			return fmt.Errorf("dangling reference to %s: %w", id, ErrNotFound)
		}
		if seen[id] {
			return fmt.Errorf("block %s referenced by more than one list: %w", id, ErrDuplicateID)
		}
		seen[id] = true

		if len(b.Children) > 0 && !b.IsContainer() {
			return fmt.Errorf("block %s (%s) holds children: %w", id, b.Type, ErrNotAContainer)
		}

		ancestors[id] = true
		for _, child := range b.Children {
			if err := visit(child, ancestors); err != nil {
				return err
			}
		}
		delete(ancestors, id)
		return nil
	}

	ancestors := make(map[string]bool)
	for _, id := range t.Order {
		if err := visit(id, ancestors); err != nil {
			return err
		}
	}

	if len(seen) != len(t.Blocks) {
		for id := range t.Blocks {
			if !seen[id] {
				return fmt.Errorf("block %s not referenced by any ordering list: %w", id, ErrNotFound)
			}
		}
	}
	return nil
}

// subtreeIDs collects id and every descendant id.
func (t Tree) subtreeIDs(id string) []string {
	ids := []string{id}
	for _, child := range t.Blocks[id].Children {
		ids = append(ids, t.subtreeIDs(child)...)
	}
	return ids
}

// parentOf returns the id of the container whose children list holds id,
// or "" when the block is top-level or absent.
func (t Tree) parentOf(id string) string {
	for candidateID, candidate := range t.Blocks {
		if indexOf(candidate.Children, id) >= 0 {
			return candidateID
		}
	}
	return ""
}

// cloneSubtree copies the block and its descendants into the arena under
// fresh ids and returns the clone's root id. Ordering-list wiring is the
// caller's job.
func (t *Tree) cloneSubtree(id string) string {
	original := t.Blocks[id]
	clone := original.clone()
	clone.ID = NewID()

	if len(original.Children) > 0 {
		clone.Children = make([]string, 0, len(original.Children))
		for _, child := range original.Children {
			clone.Children = append(clone.Children, t.cloneSubtree(child))
		}
	}

	t.Blocks[clone.ID] = clone
	return clone.ID
}

func insertAt(list []string, id string, position int) []string {
	if position < 0 || position > len(list) {
		position = len(list)
	}
	out := make([]string, 0, len(list)+1)
	out = append(out, list[:position]...)
	out = append(out, id)
	out = append(out, list[position:]...)
	return out
}

func removeAt(list []string, idx int) []string {
	if idx < 0 || idx >= len(list) {
		return list
	}
	out := make([]string, 0, len(list)-1)
	out = append(out, list[:idx]...)
	out = append(out, list[idx+1:]...)
	return out
}

func indexOf(list []string, id string) int {
	for i, v := range list {
		if v == id {
			return i
		}
	}
	return -1
}
