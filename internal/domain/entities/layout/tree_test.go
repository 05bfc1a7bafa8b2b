package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustBlock builds a default block or fails the test.
func mustBlock(t *testing.T, bt BlockType) Block {
	t.Helper()
	b, err := NewDefaultBlock(bt)
	require.NoError(t, err)
	return b
}

// buildPage assembles hero, container(text, image) and returns the tree
// plus the blocks by role.
func buildPage(t *testing.T) (Tree, map[string]Block) {
	t.Helper()
	tree := NewTree()
	blocks := map[string]Block{
		"hero":      mustBlock(t, BlockHero),
		"container": mustBlock(t, BlockContainer),
		"text":      mustBlock(t, BlockText),
		"image":     mustBlock(t, BlockImage),
	}

	var err error
	tree, err = tree.Insert(blocks["hero"], AtEnd)
	require.NoError(t, err)
	tree, err = tree.Insert(blocks["container"], AtEnd)
	require.NoError(t, err)
	tree, err = tree.InsertChild(blocks["container"].ID, blocks["text"], AtEnd)
	require.NoError(t, err)
	tree, err = tree.InsertChild(blocks["container"].ID, blocks["image"], AtEnd)
	require.NoError(t, err)

	require.NoError(t, tree.Validate())
	return tree, blocks
}

func TestTreeInsert(t *testing.T) {
	t.Run("appends and positions", func(t *testing.T) {
		tree := NewTree()
		first, second, between := mustBlock(t, BlockText), mustBlock(t, BlockText), mustBlock(t, BlockHero)

		tree, err := tree.Insert(first, AtEnd)
		require.NoError(t, err)
		tree, err = tree.Insert(second, AtEnd)
		require.NoError(t, err)
		tree, err = tree.Insert(between, 1)
		require.NoError(t, err)

		assert.Equal(t, []string{first.ID, between.ID, second.ID}, tree.Order)
	})

	t.Run("position beyond end clamps to append", func(t *testing.T) {
		tree := NewTree()
		b := mustBlock(t, BlockText)
		tree, err := tree.Insert(b, 99)
		require.NoError(t, err)
		assert.Equal(t, []string{b.ID}, tree.Order)
	})

	t.Run("duplicate id rejected", func(t *testing.T) {
		tree := NewTree()
		b := mustBlock(t, BlockText)
		tree, err := tree.Insert(b, AtEnd)
		require.NoError(t, err)

		_, err = tree.Insert(b, AtEnd)
		assert.ErrorIs(t, err, ErrDuplicateID)
	})

	t.Run("receiver is never mutated", func(t *testing.T) {
		tree, _ := buildPage(t)
		before := len(tree.Order)

		_, err := tree.Insert(mustBlock(t, BlockHero), 0)
		require.NoError(t, err)
		assert.Len(t, tree.Order, before)
	})
}

func TestTreeInsertChild(t *testing.T) {
	t.Run("only containers accept children", func(t *testing.T) {
		tree := NewTree()
		hero := mustBlock(t, BlockHero)
		tree, err := tree.Insert(hero, AtEnd)
		require.NoError(t, err)

		_, err = tree.InsertChild(hero.ID, mustBlock(t, BlockText), AtEnd)
		assert.ErrorIs(t, err, ErrNotAContainer)
	})

	t.Run("missing parent", func(t *testing.T) {
		tree := NewTree()
		_, err := tree.InsertChild("no-such-id", mustBlock(t, BlockText), AtEnd)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("nested containers", func(t *testing.T) {
		tree := NewTree()
		outer, inner := mustBlock(t, BlockContainer), mustBlock(t, BlockContainer)

		tree, err := tree.Insert(outer, AtEnd)
		require.NoError(t, err)
		tree, err = tree.InsertChild(outer.ID, inner, AtEnd)
		require.NoError(t, err)
		tree, err = tree.InsertChild(inner.ID, mustBlock(t, BlockCalendar), AtEnd)
		require.NoError(t, err)

		assert.NoError(t, tree.Validate())
		assert.Equal(t, 3, tree.Len())
	})
}

func TestTreeRemove(t *testing.T) {
	t.Run("removing a container removes the subtree", func(t *testing.T) {
		tree, blocks := buildPage(t)

		tree, err := tree.Remove(blocks["container"].ID)
		require.NoError(t, err)

		assert.Equal(t, 1, tree.Len())
		_, ok := tree.Get(blocks["text"].ID)
		assert.False(t, ok)
		_, ok = tree.Get(blocks["image"].ID)
		assert.False(t, ok)
		assert.NoError(t, tree.Validate())
	})

	t.Run("removing a nested child detaches it from the parent", func(t *testing.T) {
		tree, blocks := buildPage(t)

		tree, err := tree.Remove(blocks["text"].ID)
		require.NoError(t, err)

		parent, ok := tree.Get(blocks["container"].ID)
		require.True(t, ok)
		assert.Equal(t, []string{blocks["image"].ID}, parent.Children)
		assert.NoError(t, tree.Validate())
	})

	t.Run("unknown id", func(t *testing.T) {
		tree, _ := buildPage(t)
		_, err := tree.Remove("no-such-id")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTreeDuplicate(t *testing.T) {
	t.Run("clone lands after the original", func(t *testing.T) {
		tree, blocks := buildPage(t)

		tree, cloneID, err := tree.Duplicate(blocks["hero"].ID)
		require.NoError(t, err)

		assert.Equal(t, []string{blocks["hero"].ID, cloneID, blocks["container"].ID}, tree.Order)
	})

	t.Run("container clone is deep with fresh ids", func(t *testing.T) {
		tree, blocks := buildPage(t)
		before := tree.Len()

		tree, cloneID, err := tree.Duplicate(blocks["container"].ID)
		require.NoError(t, err)

		clone, ok := tree.Get(cloneID)
		require.True(t, ok)
		require.Len(t, clone.Children, 2)
		assert.NotEqual(t, blocks["container"].ID, cloneID)
		for _, childID := range clone.Children {
			assert.NotContains(t, []string{blocks["text"].ID, blocks["image"].ID}, childID)
		}
		assert.Equal(t, before+3, tree.Len())
		assert.NoError(t, tree.Validate())
	})

	t.Run("clone edits independently of the original", func(t *testing.T) {
		tree, blocks := buildPage(t)

		tree, cloneID, err := tree.Duplicate(blocks["hero"].ID)
		require.NoError(t, err)

		clone, _ := tree.Get(cloneID)
		edited, err := ApplyProperty(clone, "title", "Copy")
		require.NoError(t, err)
		tree, err = tree.Replace(edited)
		require.NoError(t, err)

		original, _ := tree.Get(blocks["hero"].ID)
		assert.Empty(t, original.Hero.Title)
	})

	t.Run("removing the original keeps the clone", func(t *testing.T) {
		tree, blocks := buildPage(t)

		tree, cloneID, err := tree.Duplicate(blocks["container"].ID)
		require.NoError(t, err)
		tree, err = tree.Remove(blocks["container"].ID)
		require.NoError(t, err)

		clone, ok := tree.Get(cloneID)
		require.True(t, ok)
		assert.Len(t, clone.Children, 2)
		assert.NoError(t, tree.Validate())
	})
}

func TestTreeReorder(t *testing.T) {
	t.Run("top-level move", func(t *testing.T) {
		tree, blocks := buildPage(t)

		tree, err := tree.Reorder("", blocks["container"].ID, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{blocks["container"].ID, blocks["hero"].ID}, tree.Order)
	})

	t.Run("within a container", func(t *testing.T) {
		tree, blocks := buildPage(t)

		tree, err := tree.Reorder(blocks["container"].ID, blocks["image"].ID, 0)
		require.NoError(t, err)

		parent, _ := tree.Get(blocks["container"].ID)
		assert.Equal(t, []string{blocks["image"].ID, blocks["text"].ID}, parent.Children)
	})

	t.Run("index clamps to list bounds", func(t *testing.T) {
		tree, blocks := buildPage(t)

		tree, err := tree.Reorder("", blocks["hero"].ID, 99)
		require.NoError(t, err)
		assert.Equal(t, []string{blocks["container"].ID, blocks["hero"].ID}, tree.Order)
	})

	t.Run("block not in the addressed list", func(t *testing.T) {
		tree, blocks := buildPage(t)

		_, err := tree.Reorder("", blocks["text"].ID, 0)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTreeReplace(t *testing.T) {
	t.Run("preserves container structure", func(t *testing.T) {
		tree, blocks := buildPage(t)

		edited, err := ApplyProperty(blocks["container"].clone(), "padding", ScaleLarge)
		require.NoError(t, err)
		edited.Children = nil // structure must come from the tree, not the caller

		tree, err = tree.Replace(edited)
		require.NoError(t, err)

		got, _ := tree.Get(blocks["container"].ID)
		assert.Equal(t, ScaleLarge, got.Style.Padding)
		assert.Len(t, got.Children, 2)
	})

	t.Run("type change rejected", func(t *testing.T) {
		tree, blocks := buildPage(t)

		impostor := blocks["hero"].clone()
		impostor.Type = BlockText
		impostor.Hero = nil
		impostor.Text = &TextProps{FontSize: FontMedium}

		_, err := tree.Replace(impostor)
		assert.ErrorIs(t, err, ErrTypeMismatch)
	})
}

func TestTreeValidate(t *testing.T) {
	t.Run("dangling reference", func(t *testing.T) {
		tree, _ := buildPage(t)
		tree.Order = append(tree.Order, "ghost")
		assert.ErrorIs(t, tree.Validate(), ErrNotFound)
	})

	t.Run("id owned by two lists", func(t *testing.T) {
		tree, blocks := buildPage(t)
		tree.Order = append(tree.Order, blocks["text"].ID)
		assert.ErrorIs(t, tree.Validate(), ErrDuplicateID)
	})

	t.Run("container cycle", func(t *testing.T) {
		tree := NewTree()
		outer, inner := mustBlock(t, BlockContainer), mustBlock(t, BlockContainer)
		tree, err := tree.Insert(outer, AtEnd)
		require.NoError(t, err)
		tree, err = tree.InsertChild(outer.ID, inner, AtEnd)
		require.NoError(t, err)

		// Corrupt the arena directly; no public operation can build a cycle.
		broken := tree.Blocks[inner.ID]
		broken.Children = []string{outer.ID}
		tree.Blocks[inner.ID] = broken

		assert.ErrorIs(t, tree.Validate(), ErrCycleDetected)
	})
}

func TestTreeFlattenOrder(t *testing.T) {
	tree, blocks := buildPage(t)

	want := []string{
		blocks["hero"].ID,
		blocks["container"].ID,
		blocks["text"].ID,
		blocks["image"].ID,
	}
	assert.Equal(t, want, tree.FlattenOrder())
}
