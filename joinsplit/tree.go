package joinsplit

import (
	"errors"
	"sync"

	"github.com/fernandosanchezjr/zcashbench/utils"
)

// TreeDepth is the note commitment tree depth; the anchor is the root of a
// tree this deep.
const TreeDepth = 20

var ErrTreeFull = errors.New("joinsplit: note commitment tree is full")

var (
	emptyOnce   sync.Once
	emptyLevels [TreeDepth + 1][32]byte
)

// levelRoots returns the root of an all-empty subtree at every height, leaf
// level first.
func levelRoots() *[TreeDepth + 1][32]byte {
	emptyOnce.Do(func() {
		for i := 0; i < TreeDepth; i++ {
			emptyLevels[i+1] = utils.DoubleHashPair(emptyLevels[i], emptyLevels[i])
		}
	})
	return &emptyLevels
}

// EmptyRoot is the anchor of an empty commitment tree.
func EmptyRoot() [32]byte {
	return levelRoots()[TreeDepth]
}

// CommitmentTree is an incremental Merkle tree over double-SHA256. Only the
// frontier is kept: the current leaf pair plus one filled node per level.
type CommitmentTree struct {
	left    *[32]byte
	right   *[32]byte
	parents []*[32]byte
}

func NewCommitmentTree() *CommitmentTree {
	return &CommitmentTree{}
}

// Append adds a note commitment as the next leaf.
func (t *CommitmentTree) Append(cm [32]byte) error {
	if t.left == nil {
		t.left = &cm
		return nil
	}
	if t.right == nil {
		t.right = &cm
		return nil
	}
	combined := utils.DoubleHashPair(*t.left, *t.right)
	t.left = &cm
	t.right = nil
	for i := 0; ; i++ {
		if i >= TreeDepth-1 {
			return ErrTreeFull
		}
		if i >= len(t.parents) {
			node := combined
			t.parents = append(t.parents, &node)
			return nil
		}
		if t.parents[i] == nil {
			node := combined
			t.parents[i] = &node
			return nil
		}
		combined = utils.DoubleHashPair(*t.parents[i], combined)
		t.parents[i] = nil
	}
}

// Root folds the frontier against empty subtrees up to TreeDepth.
func (t *CommitmentTree) Root() [32]byte {
	empties := levelRoots()
	var leafL, leafR [32]byte
	if t.left != nil {
		leafL = *t.left
	}
	if t.right != nil {
		leafR = *t.right
	}
	root := utils.DoubleHashPair(leafL, leafR)
	for i := 0; i < TreeDepth-1; i++ {
		if i < len(t.parents) && t.parents[i] != nil {
			root = utils.DoubleHashPair(*t.parents[i], root)
		} else {
			root = utils.DoubleHashPair(root, empties[i+1])
		}
	}
	return root
}
