package joinsplit

import "testing"

func TestEmptyRootMatchesFreshTree(t *testing.T) {
	tree := NewCommitmentTree()
	if tree.Root() != EmptyRoot() {
		t.Fatal("fresh tree root differs from EmptyRoot")
	}
}

func TestAppendChangesRoot(t *testing.T) {
	tree := NewCommitmentTree()
	var cm [32]byte
	cm[0] = 0xaa
	if err := tree.Append(cm); err != nil {
		t.Fatal(err)
	}
	if tree.Root() == EmptyRoot() {
		t.Fatal("root unchanged after append")
	}
}

func TestAppendOrderMatters(t *testing.T) {
	var a, b [32]byte
	a[0] = 0x01
	b[0] = 0x02

	forward := NewCommitmentTree()
	backward := NewCommitmentTree()
	for _, cm := range [][32]byte{a, b} {
		if err := forward.Append(cm); err != nil {
			t.Fatal(err)
		}
	}
	for _, cm := range [][32]byte{b, a} {
		if err := backward.Append(cm); err != nil {
			t.Fatal(err)
		}
	}
	if forward.Root() == backward.Root() {
		t.Fatal("leaf order should change the root")
	}
}

func TestFrontierCarry(t *testing.T) {
	// Appending past one leaf pair exercises the parent carry path.
	tree := NewCommitmentTree()
	roots := make(map[[32]byte]struct{})
	for i := byte(0); i < 9; i++ {
		var cm [32]byte
		cm[31] = i + 1
		if err := tree.Append(cm); err != nil {
			t.Fatal(err)
		}
		root := tree.Root()
		if _, dup := roots[root]; dup {
			t.Fatal("duplicate root after append", i)
		}
		roots[root] = struct{}{}
	}
}
