package orderbook

import (
	"math/rand"
	"sort"
	"testing"
)

func TestLevelTreeInsertFindDelete(t *testing.T) {
	tree := newLevelTree()
	l1 := tree.Upsert(100)
	if l1 == nil {
		t.Fatal("Upsert returned nil")
	}
	if l2 := tree.Find(100); l2 != l1 {
		t.Error("Find did not return the same level")
	}

	tree.Upsert(200)
	if tree.Min().Price() != 100 {
		t.Error("expected min=100")
	}
	if tree.Max().Price() != 200 {
		t.Error("expected max=200")
	}

	if !tree.Delete(100) {
		t.Error("Delete failed")
	}
	if tree.Find(100) != nil {
		t.Error("expected level 100 to be gone")
	}
}

func TestLevelTreeDeleteAbsent(t *testing.T) {
	tree := newLevelTree()
	if tree.Delete(123) {
		t.Error("expected false when deleting absent level")
	}
}

func TestLevelTreeEmptyMinMax(t *testing.T) {
	tree := newLevelTree()
	if tree.Min() != nil || tree.Max() != nil {
		t.Error("expected nil min/max on empty tree")
	}
}

func TestLevelTreeUpsertDuplicate(t *testing.T) {
	tree := newLevelTree()
	l1 := tree.Upsert(150)
	l2 := tree.Upsert(150)
	if l1 != l2 {
		t.Error("Upsert should return the existing level for a duplicate price")
	}
	if tree.Size() != 1 {
		t.Errorf("Size = %d, want 1", tree.Size())
	}
}

func TestLevelTreeOrderedWalks(t *testing.T) {
	tree := newLevelTree()
	prices := []Price{500, 100, 300, 200, 400}
	for _, p := range prices {
		tree.Upsert(p)
	}

	var asc []Price
	tree.WalkAsc(func(l *PriceLevel) bool {
		asc = append(asc, l.Price())
		return true
	})
	for i := 1; i < len(asc); i++ {
		if asc[i-1] >= asc[i] {
			t.Fatalf("ascending walk out of order: %v", asc)
		}
	}

	var desc []Price
	tree.WalkDesc(func(l *PriceLevel) bool {
		desc = append(desc, l.Price())
		return len(desc) < 3
	})
	if len(desc) != 3 || desc[0] != 500 || desc[1] != 400 || desc[2] != 300 {
		t.Fatalf("descending walk with early stop: %v", desc)
	}
}

func TestLevelTreeRandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tree := newLevelTree()
	ref := map[Price]bool{}

	for i := 0; i < 5000; i++ {
		p := Price(rng.Intn(500))
		if rng.Intn(3) == 0 {
			if tree.Delete(p) != ref[p] {
				t.Fatalf("Delete(%d) disagreed with reference", p)
			}
			delete(ref, p)
		} else {
			tree.Upsert(p)
			ref[p] = true
		}
	}

	keys := make([]Price, 0, len(ref))
	for p := range ref {
		keys = append(keys, p)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	if tree.Size() != len(keys) {
		t.Fatalf("Size = %d, want %d", tree.Size(), len(keys))
	}
	if len(keys) > 0 {
		if tree.Min().Price() != keys[0] {
			t.Errorf("Min = %d, want %d", tree.Min().Price(), keys[0])
		}
		if tree.Max().Price() != keys[len(keys)-1] {
			t.Errorf("Max = %d, want %d", tree.Max().Price(), keys[len(keys)-1])
		}
	}

	i := 0
	tree.WalkAsc(func(l *PriceLevel) bool {
		if l.Price() != keys[i] {
			t.Fatalf("walk position %d: price %d, want %d", i, l.Price(), keys[i])
		}
		i++
		return true
	})
	if i != len(keys) {
		t.Fatalf("walk visited %d levels, want %d", i, len(keys))
	}
}
