package engine_test

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/gll"
	"github.com/npillmayer/gll/combinator"
	"github.com/npillmayer/gll/engine"
)

func TestNodeNamesDeduplicateByShape(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gll.engine")
	defer teardown()
	//
	cache := engine.NewNameCache()
	a := combinator.NewLiteral("abc")
	b := combinator.NewLiteral("abc")
	c := combinator.NewLiteral("abd")
	if cache.NameOf(a) != cache.NameOf(b) {
		t.Errorf("two literals of identical shape received different names")
	}
	if cache.NameOf(a) == cache.NameOf(c) {
		t.Errorf("literals of different shape share a name")
	}
	if cache.NameOf(a) == gll.SelfRef {
		t.Errorf("non-recursive shape received the self-reference sentinel")
	}
}

func TestSelfReferentialShapeHasStableName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gll.engine")
	defer teardown()
	//
	cache := engine.NewNameCache()
	expr := &combinator.Slot{}
	expr.Resolve(combinator.NewReentrant(combinator.NewSequenceAmbiguous(
		combinator.NewOptional(expr),
		combinator.NewLiteral("abc"),
	)))
	n1 := cache.NameOf(expr)
	n2 := cache.NameOf(expr)
	if n1 == gll.SelfRef {
		t.Fatalf("self-referential slot hashes to the bare sentinel")
	}
	if n1 != n2 {
		t.Errorf("self-referential shape name is unstable: %s vs %s", n1, n2)
	}
}

func TestDistinctRecursiveShapesDoNotCollide(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gll.engine")
	defer teardown()
	//
	cache := engine.NewNameCache()
	a := &combinator.Slot{}
	a.Resolve(combinator.NewReentrant(combinator.NewSequenceAmbiguous(
		combinator.NewOptional(a), combinator.NewLiteral("abc"),
	)))
	b := &combinator.Slot{}
	b.Resolve(combinator.NewReentrant(combinator.NewSequenceAmbiguous(
		combinator.NewOptional(b), combinator.NewLiteral("xyz"),
	)))
	if cache.NameOf(a) == cache.NameOf(b) {
		t.Errorf("recursive shapes over different literals share a name")
	}
}

func TestMemoizationIsTransparent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gll.engine")
	defer teardown()
	//
	ctx := engine.NewContext([]byte("abcabc"), nil)
	defer ctx.Deinit()
	lit := combinator.NewLiteral("abc")
	name := ctx.Memo.Names().NameOf(lit)
	child1 := ctx.InitChild(name, 0)
	if child1.ExistingResults {
		t.Fatalf("fresh memo entry reported as existing")
	}
	if err := lit.Parse(child1); err != nil {
		t.Error(err)
	}
	child2 := ctx.InitChild(name, 0)
	if !child2.ExistingResults {
		t.Fatalf("memo entry not found on second derivation")
	}
	if child1.Results != child2.Results {
		t.Errorf("same activation key returned different streams")
	}
	other := ctx.InitChild(name, 3)
	if other.ExistingResults {
		t.Errorf("different offset hit the memo entry of offset 0")
	}
}

func TestChildContextExtendsPath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gll.engine")
	defer teardown()
	//
	ctx := engine.NewContext([]byte("abc"), nil)
	defer ctx.Deinit()
	child := ctx.InitChild(99, 1)
	if !child.Path.Contains(child.Key) {
		t.Errorf("child path misses the child activation: %v", child.Path)
	}
	if child.Ancestry().Contains(child.Key) {
		t.Errorf("child ancestry contains the child itself: %v", child.Ancestry())
	}
	if !child.Ancestry().Contains(ctx.Key) {
		t.Errorf("child ancestry misses the parent: %v", child.Ancestry())
	}
	if ctx.Path.Contains(child.Key) {
		t.Errorf("deriving a child modified the parent path: %v", ctx.Path)
	}
}

func TestContextPayloadIsHandedThrough(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gll.engine")
	defer teardown()
	//
	payload := map[string]int{"n": 1}
	ctx := engine.NewContext([]byte("abc"), payload)
	defer ctx.Deinit()
	child := ctx.InitChild(99, 0)
	if child.Payload == nil {
		t.Fatalf("payload lost during child derivation")
	}
	if child.Payload.(map[string]int)["n"] != 1 {
		t.Errorf("payload content changed during child derivation")
	}
}
