package results_test

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/gll"
	"github.com/npillmayer/gll/results"
)

func owner() gll.PosKey {
	return gll.PosKey{Name: 42, Input: 1, Offset: 0}
}

func drain(sub *results.Subscription) []gll.Result {
	var r []gll.Result
	for sub.Next() {
		r = append(r, sub.Result())
	}
	return r
}

func TestStreamReplaysAfterClose(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gll.results")
	defer teardown()
	//
	s := results.New(owner())
	s.Add(gll.Value(3, "a"))
	s.Add(gll.Value(6, "b"))
	s.Close()
	for n := 0; n < 2; n++ {
		sub := s.Subscribe(gll.PosKey{Name: 7, Input: 1, Offset: 0}, nil, gll.Result{})
		items := drain(sub)
		if len(items) != 2 {
			t.Fatalf("subscription %d saw %d items, expected 2", n, len(items))
		}
		if items[0].Offset != 3 || items[1].Offset != 6 {
			t.Errorf("items out of insertion order: %v", items)
		}
	}
}

func TestStreamMultiSubscriberInterleave(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gll.results")
	defer teardown()
	//
	s := results.New(owner())
	s.Add(gll.Value(1, "a"))
	sub1 := s.Subscribe(gll.PosKey{Name: 7, Input: 1, Offset: 0}, nil, gll.Result{})
	sub2 := s.Subscribe(gll.PosKey{Name: 8, Input: 1, Offset: 0}, nil, gll.Result{})
	if !sub1.Next() || sub1.Result().Value != "a" {
		t.Fatalf("first subscriber did not see first item")
	}
	s.Add(gll.Value(2, "b"))
	s.Close()
	// the second subscriber starts late but sees everything
	if got := drain(sub2); len(got) != 2 {
		t.Errorf("second subscriber saw %d items, expected 2", len(got))
	}
	if got := drain(sub1); len(got) != 1 || got[0].Value != "b" {
		t.Errorf("first subscriber resumed wrongly: %v", got)
	}
}

func TestStreamCyclicSubscription(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gll.results")
	defer teardown()
	//
	k := owner()
	s := results.New(k)
	s.Add(gll.Value(3, "a"))
	s.Add(gll.Value(6, "b"))
	fallback := gll.Errorf(0, "matches only the empty language")
	sub := s.Subscribe(k, gll.ParserPath{k}, fallback)
	items := drain(sub)
	if len(items) != 1 {
		t.Fatalf("cyclic subscription yielded %d items, expected exactly 1", len(items))
	}
	if !items[0].IsError() || items[0].Err.Error() != "matches only the empty language" {
		t.Errorf("cyclic subscription yielded %v, expected the fallback", items[0])
	}
}

func TestStreamClosedReplaysForAncestry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gll.results")
	defer teardown()
	//
	k := owner()
	s := results.New(k)
	s.Add(gll.Value(3, "a"))
	s.Close()
	sub := s.Subscribe(k, gll.ParserPath{k}, gll.Errorf(0, "fallback"))
	items := drain(sub)
	if len(items) != 1 || items[0].IsError() {
		t.Errorf("closed stream did not replay for ancestor subscriber: %v", items)
	}
}

func TestStreamAddAfterCloseIsFatal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gll.results")
	defer teardown()
	//
	s := results.New(owner())
	s.Close()
	defer func() {
		if recover() == nil {
			t.Errorf("add after close did not panic")
		}
	}()
	s.Add(gll.Value(0, "x"))
}
