package deque

import (
	"reflect"
	"testing"
)

func TestPushBackPopFront(t *testing.T) {
	var d Deque[int]
	for i := 0; i < 20; i++ {
		d.PushBack(i)
	}
	if d.Len() != 20 {
		t.Fatalf("expected 20 items, got %d", d.Len())
	}
	for i := 0; i < 20; i++ {
		v, ok := d.PopFront()
		if !ok || v != i {
			t.Fatalf("pop %d: got %d, %v", i, v, ok)
		}
	}
	if _, ok := d.PopFront(); ok {
		t.Error("expected empty deque")
	}
}

func TestPushFrontAllKeepsOrder(t *testing.T) {
	d := New[string](2)
	d.PushBack("tail")
	d.PushFrontAll("a", "b", "c")

	want := []string{"a", "b", "c", "tail"}
	if got := d.Items(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMutateWhileConsuming(t *testing.T) {
	d := New[int](4)
	d.PushBack(1)
	d.PushBack(2)

	var seen []int
	for d.Len() > 0 {
		v, _ := d.PopFront()
		seen = append(seen, v)
		// expand 1 into two items that run before 2
		if v == 1 {
			d.PushFrontAll(10, 11)
		}
	}

	want := []int{1, 10, 11, 2}
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("got %v, want %v", seen, want)
	}
}

func TestFrontDoesNotRemove(t *testing.T) {
	var d Deque[int]
	d.PushFront(7)
	v, ok := d.Front()
	if !ok || v != 7 {
		t.Fatalf("front: got %d, %v", v, ok)
	}
	if d.Len() != 1 {
		t.Errorf("front removed item")
	}
}

func TestWrapAround(t *testing.T) {
	d := New[int](4)
	for round := 0; round < 10; round++ {
		d.PushBack(round)
		d.PushFront(-round)
		if v, _ := d.PopFront(); v != -round {
			t.Fatalf("round %d: front %d", round, v)
		}
		if v, _ := d.PopFront(); v != round {
			t.Fatalf("round %d: back %d", round, v)
		}
	}
}

func TestReset(t *testing.T) {
	var d Deque[int]
	d.PushBack(1)
	d.Reset([]int{4, 5, 6})
	if got := d.Items(); !reflect.DeepEqual(got, []int{4, 5, 6}) {
		t.Errorf("got %v", got)
	}
	d.Reset(nil)
	if d.Len() != 0 {
		t.Errorf("expected empty after Reset(nil)")
	}
}
