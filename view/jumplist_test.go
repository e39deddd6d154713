package view

import (
	"testing"

	"github.com/justy989/ce/buffer"
)

func TestJumpListPushAndBack(t *testing.T) {
	j := NewJumpList()
	j.Push("a.txt", buffer.Point{0, 1})
	j.Push("a.txt", buffer.Point{0, 2})

	jump, ok := j.Back()
	if !ok || jump.Point != (buffer.Point{0, 2}) {
		t.Fatalf("got %v %v", jump, ok)
	}
	jump, ok = j.Back()
	if !ok || jump.Point != (buffer.Point{0, 1}) {
		t.Fatalf("got %v %v", jump, ok)
	}
	_, ok = j.Back()
	if ok {
		t.Fatal("expected no more history")
	}
}

func TestJumpListForward(t *testing.T) {
	j := NewJumpList()
	j.Push("a.txt", buffer.Point{0, 1})
	j.Push("a.txt", buffer.Point{0, 2})

	j.Back()
	j.Back()
	jump, ok := j.Forward()
	if !ok || jump.Point != (buffer.Point{0, 2}) {
		t.Fatalf("got %v %v", jump, ok)
	}
}

func TestJumpListWrapsAtCapacity(t *testing.T) {
	j := NewJumpList()
	for i := 0; i < jumpListSize+5; i++ {
		j.Push("a.txt", buffer.Point{0, int64(i)})
	}
	if j.count != jumpListSize {
		t.Fatalf("expected count capped at %d, got %d", jumpListSize, j.count)
	}
	jump, ok := j.Back()
	if !ok || jump.Point != (buffer.Point{0, int64(jumpListSize + 4)}) {
		t.Fatalf("got %v %v", jump, ok)
	}
}

func TestJumpListEmpty(t *testing.T) {
	j := NewJumpList()
	if _, ok := j.Back(); ok {
		t.Fatal("expected no history")
	}
	if _, ok := j.Forward(); ok {
		t.Fatal("expected no history")
	}
}
