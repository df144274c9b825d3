package v4front

import "testing"

func TestControlStackDepthExceeded(t *testing.T) {
	var s controlStack
	for i := 0; i < maxControlDepth; i++ {
		if err := s.push(controlFrame{kind: frameIf}); err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
	}
	if err := s.push(controlFrame{kind: frameIf}); err == nil {
		t.Fatal("expected ControlDepthExceeded")
	} else {
		assertKind(t, err, ControlDepthExceeded)
	}
}

func TestControlStackPushPopOrder(t *testing.T) {
	var s controlStack
	s.push(controlFrame{kind: frameIf, jzPatch: 1})
	s.push(controlFrame{kind: frameBegin, beginPC: 2})
	if top := s.top(); top.kind != frameBegin {
		t.Fatalf("got %v", top.kind)
	}
	f := s.pop()
	if f.beginPC != 2 {
		t.Fatalf("got %+v", f)
	}
	if top := s.top(); top.kind != frameIf || top.jzPatch != 1 {
		t.Fatalf("got %+v", top)
	}
}

func TestControlStackEmpty(t *testing.T) {
	var s controlStack
	if !s.empty() {
		t.Fatal("fresh stack should be empty")
	}
	s.push(controlFrame{kind: frameDo})
	if s.empty() {
		t.Fatal("non-empty stack reported empty")
	}
}

func TestDeeplyNestedControlCompiles(t *testing.T) {
	_, err := Compile("1 IF 1 IF 1 IF DROP THEN THEN THEN")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
