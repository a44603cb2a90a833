package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Error("new frame should be empty")
	}

	f.Set(ActionLeft)
	if !f.Has(ActionLeft) {
		t.Error("Has(ActionLeft) should be true after Set")
	}
	if f.Has(ActionRight) {
		t.Error("Has(ActionRight) should be false")
	}
	if f.Empty() {
		t.Error("frame with an action should not be empty")
	}

	clone := f.Clone()
	f.Clear()
	if f.Has(ActionLeft) {
		t.Error("Clear should remove actions")
	}
	if !clone.Has(ActionLeft) {
		t.Error("Clone should be independent of the original")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionDrop) {
		t.Error("zero frame should have no actions")
	}
	f.Set(ActionDrop)
	if !f.Has(ActionDrop) {
		t.Error("Set on zero frame should allocate")
	}
}

func TestActionString(t *testing.T) {
	if ActionRotate.String() != "Rotate" {
		t.Errorf("ActionRotate.String() = %q", ActionRotate.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("unknown action String() = %q", Action(99).String())
	}
}
