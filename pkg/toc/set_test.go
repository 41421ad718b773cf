package toc

import "testing"

func TestSet(t *testing.T) {
	s := NewSet("b", "a")
	s.Add("c")
	s.Add("a")
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if !s.Has("c") || s.Has("z") {
		t.Error("Has() returned wrong membership")
	}

	s.Remove("b")
	s.Remove("missing")
	assertSet(t, "after remove", s, "a", "c")

	clone := s.Clone()
	clone.Add("z")
	if s.Has("z") {
		t.Error("Clone() should be independent")
	}
	if !s.SubsetOf(clone) || clone.SubsetOf(s) {
		t.Error("SubsetOf() wrong")
	}
	if s.Equal(clone) || !s.Equal(NewSet("c", "a")) {
		t.Error("Equal() wrong")
	}

	var empty Set
	if empty.Has("a") || empty.Len() != 0 {
		t.Error("nil set should be empty")
	}
	c := empty.Clone()
	c.Add("a")
	if !c.Has("a") {
		t.Error("clone of nil set should be writable")
	}
}
