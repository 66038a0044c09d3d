package policy

import "testing"

func TestField_Unset_IsDefaultZeroValue(t *testing.T) {
	var f Field[int]
	if !f.IsUnset() {
		t.Fatalf("expected zero-value Field to be Unset")
	}
	if f.IsSet() || f.IsNull() {
		t.Fatalf("zero-value Field must not be Set or Null")
	}
}

func TestField_NewSet_IsSetAndReturnsValue(t *testing.T) {
	f := NewSet(42)
	if !f.IsSet() {
		t.Fatalf("expected Set field")
	}
	v, ok := f.Value()
	if !ok || v != 42 {
		t.Fatalf("expected (42, true), got (%v, %v)", v, ok)
	}
}

func TestField_NewNull_IsNullNotSet(t *testing.T) {
	f := NewNull[string]()
	if !f.IsNull() {
		t.Fatalf("expected Null field")
	}
	if f.IsSet() {
		t.Fatalf("Null field must not report Set")
	}
	_, ok := f.Value()
	if ok {
		t.Fatalf("Value() must report false for a Null field")
	}
}

func TestField_ValueOr_FallsBackWhenNotSet(t *testing.T) {
	f := NewNull[int]()
	if got := f.ValueOr(7); got != 7 {
		t.Fatalf("expected fallback 7, got %d", got)
	}
}

func TestField_ValueOr_ReturnsValueWhenSet(t *testing.T) {
	f := NewSet(3)
	if got := f.ValueOr(7); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestField_ThreeStatesAreDistinct(t *testing.T) {
	var unset Field[int]
	null := NewNull[int]()
	set := NewSet(1)

	if unset.Presence() == null.Presence() || null.Presence() == set.Presence() || unset.Presence() == set.Presence() {
		t.Fatalf("Unset, Null and Set must be pairwise distinct presence states")
	}
}
