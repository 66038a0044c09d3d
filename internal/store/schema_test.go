package store

import "testing"

func TestGetDBVersion_IsDeterministic(t *testing.T) {
	a := GetDBVersion()
	b := GetDBVersion()
	if a != b {
		t.Fatalf("expected GetDBVersion to be stable across calls, got %d and %d", a, b)
	}
}

func TestGetDBVersion_ChangesWithSchemaText(t *testing.T) {
	got := GetDBVersion()
	other := int64(5381)
	for i := 0; i < len(kCreateSchema)-1; i++ {
		other = ((other << 5) + other) + int64(kCreateSchema[i])
	}
	if got == other {
		t.Fatalf("expected a truncated schema text to hash differently")
	}
}
