package handles

import "testing"

func TestTable_PutGetRemove(t *testing.T) {
	t.Parallel()

	var tbl Table[string]

	h := tbl.Put("a")
	if h == None {
		t.Fatal("Put returned the zero handle")
	}

	v, ok := tbl.Get(h)
	if !ok || v != "a" {
		t.Fatalf("Get = %q, %v; want %q, true", v, ok, "a")
	}

	v, ok = tbl.Remove(h)
	if !ok || v != "a" {
		t.Fatalf("Remove = %q, %v; want %q, true", v, ok, "a")
	}
	if _, ok := tbl.Get(h); ok {
		t.Fatal("Get succeeded after Remove")
	}
	if _, ok := tbl.Remove(h); ok {
		t.Fatal("second Remove succeeded")
	}
}

func TestTable_ZeroHandleNeverValid(t *testing.T) {
	t.Parallel()

	var tbl Table[int]
	tbl.Put(1)

	if _, ok := tbl.Get(None); ok {
		t.Fatal("Get(None) succeeded")
	}
	if _, ok := tbl.Remove(None); ok {
		t.Fatal("Remove(None) succeeded")
	}
}

func TestTable_StaleHandleAfterSlotReuse(t *testing.T) {
	t.Parallel()

	var tbl Table[int]

	h1 := tbl.Put(1)
	tbl.Remove(h1)

	h2 := tbl.Put(2)
	if h1 == h2 {
		t.Fatal("recycled slot reissued the same handle")
	}
	if _, ok := tbl.Get(h1); ok {
		t.Fatal("stale handle resolved after slot reuse")
	}
	if v, ok := tbl.Get(h2); !ok || v != 2 {
		t.Fatalf("Get(h2) = %d, %v; want 2, true", v, ok)
	}
}

func TestTable_FabricatedHandle(t *testing.T) {
	t.Parallel()

	var tbl Table[int]
	tbl.Put(1)

	if _, ok := tbl.Get(Handle(1<<32 | 999)); ok {
		t.Fatal("out-of-range fabricated handle resolved")
	}
	if _, ok := tbl.Get(Handle(7<<32 | 1)); ok {
		t.Fatal("wrong-generation fabricated handle resolved")
	}
}

func TestTable_Len(t *testing.T) {
	t.Parallel()

	var tbl Table[int]
	if tbl.Len() != 0 {
		t.Fatalf("Len = %d; want 0", tbl.Len())
	}

	h1 := tbl.Put(1)
	h2 := tbl.Put(2)
	if tbl.Len() != 2 {
		t.Fatalf("Len = %d; want 2", tbl.Len())
	}

	tbl.Remove(h1)
	if tbl.Len() != 1 {
		t.Fatalf("Len after Remove = %d; want 1", tbl.Len())
	}

	tbl.Remove(h2)
	tbl.Remove(h2)
	if tbl.Len() != 0 {
		t.Fatalf("Len after all removed = %d; want 0", tbl.Len())
	}
}
