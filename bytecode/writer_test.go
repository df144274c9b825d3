package bytecode

import "testing"

func TestWriterEmitAndBytes(t *testing.T) {
	w := New()
	w.EmitU8(0x01)
	w.EmitI32LE(42)
	got := w.Bytes()
	want := []byte{0x01, 0x2a, 0x00, 0x00, 0x00}
	if len(got) != len(want) {
		t.Fatalf("got %x, want %x", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %x, want %x", got, want)
		}
	}
}

func TestWriterPatchI16LE(t *testing.T) {
	w := New()
	w.EmitU8(0xaa)
	pc := w.EmitI16LE(0)
	w.EmitU8(0xbb)
	w.PatchI16LE(pc, -3)
	got := w.Bytes()
	if got[1] != 0xfd || got[2] != 0xff {
		t.Fatalf("patch didn't take, got %x", got)
	}
}

func TestWriterTruncate(t *testing.T) {
	w := New()
	w.EmitU8(1)
	w.EmitU8(2)
	w.EmitU8(3)
	w.Truncate(1)
	if w.Here() != 1 || w.Bytes()[0] != 1 {
		t.Fatalf("truncate left %x", w.Bytes())
	}
}


func TestWriterDetachResets(t *testing.T) {
	w := New()
	w.EmitU8(1)
	out := w.Detach()
	if len(out) != 1 {
		t.Fatalf("detach returned %v", out)
	}
	if w.Here() != 0 {
		t.Fatalf("writer should be empty after detach, Here()=%d", w.Here())
	}
}

func TestWriterGrowsPastInitialCapacity(t *testing.T) {
	w := New()
	for i := 0; i < initialCapacity+16; i++ {
		w.EmitU8(byte(i))
	}
	if w.Len() != initialCapacity+16 {
		t.Fatalf("got length %d", w.Len())
	}
}
