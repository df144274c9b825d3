package v4front

import (
	"bytes"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestContainerRoundTrip(t *testing.T) {
	src := ": SQUARE DUP * ; : CUBE DUP SQUARE * ; 3 CUBE"
	a := mustCompile(t, src)

	var buf bytes.Buffer
	if err := SaveArtifact(&buf, a); err != nil {
		t.Fatalf("SaveArtifact: %v", err)
	}

	got, err := LoadArtifact(&buf)
	if err != nil {
		t.Fatalf("LoadArtifact: %v", err)
	}
	if diff := cmp.Diff(a, got); diff != "" {
		t.Fatalf("round trip mismatch:\n%s", diff)
	}
}

func TestContainerRoundTripEmptyArtifact(t *testing.T) {
	a := mustCompile(t, "")
	var buf bytes.Buffer
	if err := SaveArtifact(&buf, a); err != nil {
		t.Fatal(err)
	}
	got, err := LoadArtifact(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a, got); diff != "" {
		t.Fatalf("round trip mismatch:\n%s", diff)
	}
}

func TestContainerBadMagicRejected(t *testing.T) {
	buf := bytes.NewBuffer([]byte{'X', 'X', 'X', 'X', 1, 0, 0, 0})
	if _, err := LoadArtifact(buf); err == nil {
		t.Fatal("expected a magic mismatch error")
	}
}

func TestContainerVersionMismatchRejected(t *testing.T) {
	buf := bytes.NewBuffer([]byte{'V', '4', 'B', 'C', 9, 9, 0, 0})
	if _, err := LoadArtifact(buf); err == nil {
		t.Fatal("expected a version mismatch error")
	}
}

func TestContainerTruncatedStreamPropagatesUnexpectedEOF(t *testing.T) {
	a := mustCompile(t, "1 2 +")
	var buf bytes.Buffer
	if err := SaveArtifact(&buf, a); err != nil {
		t.Fatal(err)
	}
	truncated := bytes.NewReader(buf.Bytes()[:buf.Len()-2])
	if _, err := LoadArtifact(truncated); err != io.ErrUnexpectedEOF {
		t.Fatalf("got %v, want io.ErrUnexpectedEOF on truncated input", err)
	}
}
