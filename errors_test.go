package v4front

import "testing"

func TestErrorMessageIncludesToken(t *testing.T) {
	err := errTok(UnknownToken, "not a known word, literal, or primitive", "FOO")
	want := `UnknownToken: not a known word, literal, or primitive: "FOO"`
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}

func TestErrorMessageWithoutToken(t *testing.T) {
	err := errf(EmptyInput, "nothing to compile")
	want := "EmptyInput: nothing to compile"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}

func TestKindStringUnknownValue(t *testing.T) {
	var k Kind = 9999
	if got, want := k.String(), "Kind(9999)"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDuplicateConstantNameSurfacesAsDuplicateWord(t *testing.T) {
	_, err := Compile("1 CONSTANT SAME 2 CONSTANT SAME")
	assertKind(t, err, DuplicateWord)
}
