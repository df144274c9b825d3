package lexer

import "testing"

func collect(t *testing.T, src string) []string {
	t.Helper()
	lex := New(src)
	var toks []string
	for {
		tok, ok, err := lex.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			return toks
		}
		toks = append(toks, tok)
	}
}

func TestLexerBasicTokens(t *testing.T) {
	toks := collect(t, "  5   DUP  +\n")
	want := []string{"5", "DUP", "+"}
	if len(toks) != len(want) {
		t.Fatalf("got %v, want %v", toks, want)
	}
	for i := range want {
		if toks[i] != want[i] {
			t.Errorf("token %d: got %q, want %q", i, toks[i], want[i])
		}
	}
}

func TestLexerLineComment(t *testing.T) {
	toks := collect(t, "1 \\ this whole rest of the line is ignored\n2 +")
	want := []string{"1", "2", "+"}
	for i, w := range want {
		if i >= len(toks) || toks[i] != w {
			t.Fatalf("got %v, want %v", toks, want)
		}
	}
}

func TestLexerBlockComment(t *testing.T) {
	toks := collect(t, "1 ( this is dropped entirely ) 2 +")
	want := []string{"1", "2", "+"}
	if len(toks) != len(want) {
		t.Fatalf("got %v, want %v", toks, want)
	}
	for i := range want {
		if toks[i] != want[i] {
			t.Errorf("token %d: got %q, want %q", i, toks[i], want[i])
		}
	}
}

func TestLexerUnterminatedBlockComment(t *testing.T) {
	lex := New("1 ( never closed")
	if _, ok, _ := lex.Next(); !ok {
		t.Fatal("expected the leading '1' before the comment failure")
	}
	if _, ok, err := lex.Next(); ok || err != ErrUnterminatedComment {
		t.Fatalf("got ok=%v err=%v, want ErrUnterminatedComment", ok, err)
	}
}

func TestLexerEmptyInput(t *testing.T) {
	if toks := collect(t, "   \t\n  "); len(toks) != 0 {
		t.Fatalf("got %v, want no tokens", toks)
	}
}
