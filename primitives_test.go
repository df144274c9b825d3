package v4front

import (
	"testing"

	"github.com/V4-project/V4-front/opcode"
)

func TestPrimitiveSimpleAlphaIsCaseInsensitive(t *testing.T) {
	for _, src := range []string{"dup", "DUP", "Dup"} {
		a := mustCompile(t, src)
		want := []byte{byte(opcode.DUP), byte(opcode.RET)}
		eqBytes(t, a.Main, want)
	}
}

func TestPrimitiveSymbolsAreExactMatchOnly(t *testing.T) {
	a := mustCompile(t, "+")
	eqBytes(t, a.Main, []byte{byte(opcode.ADD), byte(opcode.RET)})
}

func TestCompositeNegateLowersToLit0SwapSub(t *testing.T) {
	a := mustCompile(t, "5 NEGATE")
	want := []byte{byte(opcode.LIT)}
	want = append(want, i32le(5)...)
	want = append(want, byte(opcode.LIT0), byte(opcode.SWAP), byte(opcode.SUB), byte(opcode.RET))
	eqBytes(t, a.Main, want)
}

func TestCompositeQDupIsThreeInstructions(t *testing.T) {
	a := mustCompile(t, "0 ?DUP")
	ops := opsOnly(a.Main)
	// LIT, DUP, JZ, DUP, RET -- no double leading DUP.
	want := []opcode.Op{opcode.LIT, opcode.DUP, opcode.JZ, opcode.DUP, opcode.RET}
	eqOps(t, ops, want)
}

func TestCompositePlusStore(t *testing.T) {
	a := mustCompile(t, "VARIABLE X 5 X +!")
	ops := opsOnly(a.Main)
	want := []opcode.Op{
		opcode.LIT, // 5
		opcode.LIT, // X's address
		opcode.SWAP, opcode.OVER, opcode.LOAD, opcode.ADD, opcode.SWAP, opcode.STORE,
		opcode.RET,
	}
	eqOps(t, ops, want)
}

func TestCompositeMinMax(t *testing.T) {
	a := mustCompile(t, "3 4 MIN")
	ops := opsOnly(a.Main)
	want := []opcode.Op{
		opcode.LIT, opcode.LIT,
		opcode.OVER, opcode.OVER, opcode.LT, opcode.JZ,
		opcode.DROP, opcode.JMP,
		opcode.SWAP, opcode.DROP,
		opcode.RET,
	}
	eqOps(t, ops, want)
}

func TestLoopIndexWordsNestThreeDeep(t *testing.T) {
	a := mustCompile(t, "2 0 DO 2 0 DO 2 0 DO K J I LOOP LOOP LOOP")
	ops := opsOnly(a.Main)
	// Just confirm it compiles to a well-formed, non-empty stream
	// ending in RET; the per-depth op counts are not checked here.
	if len(ops) == 0 || ops[len(ops)-1] != opcode.RET {
		t.Fatalf("unexpected shape: %v", ops)
	}
}

func TestUnknownTokenIsRejected(t *testing.T) {
	_, err := Compile("FROBNICATE")
	assertKind(t, err, UnknownToken)
}
