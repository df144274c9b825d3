package v4front

import (
	"strings"

	"github.com/V4-project/V4-front/bytecode"
	"github.com/V4-project/V4-front/opcode"
)

// emitOp appends a single bare opcode byte.
func emitOp(w *bytecode.Writer, op opcode.Op) {
	w.EmitU8(byte(op))
}

// patchRel16 overwrites the placeholder at patchPC so that its
// PC-relative offset lands on target.
func patchRel16(w *bytecode.Writer, patchPC, target int) {
	w.PatchI16LE(patchPC, int16(target-(patchPC+2)))
}

// emitRel16Placeholder emits a 2-byte zero placeholder and returns its
// offset for a later patchRel16 call.
func emitRel16Placeholder(w *bytecode.Writer) int {
	return w.EmitI16LE(0)
}

// simpleAlpha maps case-insensitive alphabetic mnemonics to a single
// bare opcode.
var simpleAlpha = map[string]opcode.Op{
	"DUP":    opcode.DUP,
	"DROP":   opcode.DROP,
	"SWAP":   opcode.SWAP,
	"OVER":   opcode.OVER,
	"MOD":    opcode.MOD,
	"AND":    opcode.AND,
	"OR":     opcode.OR,
	"XOR":    opcode.XOR,
	"INVERT": opcode.INVERT,
}

// simpleSymbol maps exact-match symbolic mnemonics to a single bare
// opcode.
var simpleSymbol = map[string]opcode.Op{
	"+":  opcode.ADD,
	"-":  opcode.SUB,
	"*":  opcode.MUL,
	"/":  opcode.DIV,
	"=":  opcode.EQ,
	"==": opcode.EQ,
	"<>": opcode.NE,
	"!=": opcode.NE,
	"<":  opcode.LT,
	"<=": opcode.LE,
	">":  opcode.GT,
	">=": opcode.GE,
	"@":  opcode.LOAD,
	"!":  opcode.STORE,
	">R": opcode.TOR,
	"R>": opcode.FROMR,
	"R@": opcode.RFETCH,
}

// compositeAlpha maps case-insensitive alphabetic mnemonics that lower
// to more than one opcode.
var compositeAlpha = map[string]func(*bytecode.Writer){
	"ROT":    compROT,
	"NIP":    compNIP,
	"TUCK":   compTUCK,
	"NEGATE": compNEGATE,
	"ABS":    compABS,
	"MIN":    compMIN,
	"MAX":    compMAX,
	"?DUP":   compQDup,
	"I":      func(w *bytecode.Writer) { emitLoopIndex(w, 0) },
	"J":      func(w *bytecode.Writer) { emitLoopIndex(w, 1) },
	"K":      func(w *bytecode.Writer) { emitLoopIndex(w, 2) },
}

// compositeSymbol mirrors compositeAlpha for the one symbolic
// composite mnemonic.
var compositeSymbol = map[string]func(*bytecode.Writer){
	"+!": compPlusStore,
}

// lookupPrimitive resolves tok against the primitive/composite tables
// following the case-folding rule appropriate to its flavor: try the
// exact-match symbolic tables first, then fold case and try alphabetic.
func lookupPrimitive(tok string) (emit func(*bytecode.Writer), ok bool) {
	if op, found := simpleSymbol[tok]; found {
		return func(w *bytecode.Writer) { emitOp(w, op) }, true
	}
	if fn, found := compositeSymbol[tok]; found {
		return fn, true
	}

	folded := strings.ToUpper(tok)
	if op, found := simpleAlpha[folded]; found {
		return func(w *bytecode.Writer) { emitOp(w, op) }, true
	}
	if fn, found := compositeAlpha[folded]; found {
		return fn, true
	}
	return nil, false
}

// ROT ( a b c -- b c a )
func compROT(w *bytecode.Writer) {
	emitOp(w, opcode.TOR)
	emitOp(w, opcode.SWAP)
	emitOp(w, opcode.FROMR)
	emitOp(w, opcode.SWAP)
}

// NIP ( a b -- b )
func compNIP(w *bytecode.Writer) {
	emitOp(w, opcode.SWAP)
	emitOp(w, opcode.DROP)
}

// TUCK ( a b -- b a b )
func compTUCK(w *bytecode.Writer) {
	emitOp(w, opcode.SWAP)
	emitOp(w, opcode.OVER)
}

// NEGATE ( n -- -n )
func compNEGATE(w *bytecode.Writer) {
	emitOp(w, opcode.LIT0)
	emitOp(w, opcode.SWAP)
	emitOp(w, opcode.SUB)
}

// ABS ( n -- |n| ), lowering to "DUP LIT0 LT IF NEGATE THEN" inlined.
func compABS(w *bytecode.Writer) {
	emitOp(w, opcode.DUP)
	emitOp(w, opcode.LIT0)
	emitOp(w, opcode.LT)
	emitOp(w, opcode.JZ)
	jz := emitRel16Placeholder(w)
	compNEGATE(w)
	patchRel16(w, jz, w.Here())
}

// MIN ( a b -- min ), lowering to "OVER OVER < IF DROP ELSE SWAP DROP THEN".
func compMIN(w *bytecode.Writer) {
	compMinMax(w, opcode.LT)
}

// MAX ( a b -- max ), lowering to "OVER OVER > IF DROP ELSE SWAP DROP THEN".
func compMAX(w *bytecode.Writer) {
	compMinMax(w, opcode.GT)
}

func compMinMax(w *bytecode.Writer, cmp opcode.Op) {
	emitOp(w, opcode.OVER)
	emitOp(w, opcode.OVER)
	emitOp(w, cmp)
	emitOp(w, opcode.JZ)
	jz := emitRel16Placeholder(w)
	emitOp(w, opcode.DROP)
	emitOp(w, opcode.JMP)
	jmp := emitRel16Placeholder(w)
	patchRel16(w, jz, w.Here())
	emitOp(w, opcode.SWAP)
	emitOp(w, opcode.DROP)
	patchRel16(w, jmp, w.Here())
}

// ?DUP ( x -- 0 | x x ), lowering to "DUP IF DUP THEN".
func compQDup(w *bytecode.Writer) {
	emitOp(w, opcode.DUP)
	emitOp(w, opcode.JZ)
	jz := emitRel16Placeholder(w)
	emitOp(w, opcode.DUP)
	patchRel16(w, jz, w.Here())
}

// +! ( n addr -- ), lowering to "TUCK @ + SWAP !" rephrased over the
// ( n addr -- ) argument order this table uses.
func compPlusStore(w *bytecode.Writer) {
	emitOp(w, opcode.SWAP)
	emitOp(w, opcode.OVER)
	emitOp(w, opcode.LOAD)
	emitOp(w, opcode.ADD)
	emitOp(w, opcode.SWAP)
	emitOp(w, opcode.STORE)
}

// emitLoopIndex reads the loop index depth frames out from the
// innermost DO without disturbing the return stack: depth 0 is the
// current loop (I), 1 is the next one out (J), 2 the one beyond that
// (K). It pops the 2*depth cells sitting above the target index,
// peeks it, then restores exactly what it popped in the same order.
func emitLoopIndex(w *bytecode.Writer, depth int) {
	for i := 0; i < 2*depth; i++ {
		emitOp(w, opcode.FROMR)
	}
	emitOp(w, opcode.RFETCH)
	for i := 0; i < 2*depth; i++ {
		emitOp(w, opcode.SWAP)
		emitOp(w, opcode.TOR)
	}
}
