package v4front

import (
	"strings"

	"github.com/V4-project/V4-front/bytecode"
	"github.com/V4-project/V4-front/lexer"
	"github.com/V4-project/V4-front/opcode"
)

// generator drives one compile from start to finish. It owns the
// dictionary, the control stack, the two possible emission cursors
// (main and, while inside a definition, the open word body), and the
// lexer feeding it tokens.
type generator struct {
	lex      *lexer.Lexer
	dict     *Dictionary
	ctrl     controlStack
	main     *bytecode.Writer
	wordBuf  *bytecode.Writer
	wordName string
	trace    *Trace
}

func newGenerator(source string, opts Options, trace *Trace) *generator {
	return &generator{
		lex:   lexer.New(source),
		dict:  NewDictionary(opts.VariableBase, opts.VariableStride),
		main:  bytecode.New(),
		trace: trace,
	}
}

// cursor returns the currently active emission target: the open word
// body if one exists, otherwise the main stream.
func (g *generator) cursor() *bytecode.Writer {
	if g.wordBuf != nil {
		return g.wordBuf
	}
	return g.main
}

// next pulls the next token, translating a comment-scanning failure
// into the one Kind the rest of the generator understands.
func (g *generator) next() (string, bool, error) {
	tok, ok, err := g.lex.Next()
	if err == lexer.ErrUnterminatedComment {
		return "", false, errf(UnterminatedComment, "block comment opened with '(' was never closed")
	}
	return tok, ok, err
}

// run consumes every token in source, dispatching each to exactly one
// handler, until the lexer is exhausted or a handler reports an error.
func (g *generator) run() error {
	for {
		tok, ok, err := g.next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := g.token(tok); err != nil {
			return err
		}
	}
}

// token dispatches one token through the priority cascade described in
// the code generator's component design: definition boundary,
// declarations, control words, dictionary lookup, literal, primitive,
// and finally UnknownToken.
func (g *generator) token(tok string) error {
	switch tok {
	case ":":
		return g.startDefinition()
	case ";":
		return g.endDefinition()
	}

	folded := strings.ToUpper(tok)
	switch folded {
	case "CONSTANT":
		return g.declareConstant()
	case "VARIABLE":
		return g.declareVariable()
	}

	if handled, err := g.controlWord(folded); handled {
		return err
	}

	if def, ok := g.dict.Find(tok); ok {
		return g.emitDictionaryHit(def)
	}

	if v, ok := parseLiteral(tok); ok {
		return g.emitLiteral(v)
	}

	if emit, ok := lookupPrimitive(tok); ok {
		emit(g.cursor())
		return nil
	}

	return errTok(UnknownToken, "not a known word, literal, or primitive", tok)
}

func (g *generator) startDefinition() error {
	if g.wordBuf != nil {
		return errf(NestedColon, "':' inside an open definition")
	}
	name, ok, err := g.next()
	if err != nil {
		return err
	}
	if !ok || name == "" {
		return errf(ColonWithoutName, "':' not followed by a name")
	}
	if g.dict.has(name) {
		return errTok(DuplicateWord, "word already defined", name)
	}
	g.wordName = name
	g.wordBuf = bytecode.New()
	g.trace.Event("open definition %q", name)
	return nil
}

func (g *generator) endDefinition() error {
	if g.wordBuf == nil {
		return errf(SemicolonWithoutColon, "';' outside any definition")
	}
	emitOp(g.wordBuf, opcode.RET)
	body := g.wordBuf.Detach()
	w, err := g.dict.AddUserWord(g.wordName, body)
	if err != nil {
		return err
	}
	g.trace.Event("close definition %q as word #%d (%d bytes)", w.Name, w.Index, len(body))
	g.wordBuf = nil
	g.wordName = ""
	return nil
}

func (g *generator) declareConstant() error {
	// CONSTANT always inspects and rewrites the main stream, even when
	// the generator is currently inside a definition: that is the
	// documented behavior, not an oversight.
	code := g.main.Bytes()
	pc, op, ok := lastMainInstruction(code)
	if !ok || op != opcode.LIT {
		return errf(ConstantWithoutValue, "CONSTANT must follow a literal push")
	}
	value := decodeI32LE(code[pc+1 : pc+5])
	g.main.Truncate(pc)

	name, ok, err := g.next()
	if err != nil {
		return err
	}
	if !ok || name == "" {
		return errf(ConstantWithoutName, "CONSTANT not followed by a name")
	}
	if err := g.dict.AddConstant(name, value); err != nil {
		return err
	}
	g.trace.Event("constant %q = %d", name, value)
	return nil
}

func (g *generator) declareVariable() error {
	name, ok, err := g.next()
	if err != nil {
		return err
	}
	if !ok || name == "" {
		return errf(VariableWithoutName, "VARIABLE not followed by a name")
	}
	addr, err := g.dict.AddVariable(name)
	if err != nil {
		return err
	}
	g.trace.Event("variable %q at 0x%x", name, addr)
	return nil
}

func (g *generator) emitDictionaryHit(def Definition) error {
	cur := g.cursor()
	switch d := def.(type) {
	case *UserWord:
		emitOp(cur, opcode.CALL)
		cur.EmitI16LE(int16(d.Index))
	case *Constant:
		g.emitLiteral(d.Value)
	case *Variable:
		g.emitLiteral(int32(d.Address))
	}
	return nil
}

func (g *generator) emitLiteral(v int32) error {
	cur := g.cursor()
	emitOp(cur, opcode.LIT)
	cur.EmitI32LE(v)
	return nil
}

func decodeI32LE(b []byte) int32 {
	return int32(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24)
}

// lastMainInstruction decodes code from byte 0 using the opcode table
// and returns the start pc and opcode of its final instruction. It
// walks the whole stream rather than pattern-matching a fixed number
// of trailing bytes, so an instruction's own immediate bytes can never
// be misread as a different opcode. ok is false for empty code.
func lastMainInstruction(code []byte) (pc int, op opcode.Op, ok bool) {
	walk := 0
	for walk < len(code) {
		info := opcode.InfoFor(opcode.Op(code[walk]))
		pc, op, ok = walk, info.Op, true
		walk += 1 + info.Kind.Size()
	}
	return pc, op, ok
}

// finish is called once the token stream is exhausted. It checks the
// closure invariants and appends a trailing RET to main unless the
// last instruction already transfers control unconditionally. An open
// control structure is reported before an open definition, by the tag
// of the outermost unclosed frame.
func (g *generator) finish() error {
	if !g.ctrl.empty() {
		switch g.ctrl.frames[0].kind {
		case frameIf:
			return errf(UnclosedIf, "IF left open at end of input")
		case frameBegin:
			return errf(UnclosedBegin, "BEGIN left open at end of input")
		case frameDo:
			return errf(UnclosedDo, "DO left open at end of input")
		}
	}
	if g.wordBuf != nil {
		return errf(UnclosedColon, "definition left open at end of input")
	}
	code := g.main.Bytes()
	if !endsInUnconditionalJump(code) {
		emitOp(g.main, opcode.RET)
	}
	return nil
}

// endsInUnconditionalJump reports whether code's last instruction is a
// bare JMP. It decodes from the start rather than indexing a fixed
// number of trailing bytes, so a JMP-shaped byte value sitting inside
// some other instruction's immediate is never mistaken for one.
func endsInUnconditionalJump(code []byte) bool {
	_, op, ok := lastMainInstruction(code)
	return ok && op == opcode.JMP
}
