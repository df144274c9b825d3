package v4front

// WordEntry is one compiled user word: its dictionary name and its
// finished body, RET-terminated. Its position in Artifact.Words is the
// Idx16 operand every CALL referencing it carries.
type WordEntry struct {
	Name string
	Body []byte
}

// Artifact is everything a compile produces: the main bytecode stream
// and every user word's body, in dictionary (CALL index) order.
// Variables and constants leave no trace here — every reference to one
// was already inlined as a literal by the generator.
type Artifact struct {
	Main  []byte
	Words []WordEntry
}

// Compile lowers source into an Artifact using the default address
// layout and no tracing.
func Compile(source string) (*Artifact, error) {
	return CompileWithOptions(source, DefaultOptions(), nil)
}

// CompileWithOptions is the full entry point: opts controls the
// VARIABLE address space, and a non-nil trace receives a running log
// of dictionary and control-flow events. Passing a nil trace disables
// tracing entirely at zero cost.
func CompileWithOptions(source string, opts Options, trace *Trace) (*Artifact, error) {
	g := newGenerator(source, opts.normalize(), trace)

	if err := g.run(); err != nil {
		return nil, err
	}
	if err := g.finish(); err != nil {
		return nil, err
	}

	trace.Size("main", g.main.Len())

	words := g.dict.UserWords()
	out := &Artifact{
		Main:  g.main.Detach(),
		Words: make([]WordEntry, len(words)),
	}
	for i, w := range words {
		out.Words[i] = WordEntry{Name: w.Name, Body: w.Body}
	}
	return out, nil
}
