package v4front

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/goforj/godump"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/ncruces/go-strftime"
	"golang.org/x/term"
)

// Trace is a leveled diagnostic writer observing the generator as it
// runs: dictionary insertions, control-frame pushes and pops, and
// backpatch events. It is entirely separate from the Error surface —
// nothing it writes ever changes whether a compile succeeds.
//
// The zero value writes nothing; every method is a safe no-op on a nil
// *Trace, so callers that don't want tracing never have to check for
// it.
type Trace struct {
	w    io.Writer
	id   string
	wide bool // writer is an interactive terminal worth width-sensitive dumps
}

// NewTrace returns a Trace that writes leveled lines to w, each tagged
// with a fresh correlation ID so that output from several concurrent
// Compile calls sharing w can be told apart.
func NewTrace(w io.Writer) *Trace {
	return &Trace{
		w:    w,
		id:   uuid.New().String()[:8],
		wide: isInteractive(w),
	}
}

func isInteractive(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) && term.IsTerminal(int(fd))
}

func (t *Trace) prefix() string {
	ts, err := strftime.Format("%H:%M:%S", time.Now())
	if err != nil {
		ts = time.Now().Format("15:04:05")
	}
	return fmt.Sprintf("%s [%s] ", ts, t.id)
}

// Event logs one line describing a generator-internal occurrence.
func (t *Trace) Event(format string, args ...any) {
	if t == nil || t.w == nil {
		return
	}
	fmt.Fprintf(t.w, t.prefix()+format+"\n", args...)
}

// Size logs a human-readable byte count, e.g. for the final main
// stream or a word body's length once known.
func (t *Trace) Size(label string, n int) {
	if t == nil || t.w == nil {
		return
	}
	t.Event("%s: %s", label, humanize.Bytes(uint64(n)))
}

// Dump pretty-prints an arbitrary snapshot (typically the dictionary or
// control stack) at the Trace level. On an interactive terminal it
// uses godump's rendering; on any other writer it falls back to a flat
// fmt "%+v" line, since there is no terminal width to size to.
func (t *Trace) Dump(label string, v any) {
	if t == nil || t.w == nil {
		return
	}
	t.Event("%s:", label)
	if t.wide {
		fmt.Fprint(t.w, godump.DumpStr(v))
		return
	}
	fmt.Fprintf(t.w, "%+v\n", v)
}
