package v4front

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// maxWords bounds the dictionary to what a 16-bit CALL index can
// address.
const maxWords = 1 << 16

// Definition is the tagged sum of everything a name in the dictionary
// can resolve to. Dispatch happens at the call site via a type switch,
// not through methods that act differently per variant — each variant
// is a plain data record.
type Definition interface {
	defName() string
}

// UserWord is a named subroutine introduced by ": name ... ;",
// called through the CALL opcode by its position among word entries
// only — constants and variables interleaved in the dictionary do not
// consume a CALL index.
type UserWord struct {
	Name  string
	Body  []byte
	Index int
}

func (w *UserWord) defName() string { return w.Name }

// Constant is a compile-time named literal. It has no runtime
// presence; every reference to it inlines Value.
type Constant struct {
	Name  string
	Value int32
}

func (c *Constant) defName() string { return c.Name }

// Variable is a named cell in the linear variable address space. It
// has no runtime presence either; every reference inlines Address.
type Variable struct {
	Name    string
	Address uint32
}

func (v *Variable) defName() string { return v.Name }

// Dictionary is the ordered, name-indexed table of definitions built
// up over one compile. Insertion order is significant: it fixes the
// CALL index of every UserWord, counted among UserWords alone so that
// a CONSTANT or VARIABLE declared between two word definitions never
// shifts either word's index.
type Dictionary struct {
	defs      []Definition
	byHash    map[uint64]int // hash of folded name -> index into defs
	baseAddr  uint32
	stride    uint32
	nextAddr  uint32
	wordCount int // UserWords seen so far; fixes CALL indices independent of constants/variables interleaved between them
}

// NewDictionary returns an empty Dictionary whose variable space starts
// at baseAddr and advances by stride bytes per VARIABLE.
func NewDictionary(baseAddr, stride uint32) *Dictionary {
	return &Dictionary{
		byHash:   make(map[uint64]int),
		baseAddr: baseAddr,
		stride:   stride,
		nextAddr: baseAddr,
	}
}

func foldName(name string) string {
	return strings.ToUpper(name)
}

func nameHash(folded string) uint64 {
	return xxhash.Sum64String(folded)
}

// Find looks up name case-insensitively.
func (d *Dictionary) Find(name string) (Definition, bool) {
	idx, ok := d.byHash[nameHash(foldName(name))]
	if !ok {
		return nil, false
	}
	return d.defs[idx], true
}

func (d *Dictionary) has(name string) bool {
	_, ok := d.Find(name)
	return ok
}

func (d *Dictionary) insert(def Definition) {
	idx := len(d.defs)
	d.defs = append(d.defs, def)
	d.byHash[nameHash(foldName(def.defName()))] = idx
}

// AddUserWord appends a completed word body to the dictionary and
// returns the new entry, whose Index is its CALL index.
func (d *Dictionary) AddUserWord(name string, body []byte) (*UserWord, error) {
	if d.has(name) {
		return nil, errTok(DuplicateWord, "word already defined", name)
	}
	if len(d.defs) >= maxWords {
		return nil, errf(DictionaryFull, "dictionary capacity exceeded")
	}
	w := &UserWord{Name: name, Body: body, Index: d.wordCount}
	d.wordCount++
	d.insert(w)
	return w, nil
}

// AddConstant records a compile-time constant.
func (d *Dictionary) AddConstant(name string, value int32) error {
	if d.has(name) {
		return errTok(DuplicateWord, "word already defined", name)
	}
	if len(d.defs) >= maxWords {
		return errf(DictionaryFull, "dictionary capacity exceeded")
	}
	d.insert(&Constant{Name: name, Value: value})
	return nil
}

// AddVariable allocates a fresh address and records the variable.
func (d *Dictionary) AddVariable(name string) (uint32, error) {
	if d.has(name) {
		return 0, errTok(DuplicateWord, "word already defined", name)
	}
	if len(d.defs) >= maxWords {
		return 0, errf(DictionaryFull, "dictionary capacity exceeded")
	}
	addr := d.nextAddr
	d.nextAddr += d.stride
	d.insert(&Variable{Name: name, Address: addr})
	return addr, nil
}

// UserWords returns every UserWord in insertion (CALL index) order.
func (d *Dictionary) UserWords() []*UserWord {
	out := make([]*UserWord, 0, len(d.defs))
	for _, def := range d.defs {
		if w, ok := def.(*UserWord); ok {
			out = append(out, w)
		}
	}
	return out
}
