package v4front

// Options configures the one tunable surface the compiler exposes: the
// linear address space VARIABLE draws from. Everything else about a
// compile is fixed by the language.
type Options struct {
	// VariableBase is the address the first VARIABLE receives.
	// Defaults to 0x10000 when zero.
	VariableBase uint32
	// VariableStride is the byte distance between successive
	// VARIABLE addresses. Defaults to 4 when zero.
	VariableStride uint32
}

// DefaultOptions returns the compiler's standard address-space layout.
func DefaultOptions() Options {
	return Options{VariableBase: 0x10000, VariableStride: 4}
}

func (o Options) normalize() Options {
	if o.VariableBase == 0 {
		o.VariableBase = 0x10000
	}
	if o.VariableStride == 0 {
		o.VariableStride = 4
	}
	return o
}
