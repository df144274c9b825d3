package v4front

import "fmt"

// Kind enumerates every way a compile can fail. All are fatal: the
// first one encountered aborts the compile and every kind maps to
// exactly one cause, never a family of causes distinguished only by
// message text.
type Kind int

const (
	UnknownToken Kind = iota
	InvalidInteger
	OutOfMemory
	EmptyInput
	ControlDepthExceeded
	ElseWithoutIf
	DuplicateElse
	ThenWithoutIf
	UnclosedIf
	UntilWithoutBegin
	UnclosedBegin
	WhileWithoutBegin
	DuplicateWhile
	RepeatWithoutBegin
	RepeatWithoutWhile
	UntilAfterWhile
	AgainWithoutBegin
	AgainAfterWhile
	LoopWithoutDo
	PLoopWithoutDo
	LeaveWithoutDo
	LeaveDepthExceeded
	UnclosedDo
	NestedColon
	SemicolonWithoutColon
	ColonWithoutName
	UnclosedColon
	DuplicateWord
	DictionaryFull
	ConstantWithoutValue
	ConstantWithoutName
	VariableWithoutName
	UnterminatedComment
)

var kindNames = map[Kind]string{
	UnknownToken:          "UnknownToken",
	InvalidInteger:        "InvalidInteger",
	OutOfMemory:           "OutOfMemory",
	EmptyInput:            "EmptyInput",
	ControlDepthExceeded:  "ControlDepthExceeded",
	ElseWithoutIf:         "ElseWithoutIf",
	DuplicateElse:         "DuplicateElse",
	ThenWithoutIf:         "ThenWithoutIf",
	UnclosedIf:            "UnclosedIf",
	UntilWithoutBegin:     "UntilWithoutBegin",
	UnclosedBegin:         "UnclosedBegin",
	WhileWithoutBegin:     "WhileWithoutBegin",
	DuplicateWhile:        "DuplicateWhile",
	RepeatWithoutBegin:    "RepeatWithoutBegin",
	RepeatWithoutWhile:    "RepeatWithoutWhile",
	UntilAfterWhile:       "UntilAfterWhile",
	AgainWithoutBegin:     "AgainWithoutBegin",
	AgainAfterWhile:       "AgainAfterWhile",
	LoopWithoutDo:         "LoopWithoutDo",
	PLoopWithoutDo:        "PLoopWithoutDo",
	LeaveWithoutDo:        "LeaveWithoutDo",
	LeaveDepthExceeded:    "LeaveDepthExceeded",
	UnclosedDo:            "UnclosedDo",
	NestedColon:           "NestedColon",
	SemicolonWithoutColon: "SemicolonWithoutColon",
	ColonWithoutName:      "ColonWithoutName",
	UnclosedColon:         "UnclosedColon",
	DuplicateWord:         "DuplicateWord",
	DictionaryFull:        "DictionaryFull",
	ConstantWithoutValue:  "ConstantWithoutValue",
	ConstantWithoutName:   "ConstantWithoutName",
	VariableWithoutName:   "VariableWithoutName",
	UnterminatedComment:   "UnterminatedComment",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the concrete error type every fallible compiler operation
// returns. Msg may be empty; Kind alone is always enough for a caller
// to act on.
type Error struct {
	Kind  Kind
	Token string // offending token, when there is one
	Msg   string
}

func (e *Error) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %q", e.Kind, e.Msg, e.Token)
}

func errf(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func errTok(kind Kind, msg, token string) *Error {
	return &Error{Kind: kind, Msg: msg, Token: token}
}
