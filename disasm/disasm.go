// Package disasm decodes a flat bytecode buffer back into a sequence
// of human-readable instruction lines, using only the opcode table's
// mnemonic and immediate-shape information. It never needs to know
// anything about the source language, the dictionary, or control flow;
// it is a stateless walk over bytes that were already produced.
package disasm

import (
	"fmt"

	"github.com/V4-project/V4-front/opcode"
)

// Line is one decoded instruction: its address, how many bytes it
// occupied, and its formatted text.
type Line struct {
	PC       int
	Consumed int
	Text     string
}

// One decodes a single instruction starting at pc and returns the
// formatted line plus the number of bytes consumed. If pc is out of
// range it returns a zero Line and consumed=0.
func One(code []byte, pc int) (Line, int) {
	if pc < 0 || pc >= len(code) {
		return Line{}, 0
	}

	info := opcode.InfoFor(opcode.Op(code[pc]))
	consumed := 1

	imm := ""
	switch info.Kind {
	case opcode.None:
		// no operand

	case opcode.I8:
		if pc+consumed+1 <= len(code) {
			v := int8(code[pc+consumed])
			imm = fmt.Sprintf(" %d", v)
			consumed++
		} else {
			imm = " <trunc-i8>"
			consumed = len(code) - pc
		}

	case opcode.I16:
		if v, n, ok := readI16(code, pc+consumed); ok {
			imm = fmt.Sprintf(" %d", v)
			consumed += n
		} else {
			imm = " <trunc-i16>"
			consumed = len(code) - pc
		}

	case opcode.I32:
		if v, n, ok := readI32(code, pc+consumed); ok {
			imm = fmt.Sprintf(" %d", v)
			consumed += n
		} else {
			imm = " <trunc-i32>"
			consumed = len(code) - pc
		}

	case opcode.Rel16:
		if off, n, ok := readI16(code, pc+consumed); ok {
			target := pc + consumed + n + int(off)
			sign := ""
			if off >= 0 {
				sign = "+"
			}
			imm = fmt.Sprintf(" %s%d ; -> %04x", sign, off, target)
			consumed += n
		} else {
			imm = " <trunc-rel16>"
			consumed = len(code) - pc
		}

	case opcode.Idx16:
		if idx, n, ok := readU16(code, pc+consumed); ok {
			imm = fmt.Sprintf(" @%d", idx)
			consumed += n
		} else {
			imm = " <trunc-idx16>"
			consumed = len(code) - pc
		}
	}

	text := fmt.Sprintf("%04x: %-8s%s", pc, info.Name, imm)
	return Line{PC: pc, Consumed: consumed, Text: text}, consumed
}

// All decodes every instruction in code from pc 0 to the end,
// stopping early only if a decode step would consume zero bytes
// (which One never does for a pc within range).
func All(code []byte) []Line {
	var lines []Line
	pc := 0
	for pc < len(code) {
		line, n := One(code, pc)
		if n == 0 {
			break
		}
		lines = append(lines, line)
		pc += n
	}
	return lines
}

// Text is a convenience wrapper returning just the formatted lines.
func Text(code []byte) []string {
	lines := All(code)
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func readI16(code []byte, off int) (int16, int, bool) {
	if off+2 > len(code) {
		return 0, 0, false
	}
	v := uint16(code[off]) | uint16(code[off+1])<<8
	return int16(v), 2, true
}

func readU16(code []byte, off int) (uint16, int, bool) {
	if off+2 > len(code) {
		return 0, 0, false
	}
	return uint16(code[off]) | uint16(code[off+1])<<8, 2, true
}

func readI32(code []byte, off int) (int32, int, bool) {
	if off+4 > len(code) {
		return 0, 0, false
	}
	v := uint32(code[off]) | uint32(code[off+1])<<8 | uint32(code[off+2])<<16 | uint32(code[off+3])<<24
	return int32(v), 4, true
}
