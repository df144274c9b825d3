package v4front

import (
	"encoding/binary"
	"fmt"
	"io"
)

var containerMagic = [4]byte{'V', '4', 'B', 'C'}

const (
	containerMajor = 1
	containerMinor = 0
)

// SaveArtifact writes a serializes an Artifact to w in the versioned
// V4BC container format: a small header, the main code, then the word
// table in dictionary order. It is a pure convenience layer over
// Artifact — nothing else in this package reads it back except
// LoadArtifact.
func SaveArtifact(w io.Writer, a *Artifact) error {
	header := make([]byte, 8)
	copy(header[0:4], containerMagic[:])
	header[4] = containerMajor
	header[5] = containerMinor
	// header[6:8] flags, reserved zero
	if _, err := w.Write(header); err != nil {
		return err
	}

	if err := writeU32(w, uint32(len(a.Main))); err != nil {
		return err
	}
	if _, err := w.Write(a.Main); err != nil {
		return err
	}

	if err := writeU32(w, uint32(len(a.Words))); err != nil {
		return err
	}
	for _, word := range a.Words {
		if err := writeU16(w, uint16(len(word.Name))); err != nil {
			return err
		}
		if _, err := io.WriteString(w, word.Name); err != nil {
			return err
		}
		if err := writeU32(w, uint32(len(word.Body))); err != nil {
			return err
		}
		if _, err := w.Write(word.Body); err != nil {
			return err
		}
	}
	return nil
}

// LoadArtifact reads back what SaveArtifact wrote. A magic mismatch and
// a version mismatch are reported as distinct errors; a truncated
// stream propagates io.ReadFull's error unchanged: io.ErrUnexpectedEOF
// when the cut falls inside a field, io.EOF when it falls exactly
// between two fields.
func LoadArtifact(r io.Reader) (*Artifact, error) {
	header := make([]byte, 8)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	if [4]byte(header[0:4]) != containerMagic {
		return nil, fmt.Errorf("container: bad magic %q", header[0:4])
	}
	major, minor := header[4], header[5]
	if major != containerMajor || minor != containerMinor {
		return nil, fmt.Errorf("container: unsupported version %d.%d", major, minor)
	}

	mainLen, err := readU32(r)
	if err != nil {
		return nil, err
	}
	main := make([]byte, mainLen)
	if _, err := io.ReadFull(r, main); err != nil {
		return nil, err
	}

	wordCount, err := readU32(r)
	if err != nil {
		return nil, err
	}
	words := make([]WordEntry, wordCount)
	for i := range words {
		nameLen, err := readU16(r)
		if err != nil {
			return nil, err
		}
		nameBytes := make([]byte, nameLen)
		if _, err := io.ReadFull(r, nameBytes); err != nil {
			return nil, err
		}
		bodyLen, err := readU32(r)
		if err != nil {
			return nil, err
		}
		body := make([]byte, bodyLen)
		if _, err := io.ReadFull(r, body); err != nil {
			return nil, err
		}
		words[i] = WordEntry{Name: string(nameBytes), Body: body}
	}

	return &Artifact{Main: main, Words: words}, nil
}

func writeU16(w io.Writer, v uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func writeU32(w io.Writer, v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func readU16(r io.Reader) (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

func readU32(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}
