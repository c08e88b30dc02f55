// Package jit is the per-script "JIT context" of spec.md §4.4/§6: a
// compiled representation of a script's AST plus an executor. This
// repository targets no C compiler or MIR backend, so the JIT contract
// (symbol lookup by name, a BSS-resident stub address, indirect
// invocation across contexts) is satisfied instead by a bytecode chunk
// and stack-machine executor, grounded on the teacher's internal/vm
// package (internal/vm/chunk.go's Chunk/Constants/gob-Serialize shape).
package jit

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/lambda-lang/lambda/internal/item"
)

// Chunk is a sequence of bytecode instructions plus its constant pool,
// one per compiled function (including the synthetic top-level `main`).
// Grounded directly on vm.Chunk's shape: Code/Constants/Lines slices and
// a magic-number + version + gob Serialize/Deserialize format.
type Chunk struct {
	Code      []byte
	Constants []item.Item
	// Strings holds ByteBlock-class constants (STRING/SYMBOL/BINARY
	// literal text) indexed in parallel with Constants entries whose Tag
	// is a byte-block tag — Item itself cannot carry a Go string payload.
	Strings []string
	Lines   []int
	Name    string
}

func NewChunk(name string) *Chunk {
	return &Chunk{Code: make([]byte, 0, 256), Name: name}
}

func (c *Chunk) Write(b byte, line int) {
	c.Code = append(c.Code, b)
	c.Lines = append(c.Lines, line)
}

func (c *Chunk) WriteOp(op Opcode, line int) { c.Write(byte(op), line) }

func (c *Chunk) WriteUint16(v uint16, line int) {
	c.Write(byte(v>>8), line)
	c.Write(byte(v), line)
}

func (c *Chunk) ReadUint16(offset int) uint16 {
	return uint16(c.Code[offset])<<8 | uint16(c.Code[offset+1])
}

// AddConstant appends v (and, for byte-block tags, its backing string)
// to the pool and returns its index.
func (c *Chunk) AddConstant(v item.Item, s string) int {
	c.Constants = append(c.Constants, v)
	c.Strings = append(c.Strings, s)
	return len(c.Constants) - 1
}

func (c *Chunk) Len() int { return len(c.Code) }

const bytecodeMagic = "LAMB"
const bytecodeVersion = 0x01

// Serialize encodes c as magic + version + gob payload, mirroring the
// teacher's BytecodeFile framing (internal/vm/chunk.go Serialize).
func (c *Chunk) Serialize() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.WriteString(bytecodeMagic)
	buf.WriteByte(bytecodeVersion)
	enc := gob.NewEncoder(buf)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("jit: gob encode chunk: %w", err)
	}
	return buf.Bytes(), nil
}

// Deserialize reconstructs a Chunk previously written by Serialize.
func Deserialize(data []byte) (*Chunk, error) {
	if len(data) < len(bytecodeMagic)+1 {
		return nil, fmt.Errorf("jit: bytecode data too short")
	}
	if string(data[:len(bytecodeMagic)]) != bytecodeMagic {
		return nil, fmt.Errorf("jit: bad magic, expected %q", bytecodeMagic)
	}
	if data[len(bytecodeMagic)] != bytecodeVersion {
		return nil, fmt.Errorf("jit: unsupported bytecode version %d", data[len(bytecodeMagic)])
	}
	dec := gob.NewDecoder(bytes.NewReader(data[len(bytecodeMagic)+1:]))
	var c Chunk
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("jit: gob decode chunk: %w", err)
	}
	return &c, nil
}
