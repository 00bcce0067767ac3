// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package disassembler decodes multimedia ALU machine words back into
// assembly source.
//
// Usage:
//
//	inst, err := disassembler.Decode(0b11_00000010_00011_00010_00001)
//	fmt.Println(inst) // au r1 r2 r3
package disassembler

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lassandro/mmasm/pkg/encoding"
	"github.com/lassandro/mmasm/pkg/isa"
)

// Instruction is a decoded machine word.
type Instruction struct {
	Descriptor *isa.Descriptor
	Word       isa.Word

	Rd  uint8 // Destination register
	Rs1 uint8 // First source register
	Rs2 uint8 // Second source register, or 5 bit immediate
	Rs3 uint8 // Third source register (R4 only)

	Imm   uint16 // Load immediate value
	Index uint8  // Load immediate index
}

// Field returns the raw value of a decoded field.
func (inst *Instruction) Field(field isa.FieldType) uint32 {
	switch field {
	case isa.FIELD_TAG:
		return inst.Descriptor.Format.Tag()
	case isa.FIELD_OPCODE:
		return inst.Descriptor.Opcode
	case isa.FIELD_INDEX:
		return uint32(inst.Index)
	case isa.FIELD_IMM:
		return uint32(inst.Imm)
	case isa.FIELD_RS3:
		return uint32(inst.Rs3)
	case isa.FIELD_RS2:
		return uint32(inst.Rs2)
	case isa.FIELD_RS1:
		return uint32(inst.Rs1)
	case isa.FIELD_RD:
		return uint32(inst.Rd)
	}

	return 0
}

// String renders the instruction as assembly source that assembles back
// into the same word.
func (inst *Instruction) String() string {
	desc := inst.Descriptor
	parts := make([]string, 0, len(desc.Slots)+1)
	parts = append(parts, desc.Mnemonic)

	for _, slot := range desc.Slots {
		switch slot.Kind {
		case isa.SLOT_REGISTER:
			parts = append(parts, fmt.Sprintf("r%d", inst.Field(slot.Field)))
		case isa.SLOT_IMMEDIATE:
			parts = append(parts, strconv.FormatUint(uint64(inst.Field(slot.Field)), 10))
		}
	}

	return strings.Join(parts, " ")
}

// Signed returns an immediate field interpreted as a two's complement value.
func (inst *Instruction) Signed(field isa.FieldType) int64 {
	return encoding.SignExtend(inst.Field(field), inst.Descriptor.Format.Width(field))
}

type UnknownOpcodeError struct {
	Word   isa.Word
	Format isa.Format
	Opcode uint32
}

func (err *UnknownOpcodeError) Error() string {
	return fmt.Sprintf(
		"Unknown %s opcode %s in word %s",
		err.Format,
		encoding.Bits(err.Opcode, err.Format.OpcodeWidth()),
		err.Word,
	)
}

type InvalidEncodingError struct {
	Word   isa.Word
	Reason string
}

func (err *InvalidEncodingError) Error() string {
	return fmt.Sprintf("Invalid word %s: %s", err.Word, err.Reason)
}

type InvalidWordError struct {
	Line     int
	Received string
}

func (err *InvalidWordError) Error() string {
	return fmt.Sprintf(
		"%02d: Invalid machine word '%s'\n\twant:%d binary digits",
		err.Line,
		err.Received,
		isa.WORD_BITS,
	)
}

type LineError struct {
	Line int
	Err  error
}

func (err *LineError) Error() string {
	return fmt.Sprintf("%02d: %v", err.Line, err.Err)
}

func (err *LineError) Unwrap() error {
	return err.Err
}

// Decode splits a word into the fields of its format and resolves the
// instruction from its tag and opcode.
func Decode(word isa.Word) (*Instruction, error) {
	if word>>isa.WORD_BITS != 0 {
		return nil, &InvalidEncodingError{word, "wider than 25 bits"}
	}

	format := isa.FormatOf(word)

	var fields [isa.FIELD_COUNT]uint32

	for _, field := range format.Layout() {
		shift, _ := format.Shift(field.Type)
		fields[field.Type] = uint32(word>>shift) & ((1 << field.Width) - 1)
	}

	desc, ok := isa.LookupOpcode(format, fields[isa.FIELD_OPCODE])

	if !ok {
		return nil, &UnknownOpcodeError{word, format, fields[isa.FIELD_OPCODE]}
	}

	if desc.Fixed {
		if word != isa.NOP_WORD {
			return nil, &InvalidEncodingError{word, desc.Mnemonic + " with operands"}
		}
	} else if slot, ok := desc.Slot(isa.FIELD_RS2); ok && slot.Kind == isa.SLOT_ZERO {
		if fields[isa.FIELD_RS2] != 0 {
			return nil, &InvalidEncodingError{word, desc.Mnemonic + " with a nonzero rs2 field"}
		}
	}

	return &Instruction{
		Descriptor: desc,
		Word:       word,
		Rd:         uint8(fields[isa.FIELD_RD]),
		Rs1:        uint8(fields[isa.FIELD_RS1]),
		Rs2:        uint8(fields[isa.FIELD_RS2]),
		Rs3:        uint8(fields[isa.FIELD_RS3]),
		Imm:        uint16(fields[isa.FIELD_IMM]),
		Index:      uint8(fields[isa.FIELD_INDEX]),
	}, nil
}

// DecodeString decodes a word written as binary digits, MSB first.
func DecodeString(s string) (*Instruction, error) {
	if len(s) != isa.WORD_BITS {
		return nil, &InvalidWordError{Received: s}
	}

	value, err := encoding.ParseBits(s)

	if err != nil {
		return nil, &InvalidWordError{Received: s}
	}

	return Decode(isa.Word(value))
}

// Disassemble reads one binary word per line and writes one instruction
// per line. Blank lines are skipped. Nothing is written unless every word
// decodes.
func Disassemble(input io.Reader, output io.Writer) (int, error) {
	var buffer bytes.Buffer
	var scanner = bufio.NewScanner(input)

	count := 0
	line := 0

	for scanner.Scan() {
		line++

		text := strings.TrimSpace(scanner.Text())

		if text == "" {
			continue
		}

		inst, err := DecodeString(text)

		if wordErr, ok := err.(*InvalidWordError); ok {
			wordErr.Line = line
			return 0, wordErr
		} else if err != nil {
			return 0, &LineError{line, err}
		}

		buffer.WriteString(inst.String())
		buffer.WriteByte('\n')
		count++
	}

	if err := scanner.Err(); err != nil {
		return 0, err
	}

	if _, err := output.Write(buffer.Bytes()); err != nil {
		return 0, err
	}

	return count, nil
}
