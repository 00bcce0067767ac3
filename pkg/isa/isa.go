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

// Package isa describes the instruction set of the multimedia ALU.
//
// Every instruction is a 25-bit word made of a 1 or 2 bit format tag, an
// opcode or function field and a list of operand fields. The layout of each
// format is described by a list of fields, MSB first:
//
//	LI  |0|index(3)|imm(16)          |rd(5)|
//	R4  |10|func(3)|rs3(5)|rs2(5)|rs1(5)|rd(5)|
//	R3  |11|opcode(8)   |rs2(5)|rs1(5)|rd(5)|
//
// The R3 rs2 field is also used as a 5 bit immediate by shrhi and mlhcu.
package isa

import (
	"fmt"
	"strings"

	"github.com/lassandro/mmasm/pkg/encoding"
)

type Format uint
type FieldType uint
type SlotKind uint

// Word holds an encoded instruction in its low WORD_BITS bits.
type Word uint32

func (w Word) String() string {
	return encoding.Bits(uint32(w), WORD_BITS)
}

type Field struct {
	Type  FieldType
	Width uint
}

// Slot is a positional operand of an instruction as written in the source.
type Slot struct {
	Field FieldType
	Kind  SlotKind
}

func (slot Slot) String() string {
	if slot.Kind == SLOT_IMMEDIATE && slot.Field == FIELD_RS2 {
		return "imm5"
	}

	return slot.Field.String()
}

// Descriptor ties a mnemonic to its format, opcode and operand slots.
// Descriptors are shared and must not be modified.
type Descriptor struct {
	Mnemonic string
	Format   Format
	Opcode   uint32
	Slots    []Slot

	// Fixed instructions assemble to their format's fixed word and take no
	// operands.
	Fixed bool
}

// Operands returns the number of operand tokens the instruction consumes.
func (desc *Descriptor) Operands() int {
	count := 0

	for _, slot := range desc.Slots {
		if slot.Kind != SLOT_ZERO {
			count++
		}
	}

	return count
}

// Slot returns the slot bound to the given field, if any.
func (desc *Descriptor) Slot(field FieldType) (Slot, bool) {
	for _, slot := range desc.Slots {
		if slot.Field == field {
			return slot, true
		}
	}

	return Slot{}, false
}

func (desc *Descriptor) String() string {
	operands := make([]string, 0, len(desc.Slots))

	for _, slot := range desc.Slots {
		if slot.Kind == SLOT_ZERO {
			continue
		}

		operands = append(operands, slot.String())
	}

	return fmt.Sprintf(
		"%-8s %-3s %s %s  (%s)",
		desc.Mnemonic,
		desc.Format,
		encoding.Bits(desc.Format.Tag(), desc.Format.TagWidth()),
		encoding.Bits(desc.Opcode, desc.Format.OpcodeWidth()),
		strings.Join(operands, ", "),
	)
}

// Tag returns the value of the format tag.
func (format Format) Tag() uint32 {
	switch format {
	case FORMAT_LI:
		return 0b0
	case FORMAT_R4:
		return 0b10
	case FORMAT_R3:
		return 0b11
	}

	return 0
}

func (format Format) TagWidth() uint {
	return format.Width(FIELD_TAG)
}

func (format Format) OpcodeWidth() uint {
	return format.Width(FIELD_OPCODE)
}

// Layout returns the fields of the format in MSB to LSB order.
func (format Format) Layout() []Field {
	return layouts[format]
}

// Shift returns the LSB position of a field within the word.
func (format Format) Shift(field FieldType) (uint, bool) {
	var shift uint = WORD_BITS

	for _, f := range format.Layout() {
		shift -= f.Width

		if f.Type == field {
			return shift, true
		}
	}

	return 0, false
}

// Width returns the width of a field, or 0 if the format has no such field.
func (format Format) Width(field FieldType) uint {
	for _, f := range format.Layout() {
		if f.Type == field {
			return f.Width
		}
	}

	return 0
}

func (format Format) String() string {
	switch format {
	case FORMAT_LI:
		return "LI"
	case FORMAT_R4:
		return "R4"
	case FORMAT_R3:
		return "R3"
	}

	return "<invalid>"
}

// FormatOf identifies the format of an encoded word from its tag bits.
func FormatOf(word Word) Format {
	if (word>>(WORD_BITS-1))&0b1 == 0 {
		return FORMAT_LI
	}

	if (word>>(WORD_BITS-2))&0b1 == 0 {
		return FORMAT_R4
	}

	return FORMAT_R3
}

func (field FieldType) String() string {
	switch field {
	case FIELD_TAG:
		return "tag"
	case FIELD_OPCODE:
		return "opcode"
	case FIELD_INDEX:
		return "index"
	case FIELD_IMM:
		return "imm"
	case FIELD_RS3:
		return "rs3"
	case FIELD_RS2:
		return "rs2"
	case FIELD_RS1:
		return "rs1"
	case FIELD_RD:
		return "rd"
	}

	return "<invalid>"
}
