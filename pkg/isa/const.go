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

package isa

const WORD_BITS = 25

const (
	FORMAT_INVALID Format = iota
	FORMAT_LI
	FORMAT_R4
	FORMAT_R3
)

const (
	FIELD_NONE FieldType = iota
	FIELD_TAG
	FIELD_OPCODE
	FIELD_INDEX
	FIELD_IMM
	FIELD_RS3
	FIELD_RS2
	FIELD_RS1
	FIELD_RD
	FIELD_COUNT
)

const (
	SLOT_REGISTER SlotKind = iota
	SLOT_IMMEDIATE
	SLOT_ZERO
)

// NOP_WORD is the fixed encoding of nop.
const NOP_WORD Word = 0b11 << (WORD_BITS - 2)

var layouts = map[Format][]Field{
	FORMAT_LI: {
		{FIELD_TAG, 1},
		{FIELD_INDEX, 3},
		{FIELD_IMM, 16},
		{FIELD_RD, 5},
	},
	FORMAT_R4: {
		{FIELD_TAG, 2},
		{FIELD_OPCODE, 3},
		{FIELD_RS3, 5},
		{FIELD_RS2, 5},
		{FIELD_RS1, 5},
		{FIELD_RD, 5},
	},
	FORMAT_R3: {
		{FIELD_TAG, 2},
		{FIELD_OPCODE, 8},
		{FIELD_RS2, 5},
		{FIELD_RS1, 5},
		{FIELD_RD, 5},
	},
}
