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

import "sort"

var (
	rd    = Slot{FIELD_RD, SLOT_REGISTER}
	rs1   = Slot{FIELD_RS1, SLOT_REGISTER}
	rs2   = Slot{FIELD_RS2, SLOT_REGISTER}
	rs3   = Slot{FIELD_RS3, SLOT_REGISTER}
	imm16 = Slot{FIELD_IMM, SLOT_IMMEDIATE}
	index = Slot{FIELD_INDEX, SLOT_IMMEDIATE}
	imm5  = Slot{FIELD_RS2, SLOT_IMMEDIATE}
	zero  = Slot{FIELD_RS2, SLOT_ZERO}
)

var (
	liSlots    = []Slot{rd, imm16, index}
	r4Slots    = []Slot{rd, rs1, rs2, rs3}
	r3Slots    = []Slot{rd, rs1, rs2}
	r3ImmSlots = []Slot{rd, rs1, imm5}
	r2Slots    = []Slot{rd, rs1, zero}
)

var descriptors = []Descriptor{
	// Load immediate
	{Mnemonic: "li", Format: FORMAT_LI, Slots: liSlots},

	// Signed (long) integer multiply-add/subtract low/high with saturation
	{Mnemonic: "simals", Format: FORMAT_R4, Opcode: 0b000, Slots: r4Slots},
	{Mnemonic: "simahs", Format: FORMAT_R4, Opcode: 0b001, Slots: r4Slots},
	{Mnemonic: "simsls", Format: FORMAT_R4, Opcode: 0b010, Slots: r4Slots},
	{Mnemonic: "simshs", Format: FORMAT_R4, Opcode: 0b011, Slots: r4Slots},
	{Mnemonic: "slimals", Format: FORMAT_R4, Opcode: 0b100, Slots: r4Slots},
	{Mnemonic: "slimahs", Format: FORMAT_R4, Opcode: 0b101, Slots: r4Slots},
	{Mnemonic: "slimsls", Format: FORMAT_R4, Opcode: 0b110, Slots: r4Slots},
	{Mnemonic: "slimshs", Format: FORMAT_R4, Opcode: 0b111, Slots: r4Slots},

	// ALU
	{Mnemonic: "nop", Format: FORMAT_R3, Opcode: 0b00000000, Fixed: true},
	{Mnemonic: "shrhi", Format: FORMAT_R3, Opcode: 0b00000001, Slots: r3ImmSlots},
	{Mnemonic: "au", Format: FORMAT_R3, Opcode: 0b00000010, Slots: r3Slots},
	{Mnemonic: "cnt1h", Format: FORMAT_R3, Opcode: 0b00000011, Slots: r2Slots},
	{Mnemonic: "ahs", Format: FORMAT_R3, Opcode: 0b00000100, Slots: r3Slots},
	{Mnemonic: "or", Format: FORMAT_R3, Opcode: 0b00000101, Slots: r3Slots},
	{Mnemonic: "bcw", Format: FORMAT_R3, Opcode: 0b00000110, Slots: r3Slots},
	{Mnemonic: "maxws", Format: FORMAT_R3, Opcode: 0b00000111, Slots: r3Slots},
	{Mnemonic: "minws", Format: FORMAT_R3, Opcode: 0b00001000, Slots: r3Slots},
	{Mnemonic: "mlhu", Format: FORMAT_R3, Opcode: 0b00001001, Slots: r3Slots},
	{Mnemonic: "mlhcu", Format: FORMAT_R3, Opcode: 0b00001010, Slots: r3ImmSlots},
	{Mnemonic: "and", Format: FORMAT_R3, Opcode: 0b00001011, Slots: r3Slots},
	{Mnemonic: "clzw", Format: FORMAT_R3, Opcode: 0b00001100, Slots: r2Slots},
	{Mnemonic: "rotw", Format: FORMAT_R3, Opcode: 0b00001101, Slots: r3Slots},
	{Mnemonic: "sfwu", Format: FORMAT_R3, Opcode: 0b00001110, Slots: r3Slots},
	{Mnemonic: "sfhs", Format: FORMAT_R3, Opcode: 0b00001111, Slots: r3Slots},
}

type opcodeKey struct {
	Format Format
	Opcode uint32
}

var (
	byMnemonic = make(map[string]*Descriptor, len(descriptors))
	byOpcode   = make(map[opcodeKey]*Descriptor, len(descriptors))
)

func init() {
	for i := range descriptors {
		desc := &descriptors[i]

		if _, exists := byMnemonic[desc.Mnemonic]; exists {
			panic("isa: duplicate mnemonic " + desc.Mnemonic)
		}

		key := opcodeKey{desc.Format, desc.Opcode}

		if _, exists := byOpcode[key]; exists {
			panic("isa: duplicate opcode for " + desc.Mnemonic)
		}

		byMnemonic[desc.Mnemonic] = desc
		byOpcode[key] = desc
	}
}

// Lookup resolves a mnemonic. Matching is exact and case-sensitive.
func Lookup(mnemonic string) (*Descriptor, bool) {
	desc, ok := byMnemonic[mnemonic]
	return desc, ok
}

// LookupOpcode resolves the descriptor encoded by a format and its opcode
// field. LI has no opcode field and is found with opcode 0.
func LookupOpcode(format Format, opcode uint32) (*Descriptor, bool) {
	desc, ok := byOpcode[opcodeKey{format, opcode}]
	return desc, ok
}

// Mnemonics returns every known mnemonic in sorted order.
func Mnemonics() []string {
	result := make([]string, 0, len(byMnemonic))

	for mnemonic := range byMnemonic {
		result = append(result, mnemonic)
	}

	sort.Strings(result)
	return result
}

// Descriptors returns the instruction table in format and opcode order.
func Descriptors() []*Descriptor {
	result := make([]*Descriptor, 0, len(descriptors))

	for i := range descriptors {
		result = append(result, &descriptors[i])
	}

	return result
}
