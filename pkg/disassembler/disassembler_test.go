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

package disassembler_test

import (
	"bytes"
	"fmt"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lassandro/mmasm/pkg/assembler"
	"github.com/lassandro/mmasm/pkg/disassembler"
	"github.com/lassandro/mmasm/pkg/isa"
)

var _ = Describe("Decode", func() {
	Describe("Load immediate", func() {
		// li r3 1000 2 -> 0 010 0000001111101000 00011
		It("should decode li r3 1000 2", func() {
			inst, err := disassembler.DecodeString("0010000000111110100000011")

			Expect(err).ToNot(HaveOccurred())
			Expect(inst.Descriptor.Mnemonic).To(Equal("li"))
			Expect(inst.Descriptor.Format).To(Equal(isa.FORMAT_LI))
			Expect(inst.Rd).To(Equal(uint8(3)))
			Expect(inst.Imm).To(Equal(uint16(1000)))
			Expect(inst.Index).To(Equal(uint8(2)))
			Expect(inst.String()).To(Equal("li r3 1000 2"))
		})

		// li r1 -1 7 -> 0 111 1111111111111111 00001
		It("should show the immediate as signed", func() {
			inst, err := disassembler.DecodeString("0111111111111111111100001")

			Expect(err).ToNot(HaveOccurred())
			Expect(inst.Imm).To(Equal(uint16(0xFFFF)))
			Expect(inst.Signed(isa.FIELD_IMM)).To(Equal(int64(-1)))
			Expect(inst.Index).To(Equal(uint8(7)))
		})
	})

	Describe("Quad register", func() {
		// simals r1 r2 r3 r4 -> 10 000 00100 00011 00010 00001
		It("should decode simals r1 r2 r3 r4", func() {
			inst, err := disassembler.DecodeString("1000000100000110001000001")

			Expect(err).ToNot(HaveOccurred())
			Expect(inst.Descriptor.Mnemonic).To(Equal("simals"))
			Expect(inst.Descriptor.Format).To(Equal(isa.FORMAT_R4))
			Expect(inst.Rd).To(Equal(uint8(1)))
			Expect(inst.Rs1).To(Equal(uint8(2)))
			Expect(inst.Rs2).To(Equal(uint8(3)))
			Expect(inst.Rs3).To(Equal(uint8(4)))
			Expect(inst.String()).To(Equal("simals r1 r2 r3 r4"))
		})

		// slimshs r31 r30 r29 r28 -> 10 111 11100 11101 11110 11111
		It("should decode slimshs r31 r30 r29 r28", func() {
			inst, err := disassembler.DecodeString("1011111100111011111011111")

			Expect(err).ToNot(HaveOccurred())
			Expect(inst.String()).To(Equal("slimshs r31 r30 r29 r28"))
		})
	})

	Describe("Triple register", func() {
		// au r1 r2 r3 -> 11 00000010 00011 00010 00001
		It("should decode au r1 r2 r3", func() {
			inst, err := disassembler.Decode(0b11_00000010_00011_00010_00001)

			Expect(err).ToNot(HaveOccurred())
			Expect(inst.Descriptor.Mnemonic).To(Equal("au"))
			Expect(inst.Descriptor.Opcode).To(Equal(uint32(0b00000010)))
			Expect(inst.Rd).To(Equal(uint8(1)))
			Expect(inst.Rs1).To(Equal(uint8(2)))
			Expect(inst.Rs2).To(Equal(uint8(3)))
		})

		// clzw r5 r6 -> 11 00001100 00000 00110 00101
		It("should drop the implicit register of clzw", func() {
			inst, err := disassembler.DecodeString("1100001100000000011000101")

			Expect(err).ToNot(HaveOccurred())
			Expect(inst.String()).To(Equal("clzw r5 r6"))
		})

		// mlhcu r1 r2 31 -> 11 00001010 11111 00010 00001
		It("should decode the immediate of mlhcu", func() {
			inst, err := disassembler.DecodeString("1100001010111110001000001")

			Expect(err).ToNot(HaveOccurred())
			Expect(inst.String()).To(Equal("mlhcu r1 r2 31"))
			Expect(inst.Signed(isa.FIELD_RS2)).To(Equal(int64(-1)))
		})

		It("should decode nop", func() {
			inst, err := disassembler.Decode(isa.NOP_WORD)

			Expect(err).ToNot(HaveOccurred())
			Expect(inst.String()).To(Equal("nop"))
		})
	})

	Describe("Invalid words", func() {
		It("should reject unknown R3 opcodes", func() {
			_, err := disassembler.DecodeString("1111111111000000000000000")

			var opcodeErr *disassembler.UnknownOpcodeError
			Expect(err).To(BeAssignableToTypeOf(opcodeErr))
			Expect(err.Error()).To(ContainSubstring("11111111"))
		})

		It("should reject nop with operands", func() {
			_, err := disassembler.DecodeString("1100000000000000000000001")

			Expect(err).To(BeAssignableToTypeOf(&disassembler.InvalidEncodingError{}))
		})

		It("should reject a nonzero implicit register", func() {
			_, err := disassembler.DecodeString("1100001100000010011000101")

			Expect(err).To(BeAssignableToTypeOf(&disassembler.InvalidEncodingError{}))
		})

		It("should reject words wider than 25 bits", func() {
			_, err := disassembler.Decode(1 << isa.WORD_BITS)

			Expect(err).To(BeAssignableToTypeOf(&disassembler.InvalidEncodingError{}))
		})

		DescribeTable("should reject malformed words",
			func(text string) {
				_, err := disassembler.DecodeString(text)

				Expect(err).To(BeAssignableToTypeOf(&disassembler.InvalidWordError{}))
			},
			Entry("empty", ""),
			Entry("short", "110000000000000000000000"),
			Entry("long", "11000000000000000000000000"),
			Entry("not binary", "1100000000000000000000002"),
		)
	})

	Describe("Round trip", func() {
		It("should recover every in-range instruction", func() {
			for _, desc := range isa.Descriptors() {
				var source string

				switch {
				case desc.Fixed:
					source = desc.Mnemonic
				case desc.Format == isa.FORMAT_LI:
					source = "li r17 54321 5"
				default:
					operands := make([]string, 0, desc.Operands()+1)
					operands = append(operands, desc.Mnemonic)

					for i, slot := range desc.Slots {
						switch slot.Kind {
						case isa.SLOT_REGISTER:
							operands = append(operands, fmt.Sprintf("r%d", 31-i*3))
						case isa.SLOT_IMMEDIATE:
							operands = append(operands, "19")
						}
					}

					source = strings.Join(operands, " ")
				}

				word, err := assembler.EncodeLine(strings.Fields(source))
				Expect(err).ToNot(HaveOccurred(), source)

				inst, err := disassembler.DecodeString(word)
				Expect(err).ToNot(HaveOccurred(), source)
				Expect(inst.Descriptor).To(BeIdenticalTo(desc))
				Expect(inst.Word.String()).To(Equal(word))
				Expect(inst.String()).To(Equal(source))
			}
		})

		It("should recover every register", func() {
			for r := 0; r < 32; r++ {
				source := fmt.Sprintf("simshs r%d r%d r%d r%d", r, 31-r, (r+7)%32, (r+13)%32)

				word, err := assembler.EncodeLine(strings.Fields(source))
				Expect(err).ToNot(HaveOccurred())

				inst, err := disassembler.DecodeString(word)
				Expect(err).ToNot(HaveOccurred())
				Expect(inst.String()).To(Equal(source))
			}
		})
	})
})

var _ = Describe("Disassemble", func() {
	It("should disassemble a program in order", func() {
		source := "li r3 1000 2\nau r1 r2 r3\nclzw r5 r6\nnop\nsimals r1 r2 r3 r4\n"

		var machine bytes.Buffer
		count, err := assembler.Assemble(strings.NewReader(source), &machine)
		Expect(err).ToNot(HaveOccurred())
		Expect(count).To(Equal(5))

		var output bytes.Buffer
		count, err = disassembler.Disassemble(&machine, &output)
		Expect(err).ToNot(HaveOccurred())
		Expect(count).To(Equal(5))
		Expect(output.String()).To(Equal(source))
	})

	It("should skip blank lines and surrounding whitespace", func() {
		var output bytes.Buffer

		count, err := disassembler.Disassemble(
			strings.NewReader("\n  1100000000000000000000000\r\n\n"), &output,
		)

		Expect(err).ToNot(HaveOccurred())
		Expect(count).To(Equal(1))
		Expect(output.String()).To(Equal("nop\n"))
	})

	It("should stop at the first bad line without output", func() {
		var output bytes.Buffer

		_, err := disassembler.Disassemble(
			strings.NewReader("1100000000000000000000000\n1111111111000000000000000\n"),
			&output,
		)

		var lineErr *disassembler.LineError
		Expect(err).To(BeAssignableToTypeOf(lineErr))
		Expect(err.(*disassembler.LineError).Line).To(Equal(2))
		Expect(output.Len()).To(BeZero())

		_, err = disassembler.Disassemble(strings.NewReader("nop\n"), &output)
		Expect(err).To(BeAssignableToTypeOf(&disassembler.InvalidWordError{}))
		Expect(err.(*disassembler.InvalidWordError).Line).To(Equal(1))
	})
})
