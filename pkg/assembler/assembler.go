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

// Package assembler translates multimedia ALU assembly into 25-bit machine
// words, one word per instruction.
//
// Source is a stream of whitespace delimited tokens. Each instruction is a
// mnemonic followed by exactly as many operands as the mnemonic takes, so
// line breaks are not significant. A ';' starts a comment that runs to the
// end of the line.
package assembler

import (
	"bytes"
	"errors"
	"io"

	"github.com/lassandro/mmasm/pkg/encoding"
	"github.com/lassandro/mmasm/pkg/isa"
)

// EncodeInstruction packs an instruction whose operands have already been
// read. Operands are given in source order.
func EncodeInstruction(desc *isa.Descriptor, operands []Token) (isa.Word, error) {
	if count := desc.Operands(); len(operands) != count {
		var position Cursor

		if len(operands) > 0 {
			position = operands[0].Position
		}

		return 0, &InvalidNumArgumentsError{position, count, len(operands)}
	}

	if desc.Fixed {
		return isa.NOP_WORD, nil
	}

	var fields [isa.FIELD_COUNT]uint32
	fields[isa.FIELD_TAG] = desc.Format.Tag()
	fields[isa.FIELD_OPCODE] = desc.Opcode

	next := 0

	for _, slot := range desc.Slots {
		if slot.Kind == isa.SLOT_ZERO {
			fields[slot.Field] = 0
			continue
		}

		value, err := encodeOperand(desc.Format, slot, &operands[next])

		if err != nil {
			return 0, err
		}

		fields[slot.Field] = value
		next++
	}

	var word isa.Word = 0

	for _, field := range desc.Format.Layout() {
		word <<= field.Width
		word |= isa.Word(fields[field.Type] & ((1 << field.Width) - 1))
	}

	return word, nil
}

func encodeOperand(format isa.Format, slot isa.Slot, token *Token) (uint32, error) {
	switch slot.Kind {
	case isa.SLOT_REGISTER:
		reg, err := encoding.DecodeRegister(token.Value)

		if errors.Is(err, encoding.ErrRegisterRange) {
			return 0, &OperandOutOfRangeError{token.Position, token.Value}
		} else if err != nil {
			return 0, &MalformedOperandError{token.Position, token.Value, err}
		}

		return uint32(reg), nil

	case isa.SLOT_IMMEDIATE:
		value, err := encoding.DecodeInt(token.Value)

		if err != nil {
			return 0, &MalformedOperandError{token.Position, token.Value, err}
		}

		// Out of range immediates wrap rather than fail
		return encoding.Truncate(value, format.Width(slot.Field)), nil
	}

	return 0, nil
}

// EncodeLine assembles a single instruction given as a token list, mnemonic
// first, and returns the word as a string of binary digits.
func EncodeLine(tokens []string) (string, error) {
	line := make([]Token, 0, len(tokens))
	column := 1

	for _, value := range tokens {
		line = append(line, Token{
			Position: Cursor{
				Line:   1,
				Column: column,
				Byte:   int64(column - 1),
				Size:   int64(len(value)),
			},
			Value: value,
		})

		column += len(value) + 1
	}

	if len(line) == 0 {
		return "", &UnknownMnemonicError{Cursor{Line: 1, Column: 1}, ""}
	}

	keyword := line[0]
	desc, ok := isa.Lookup(keyword.Value)

	if !ok {
		return "", &UnknownMnemonicError{keyword.Position, keyword.Value}
	}

	if count := desc.Operands(); len(line)-1 != count {
		return "", &InvalidNumArgumentsError{
			keyword.Position, count, len(line) - 1,
		}
	}

	word, err := EncodeInstruction(desc, line[1:])

	if err != nil {
		return "", err
	}

	return word.String(), nil
}

// ReadInstruction reads and encodes the next instruction. It returns io.EOF
// when the input holds no further tokens.
func (reader *TokenReader) ReadInstruction() (*Instruction, error) {
	keyword, err := reader.Next()

	if err != nil {
		return nil, err
	}

	desc, ok := isa.Lookup(keyword.Value)

	if !ok {
		return nil, &UnknownMnemonicError{keyword.Position, keyword.Value}
	}

	count := desc.Operands()
	operands := make([]Token, 0, count)

	for len(operands) < count {
		token, err := reader.Next()

		if err == io.EOF {
			return nil, &InvalidNumArgumentsError{
				keyword.Position, count, len(operands),
			}
		} else if err != nil {
			return nil, err
		}

		operands = append(operands, token)
	}

	word, err := EncodeInstruction(desc, operands)

	if err != nil {
		return nil, err
	}

	return &Instruction{
		Descriptor: desc,
		Keyword:    keyword,
		Operands:   operands,
		Word:       word,
	}, nil
}

// AssembleFunc calls fn for every instruction of the input, in order. It
// stops at the first error from either the assembler or fn and returns the
// number of instructions handed to fn.
func AssembleFunc(input io.Reader, fn func(*Instruction) error) (int, error) {
	reader := NewReader(input)
	count := 0

	for {
		instruction, err := reader.ReadInstruction()

		if err == io.EOF {
			return count, nil
		} else if err != nil {
			return count, err
		}

		if err := fn(instruction); err != nil {
			return count, err
		}

		count++
	}
}

// Assemble writes one line of binary digits per instruction of the input.
// Nothing is written unless the whole input assembles.
func Assemble(input io.Reader, output io.Writer) (int, error) {
	var buffer bytes.Buffer

	count, err := AssembleFunc(input, func(instruction *Instruction) error {
		buffer.WriteString(instruction.Word.String())
		buffer.WriteByte('\n')
		return nil
	})

	if err != nil {
		return 0, err
	}

	if _, err := output.Write(buffer.Bytes()); err != nil {
		return 0, err
	}

	return count, nil
}
