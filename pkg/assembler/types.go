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

package assembler

import (
	"fmt"

	"github.com/lassandro/mmasm/pkg/encoding"
	"github.com/lassandro/mmasm/pkg/isa"
)

type Cursor struct {
	Line     int
	Column   int
	Byte     int64
	Size     int64
	LineByte int64
}

type Token struct {
	Position Cursor
	Value    string
}

// Instruction is a single assembled instruction along with the tokens it
// was read from.
type Instruction struct {
	Descriptor *isa.Descriptor
	Keyword    Token
	Operands   []Token
	Word       isa.Word
}

type TokenError interface {
	GetPosition() Cursor
}

type UnknownMnemonicError struct {
	Position Cursor
	Received string
}

func (err *UnknownMnemonicError) GetPosition() Cursor {
	return err.Position
}

func (err *UnknownMnemonicError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Unknown instruction mnemonic '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type MalformedOperandError struct {
	Position Cursor
	Received string
	Err      error
}

func (err *MalformedOperandError) GetPosition() Cursor {
	return err.Position
}

func (err *MalformedOperandError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Malformed operand '%s'\n\t%v",
		err.Position.Line,
		err.Position.Column,
		err.Received,
		err.Err,
	)
}

func (err *MalformedOperandError) Unwrap() error {
	return err.Err
}

type OperandOutOfRangeError struct {
	Position Cursor
	Received string
}

func (err *OperandOutOfRangeError) GetPosition() Cursor {
	return err.Position
}

func (err *OperandOutOfRangeError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Register operand out of range\n\twant:r0-r%d\n\thave:%s",
		err.Position.Line,
		err.Position.Column,
		encoding.REGISTER_COUNT-1,
		err.Received,
	)
}

func (err *OperandOutOfRangeError) Unwrap() error {
	return encoding.ErrRegisterRange
}

type InvalidNumArgumentsError struct {
	Position Cursor
	Required int
	Received int
}

func (err *InvalidNumArgumentsError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidNumArgumentsError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Invalid number of arguments\n\twant:%d\n\thave:%v",
		err.Position.Line,
		err.Position.Column,
		err.Required,
		err.Received,
	)
}
