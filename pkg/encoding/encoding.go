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

package encoding

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

const REGISTER_PREFIX = 'r'
const REGISTER_BITS = 5
const REGISTER_COUNT = 1 << REGISTER_BITS

var (
	ErrRegisterPrefix = errors.New("register must start with 'r'")
	ErrRegisterNumber = errors.New("register number must be a decimal integer")
	ErrRegisterRange  = errors.New("register number must be in the range r0-r31")
	ErrInvalidLiteral = errors.New("invalid numeric literal")
	ErrInvalidBits    = errors.New("invalid binary string")
)

// Decodes a register name in the format: r0 .. r31
func DecodeRegister(s string) (uint8, error) {
	if len(s) == 0 || s[0] != REGISTER_PREFIX {
		return 0, ErrRegisterPrefix
	}

	digits := s[1:]

	if len(digits) == 0 || strings.TrimLeft(digits, "0123456789") != "" {
		return 0, ErrRegisterNumber
	}

	result, err := strconv.ParseUint(digits, 10, 64)

	if err != nil || result >= REGISTER_COUNT {
		return 0, ErrRegisterRange
	}

	return uint8(result), nil
}

// Decodes a signed integer literal in the formats: 123, -123, #123, 0x7B,
// x7B, -0x7B
func DecodeInt(s string) (int64, error) {
	if i := strings.Index(s, "#"); i == 0 {
		s = s[1:]
	}

	negative := false

	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		negative = s[0] == '-'
		s = s[1:]
	}

	base := 10

	if i := strings.IndexAny(s, "xX"); i == 0 {
		s = s[1:]
		base = 16
	} else if i == 1 && s[0] == '0' {
		s = s[2:]
		base = 16
	} else if i != -1 {
		return 0, ErrInvalidLiteral
	}

	if len(s) == 0 {
		return 0, ErrInvalidLiteral
	}

	magnitude, err := strconv.ParseUint(s, base, 64)

	if err != nil {
		return 0, ErrInvalidLiteral
	}

	if negative {
		if magnitude > uint64(math.MaxInt64)+1 {
			return 0, ErrInvalidLiteral
		}

		return int64(-magnitude), nil
	}

	if magnitude > math.MaxInt64 {
		return 0, ErrInvalidLiteral
	}

	return int64(magnitude), nil
}

// Truncate keeps the low bitcount bits of the two's complement
// representation of value.
func Truncate(value int64, bitcount uint) uint32 {
	return uint32(uint64(value) & ((uint64(1) << bitcount) - 1))
}

// Bits renders the low bitcount bits of value, MSB first.
func Bits(value uint32, bitcount uint) string {
	var builder strings.Builder
	builder.Grow(int(bitcount))

	for i := bitcount; i > 0; i-- {
		if (value>>(i-1))&0x1 == 1 {
			builder.WriteByte('1')
		} else {
			builder.WriteByte('0')
		}
	}

	return builder.String()
}

// ParseBits reads an MSB first string of up to 32 binary digits.
func ParseBits(s string) (uint32, error) {
	if len(s) == 0 || len(s) > 32 {
		return 0, ErrInvalidBits
	}

	var result uint32 = 0

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			result <<= 1
		case '1':
			result = result<<1 | 1
		default:
			return 0, ErrInvalidBits
		}
	}

	return result, nil
}

func SignExtend(value uint32, bitcount uint) int64 {
	value &= uint32((uint64(1) << bitcount) - 1)

	if (value>>(bitcount-1))&0x1 == 1 {
		return int64(value) - int64(uint64(1)<<bitcount)
	}

	return int64(value)
}
