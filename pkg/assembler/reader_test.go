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

package assembler_test

import (
	"io"
	"strings"
	"testing"

	"github.com/lassandro/mmasm/pkg/assembler"
)

func TestTokenReader(t *testing.T) {
	input := "li r3 1000 2\r\n" +
		"; comment au r1 r2 r3\n" +
		"\t nop;trailing\n" +
		"\n" +
		"clzw  r5\tr6"

	want := []assembler.Token{
		{Value: "li", Position: assembler.Cursor{Line: 1, Column: 1, Byte: 0, Size: 2}},
		{Value: "r3", Position: assembler.Cursor{Line: 1, Column: 4, Byte: 3, Size: 2}},
		{Value: "1000", Position: assembler.Cursor{Line: 1, Column: 7, Byte: 6, Size: 4}},
		{Value: "2", Position: assembler.Cursor{Line: 1, Column: 12, Byte: 11, Size: 1}},
		{Value: "nop", Position: assembler.Cursor{Line: 3, Column: 3, Byte: 38, Size: 3, LineByte: 36}},
		{Value: "clzw", Position: assembler.Cursor{Line: 5, Column: 1, Byte: 52, Size: 4, LineByte: 52}},
		{Value: "r5", Position: assembler.Cursor{Line: 5, Column: 7, Byte: 58, Size: 2, LineByte: 52}},
		{Value: "r6", Position: assembler.Cursor{Line: 5, Column: 10, Byte: 61, Size: 2, LineByte: 52}},
	}

	reader := assembler.NewReader(strings.NewReader(input))

	for i, expected := range want {
		have, err := reader.Next()

		if err != nil {
			t.Fatalf("Token %d: %v", i, err)
		}

		if have != expected {
			t.Fatalf(
				"Token mismatch\nwant:%+v (want[%d])\nhave:%+v",
				expected,
				i,
				have,
			)
		}

		if got := input[have.Position.Byte : have.Position.Byte+have.Position.Size]; got != have.Value {
			t.Fatalf("Token offset mismatch\nwant:%s\nhave:%s", have.Value, got)
		}
	}

	if _, err := reader.Next(); err != io.EOF {
		t.Fatalf("Missing end of input\nwant:%v\nhave:%v", io.EOF, err)
	}
}
