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
	"bufio"
	"bytes"
	"io"
	"unicode"
)

const MAX_LINE_SIZE = 1 << 20

// TokenReader splits assembly source into whitespace delimited tokens.
// Line breaks only matter for token positions and for ending comments.
type TokenReader struct {
	scanner *bufio.Scanner
	cursor  Cursor
	pending []Token
}

func NewReader(input io.Reader) *TokenReader {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 4096), MAX_LINE_SIZE)
	scanner.Split(scanLines)

	return &TokenReader{
		scanner: scanner,
		cursor:  Cursor{Line: 1},
	}
}

// Next returns the next token, or io.EOF once the input is exhausted.
func (reader *TokenReader) Next() (Token, error) {
	for len(reader.pending) == 0 {
		if !reader.scanner.Scan() {
			if err := reader.scanner.Err(); err != nil {
				return Token{}, err
			}

			return Token{}, io.EOF
		}

		reader.tokenize(reader.scanner.Text())
	}

	token := reader.pending[0]
	reader.pending = reader.pending[1:]

	return token, nil
}

func (reader *TokenReader) tokenize(line string) {
	var tokenStart int = -1

	for column, char := range line {
		// Comments
		if char == ';' {
			if tokenStart != -1 {
				reader.flush(line, tokenStart, column)
				tokenStart = -1
			}

			break
		}

		if unicode.IsSpace(char) {
			if tokenStart != -1 {
				reader.flush(line, tokenStart, column)
				tokenStart = -1
			}

			continue
		}

		if tokenStart == -1 {
			tokenStart = column
		}
	}

	if tokenStart != -1 {
		reader.flush(line, tokenStart, len(line))
	}

	reader.cursor.Line++
	reader.cursor.Byte += int64(len(line) + 1)
	reader.cursor.LineByte = reader.cursor.Byte
}

func (reader *TokenReader) flush(line string, start, end int) {
	reader.pending = append(reader.pending, Token{
		Position: Cursor{
			Line:     reader.cursor.Line,
			Column:   start + 1,
			Byte:     reader.cursor.Byte + int64(start),
			Size:     int64(end - start),
			LineByte: reader.cursor.LineByte,
		},
		Value: line[start:end],
	})
}

// Same as bufio.ScanLines, but keeps carriage returns so that byte offsets
// stay exact. They are dropped as whitespace by tokenize.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i], nil
	}

	if atEOF {
		return len(data), data, nil
	}

	return 0, nil, nil
}
