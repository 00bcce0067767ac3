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

package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lassandro/mmasm/internal/logger"
	"github.com/lassandro/mmasm/pkg/assembler"
)

// Logs err and, for errors tied to a token, the offending source line with
// the token underlined.
func report(output io.Writer, filename string, source []byte, err error, color bool) {
	log.Error(fmt.Sprintf("%s:%v", filename, err))

	tokenErr, ok := err.(assembler.TokenError)

	if !ok {
		return
	}

	if text := underline(source, tokenErr.GetPosition(), color); text != "" {
		fmt.Fprintln(output, text)
	}
}

func underline(source []byte, cursor assembler.Cursor, color bool) string {
	if cursor.LineByte < 0 || cursor.LineByte > int64(len(source)) ||
		cursor.Byte < cursor.LineByte {
		return ""
	}

	line := source[cursor.LineByte:]

	if i := bytes.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}

	line = bytes.TrimRight(line, "\r")

	offset := int(cursor.Byte - cursor.LineByte)

	if offset > len(line) {
		return ""
	}

	// Keep tabs so the marker lines up with the source
	var marker strings.Builder

	for _, char := range string(line[:offset]) {
		if char == '\t' {
			marker.WriteRune('\t')
		} else {
			marker.WriteRune(' ')
		}
	}

	marker.WriteString("^")

	if cursor.Size > 1 {
		marker.WriteString(strings.Repeat("~", int(cursor.Size)-1))
	}

	profile := logger.Profile(color)
	highlight := profile.String(marker.String()).Foreground(profile.Color("1"))

	return string(line) + "\n" + highlight.String()
}

func instructionSource(instruction *assembler.Instruction) string {
	parts := make([]string, 0, len(instruction.Operands)+1)
	parts = append(parts, instruction.Keyword.Value)

	for _, operand := range instruction.Operands {
		parts = append(parts, operand.Value)
	}

	return strings.Join(parts, " ")
}
