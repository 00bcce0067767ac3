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
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/tebeka/atexit"
	"github.com/xyproto/env/v2"

	"github.com/lassandro/mmasm/internal/logger"
	"github.com/lassandro/mmasm/pkg/assembler"
	"github.com/lassandro/mmasm/pkg/disassembler"
	"github.com/lassandro/mmasm/pkg/isa"
)

var helpvar bool
var disasmvar bool
var verbosevar bool
var listvar bool
var nocolorvar bool
var outvar string

const usage = "mmasm [-d] [-v] [-list] [-no-color] [-out outfile] [filename]"

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.BoolVar(
		&disasmvar, "d", false,
		"Disassembles machine words back into assembly source",
	)
	flag.BoolVar(
		&verbosevar, "v", false, "Logs every instruction as it is encoded",
	)
	flag.BoolVar(&listvar, "list", false, "Prints the instruction table")
	flag.BoolVar(&nocolorvar, "no-color", false, "Disables colored output")
	flag.StringVar(
		&outvar, "out", "",
		"Specifies a precise name for the output file, overriding the "+
			"default of $MMASM_OUT or 'machine.txt'. Use '-' for stdout",
	)
}

// Picks the input in order of precedence: the filename argument, a piped
// stdin, then the default source file.
func openInput(args []string) (string, io.Reader, error) {
	var filename string

	if len(args) == 1 {
		filename = args[0]
	} else if !isTerminal(os.Stdin) {
		return "<stdin>", os.Stdin, nil
	} else if disasmvar {
		filename = env.Str("MMASM_MACHINE", "machine.txt")
	} else {
		filename = env.Str("MMASM_SOURCE", "assembly.txt")
	}

	file, err := os.Open(filename)

	if err != nil {
		return filename, nil, err
	}

	atexit.Register(func() {
		file.Close()
	})

	if stat, err := file.Stat(); err != nil {
		return filename, nil, err
	} else if stat.IsDir() {
		return filename, nil, fmt.Errorf(
			"%s is not a valid assembly file", filepath.Base(filename),
		)
	}

	return filename, file, nil
}

func mmasm() int {
	flag.Parse()

	color := !nocolorvar && env.Str("NO_COLOR") == "" && isTerminal(os.Stderr)
	logger.Init(os.Stderr, verbosevar, color)

	if helpvar {
		fmt.Println(usage)
		flag.PrintDefaults()
		return 0
	}

	if listvar {
		for _, desc := range isa.Descriptors() {
			fmt.Println(desc)
		}

		return 0
	}

	args := flag.Args()

	if len(args) > 1 {
		log.Error(usage)
		return 1
	}

	filename, input, err := openInput(args)

	if err != nil {
		log.Error("Could not open input", "file", filename, "err", err)
		return 1
	}

	log.Debug("Input opened", "file", filename)

	source, err := io.ReadAll(input)

	if err != nil {
		log.Error("Could not read input", "file", filename, "err", err)
		return 1
	}

	var output bytes.Buffer
	var count int

	if disasmvar {
		count, err = disassembler.Disassemble(bytes.NewReader(source), &output)
	} else {
		count, err = assembler.AssembleFunc(
			bytes.NewReader(source),
			func(instruction *assembler.Instruction) error {
				log.Debug(
					instruction.Word.String(),
					"line", instruction.Keyword.Position.Line,
					"source", instructionSource(instruction),
				)

				output.WriteString(instruction.Word.String())
				output.WriteByte('\n')
				return nil
			},
		)
	}

	if err != nil {
		report(os.Stderr, filepath.Base(filename), source, err, color)
		return 1
	}

	if outvar == "" {
		if disasmvar {
			outvar = "-"
		} else {
			outvar = env.Str("MMASM_OUT", "machine.txt")
		}
	}

	if outvar == "-" {
		_, err = os.Stdout.Write(output.Bytes())
	} else {
		err = os.WriteFile(outvar, output.Bytes(), 0666)
	}

	if err != nil {
		log.Error("Error writing output file", "file", outvar, "err", err)
		return 1
	}

	if disasmvar {
		log.Debug("Disassembly complete", "instructions", count)
	} else {
		log.Info("Assembly complete", "instructions", count, "output", outvar)
	}

	return 0
}

func main() {
	atexit.Exit(mmasm())
}
