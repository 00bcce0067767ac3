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

package logger

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// Init installs the default logger. Debug messages are only shown when
// verbose is set.
func Init(output io.Writer, verbose, color bool) {
	log.SetDefault(log.NewWithOptions(output,
		log.Options{
			ReportCaller:    false,
			ReportTimestamp: false,
			Prefix:          "mmasm",
		}))

	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}

	log.SetColorProfile(Profile(color))
}

// Profile is the color profile used for log output and error highlights.
func Profile(color bool) termenv.Profile {
	if color {
		return termenv.ANSI256
	}

	return termenv.Ascii
}
