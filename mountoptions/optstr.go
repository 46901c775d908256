// -*- Mode: Go; indent-tabs-mode: t -*-

/*
 * Copyright (C) 2024-2025 The diskmountd authors
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License version 3 as
 * published by the Free Software Foundation.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

package mountoptions

import (
	"fmt"
	"strings"
)

// MountOpt is a single mount option. Options without a value ("ro")
// have HasValue unset; "name=" parses to HasValue set with an empty
// Value.
type MountOpt struct {
	Name     string
	Value    string
	HasValue bool
}

func (o MountOpt) String() string {
	if o.HasValue {
		return o.Name + "=" + o.Value
	}
	return o.Name
}

// InvalidOptionsError is returned when a raw mount option string fails
// tokenization. Offset is the byte offset of the offending token.
type InvalidOptionsError struct {
	OptionString string
	Offset       int
}

func (e *InvalidOptionsError) Error() string {
	return fmt.Sprintf("malformed mount options string %q at position %d", e.OptionString, e.Offset+1)
}

// ParseOptions splits a raw comma-separated mount option string into
// individual options. Kernel mount option syntax has no quoting, so
// commas always separate; empty tokens are skipped. A token starting
// with "=" has no option name and yields an *InvalidOptionsError.
func ParseOptions(s string) ([]MountOpt, error) {
	var opts []MountOpt

	start := 0
	for start <= len(s) {
		end := strings.IndexByte(s[start:], ',')
		if end < 0 {
			end = len(s)
		} else {
			end += start
		}
		tok := s[start:end]
		if tok != "" {
			if tok[0] == '=' {
				return nil, &InvalidOptionsError{OptionString: s, Offset: start}
			}
			if i := strings.IndexByte(tok, '='); i >= 0 {
				opts = append(opts, MountOpt{Name: tok[:i], Value: tok[i+1:], HasValue: true})
			} else {
				opts = append(opts, MountOpt{Name: tok})
			}
		}
		start = end + 1
	}

	return opts, nil
}

// JoinOptions is the inverse of ParseOptions.
func JoinOptions(opts []MountOpt) string {
	strs := make([]string, len(opts))
	for i, o := range opts {
		strs[i] = o.String()
	}
	return strings.Join(strs, ",")
}
