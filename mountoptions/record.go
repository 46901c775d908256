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
	"github.com/diskcore/diskmountd/strutil"
)

// Record is the mount option policy for a single (scope, filesystem
// type) pair. All four lists hold case-sensitive, deduplicated tokens
// in first-seen order.
type Record struct {
	// Defaults are "name" or "name=value" tokens applied unless the
	// caller overrides them.
	Defaults []string
	// Allow lists permitted options: a bare "name" or "name=" permits
	// any value, "name=value" permits only that exact value.
	Allow []string
	// AllowUIDSelf lists option names whose value must equal the
	// caller's own uid.
	AllowUIDSelf []string
	// AllowGIDSelf lists option names whose value must equal a gid the
	// caller belongs to.
	AllowGIDSelf []string
}

// override replaces each field of r that src defines (has a non-empty
// list for) with a copy of src's list. Fields src does not define are
// left untouched.
func (r *Record) override(src *Record) {
	if src == nil {
		return
	}

	if len(src.Defaults) > 0 {
		r.Defaults = append([]string(nil), src.Defaults...)
	}
	if len(src.Allow) > 0 {
		r.Allow = append([]string(nil), src.Allow...)
	}
	if len(src.AllowUIDSelf) > 0 {
		r.AllowUIDSelf = append([]string(nil), src.AllowUIDSelf...)
	}
	if len(src.AllowGIDSelf) > 0 {
		r.AllowGIDSelf = append([]string(nil), src.AllowGIDSelf...)
	}
}

// appendUnique appends, field by field, the entries of src that are
// not already present in r, preserving their order.
func (r *Record) appendUnique(src *Record) {
	if src == nil {
		return
	}

	r.Defaults = appendMissing(r.Defaults, src.Defaults)
	r.Allow = appendMissing(r.Allow, src.Allow)
	r.AllowUIDSelf = appendMissing(r.AllowUIDSelf, src.AllowUIDSelf)
	r.AllowGIDSelf = appendMissing(r.AllowGIDSelf, src.AllowGIDSelf)
}

func appendMissing(dst, src []string) []string {
	for _, s := range src {
		if !strutil.ListContains(dst, s) {
			dst = append(dst, s)
		}
	}
	return dst
}
