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
	"strconv"
	"strings"

	"github.com/diskcore/diskmountd/logger"
	"github.com/diskcore/diskmountd/osutil"
	"github.com/diskcore/diskmountd/strutil"
)

var osutilUserInfo = osutil.UserInfo

// prependDefaults builds the candidate option sequence for one mount
// request: the policy defaults, with uid/gid and shared-filesystem
// substitutions applied, followed by the caller's own options. The
// caller options are not deduplicated against the defaults; duplicate
// names are resolved later-wins by the mount implementation.
func prependDefaults(r *Record, callerUID uint32, sharedFS bool, callerOpts []MountOpt) []MountOpt {
	opts := make([]MountOpt, 0, len(r.Defaults)+len(callerOpts))

	for _, def := range r.Defaults {
		eq := strings.IndexByte(def, '=')
		if eq < 0 {
			opts = append(opts, MountOpt{Name: def})
			continue
		}

		name, value := def[:eq], def[eq+1:]
		switch {
		case value != "" && strutil.ListContains(r.Allow, def):
			// the administrator explicitly allowed this exact
			// option=value pair, keep it verbatim
			opts = append(opts, MountOpt{Name: name, Value: value, HasValue: true})
		case name == "uid":
			opts = append(opts, MountOpt{Name: "uid", Value: strconv.FormatUint(uint64(callerUID), 10), HasValue: true})
		case name == "gid":
			if _, gid, err := osutilUserInfo(callerUID); err == nil {
				opts = append(opts, MountOpt{Name: "gid", Value: strconv.FormatUint(uint64(gid), 10), HasValue: true})
			} else {
				logger.Noticef("cannot resolve primary group of uid %v: %v", callerUID, err)
			}
		case sharedFS && name == "mode":
			opts = append(opts, MountOpt{Name: "mode", Value: sharedMode(value), HasValue: true})
		case sharedFS && name == "dmode":
			// directories of a filesystem mounted at a shared
			// location are read+execute for everyone, never writable
			opts = append(opts, MountOpt{Name: "dmode", Value: "0555", HasValue: true})
		default:
			opts = append(opts, MountOpt{Name: name, Value: value, HasValue: true})
		}
	}

	return append(opts, callerOpts...)
}

// sharedMode gives group and others the same permissions as the owner
// minus the write bit, but at least read. A filesystem mounted at a
// location visible to all users would otherwise be unusable for
// anybody but the owner. Values that are not 4-character mode strings
// are kept unmodified.
func sharedMode(mode string) string {
	if len(mode) != 4 {
		return mode
	}

	b := []byte(mode)
	d := b[1] - 2
	if d < '4' {
		d = '4'
	}
	b[2] = d
	b[3] = d
	return string(b)
}
