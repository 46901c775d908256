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

var osutilUIDInGroup = osutil.UIDInGroup

// isOptionAllowed decides whether a single mount option is permitted
// for the calling user under the given policy record. Rules are
// evaluated top to bottom, the first match decides.
func isOptionAllowed(r *Record, opt MountOpt, callerUID uint32) bool {
	// the exact option=value pair is what the administrator explicitly
	// allowed, no need to consult the uid/gid self lists
	if opt.HasValue && opt.Value != "" && strutil.ListContains(r.Allow, opt.Name+"="+opt.Value) {
		return true
	}

	// options where the caller may pass in their own uid
	if strutil.ListContains(r.AllowUIDSelf, opt.Name) {
		if !opt.HasValue || opt.Value == "" {
			logger.Noticef("mount option %q is listed in allow_uid_self but has no value", opt.Name)
			return false
		}
		uid, err := strconv.ParseUint(opt.Value, 10, 32)
		if err != nil {
			return false
		}
		return uint32(uid) == callerUID
	}

	// ditto for gid; an option name listed in either self list is
	// never matched against the plain allow list below
	if strutil.ListContains(r.AllowGIDSelf, opt.Name) {
		if !opt.HasValue || opt.Value == "" {
			logger.Noticef("mount option %q is listed in allow_gid_self but has no value", opt.Name)
			return false
		}
		gid, err := strconv.ParseUint(opt.Value, 10, 32)
		if err != nil {
			return false
		}
		in, err := osutilUIDInGroup(callerUID, uint32(gid))
		if err != nil {
			logger.Noticef("cannot check group membership of uid %v: %v", callerUID, err)
			return false
		}
		return in
	}

	if strutil.ListContains(r.Allow, opt.Name+"=") || strutil.ListContains(r.Allow, opt.Name) {
		return true
	}

	// fstab(5) reserves the "x-" namespace for options that are
	// ignored by the kernel and any mount helper
	return strings.HasPrefix(opt.Name, "x-")
}
