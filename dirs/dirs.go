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

// Package dirs centralizes the well-known filesystem locations used by
// diskmountd. All paths are anchored at GlobalRootDir so that tests can
// redirect them with SetRootDir.
package dirs

import (
	"path/filepath"
)

var (
	// GlobalRootDir is the root directory under which all other
	// paths live. "/" outside of tests.
	GlobalRootDir string

	// DiskmountdConfDir is the administrator configuration directory.
	DiskmountdConfDir string

	// MountOptionsConfFile is the administrator mount option policy
	// override file. It may be absent.
	MountOptionsConfFile string
)

// MountOptionsConfFileName is the file name of the mount option policy
// override file inside DiskmountdConfDir.
const MountOptionsConfFileName = "mount_options.conf"

func init() {
	SetRootDir("/")
}

// SetRootDir allows settings a new global root directory. This is
// useful for testing.
func SetRootDir(rootdir string) {
	if rootdir == "" {
		rootdir = "/"
	}
	GlobalRootDir = rootdir

	DiskmountdConfDir = filepath.Join(rootdir, "/etc/diskmountd")
	MountOptionsConfFile = filepath.Join(DiskmountdConfDir, MountOptionsConfFileName)
}
