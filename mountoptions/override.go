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
	"errors"
	"io/fs"
	"os"

	"github.com/mvo5/goconfigparser"

	"github.com/diskcore/diskmountd/dirs"
	"github.com/diskcore/diskmountd/logger"
)

// adminPolicy reads the administrator override policy file. It is read
// fresh on every call so that edits take effect immediately. A missing,
// empty or unreadable file degrades to "no overrides"; it never fails
// the mount request. The file is read into memory first so that read
// errors are surfaced here rather than swallowed by the parser.
func adminPolicy() store {
	content, err := os.ReadFile(dirs.MountOptionsConfFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Noticef("cannot read mount options config file %s: %v", dirs.MountOptionsConfFile, err)
		}
		return nil
	}

	cfg := goconfigparser.New()
	if err := cfg.ReadString(string(content)); err != nil {
		logger.Noticef("cannot parse mount options config file %s: %v", dirs.MountOptionsConfFile, err)
		return nil
	}

	st, err := parseConfig(cfg)
	if err != nil {
		if errors.Is(err, errNoSections) {
			logger.Debugf("mount options config file %s has no sections", dirs.MountOptionsConfFile)
		} else {
			logger.Noticef("cannot parse mount options config file %s: %v", dirs.MountOptionsConfFile, err)
		}
		return nil
	}

	return st
}
