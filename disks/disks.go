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

// Package disks provides a descriptor of a single block device node as
// seen by udev: its canonical path, the symlink aliases maintained by
// udev and the raw udev property map.
package disks

import (
	"bufio"
	"bytes"
	"io"
	"os/exec"
	"strings"

	"github.com/diskcore/diskmountd/osutil"
)

// FilesystemSharedProperty is the udev property flagging a filesystem
// that gets mounted at a location accessible to all local users, which
// triggers stricter permission defaults.
const FilesystemSharedProperty = "UDISKS_FILESYSTEM_SHARED"

var udevadmProperties = func(device string) ([]byte, error) {
	cmd := exec.Command("udevadm", "info", "--query", "property", "--name", device)
	return cmd.CombinedOutput()
}

// MockUdevadmProperties mocks the udevadm property query, for use in
// tests.
func MockUdevadmProperties(f func(device string) ([]byte, error)) (restore func()) {
	old := udevadmProperties
	udevadmProperties = f
	return func() {
		udevadmProperties = old
	}
}

func parseUdevProperties(r io.Reader) (map[string]string, error) {
	m := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		strs := strings.SplitN(scanner.Text(), "=", 2)
		if len(strs) != 2 {
			// bad udev output?
			continue
		}
		m[strs[0]] = strs[1]
	}

	return m, scanner.Err()
}

// Device describes a single block device node.
type Device struct {
	// Path is the canonical device node path, e.g. "/dev/sdb1".
	Path string
	// Symlinks are the alias paths to the device node maintained by
	// udev, e.g. "/dev/disk/by-uuid/...".
	Symlinks []string
	// Properties is the raw udev property map of the device.
	Properties map[string]string
}

// DeviceFromPath builds a Device for the given device node path by
// querying the udev database.
func DeviceFromPath(path string) (*Device, error) {
	out, err := udevadmProperties(path)
	if err != nil {
		return nil, osutil.OutputErr(out, err)
	}

	props, err := parseUdevProperties(bytes.NewBuffer(out))
	if err != nil {
		return nil, err
	}

	dev := &Device{
		Path:       path,
		Properties: props,
	}
	if devname := props["DEVNAME"]; devname != "" {
		dev.Path = devname
	}
	if devlinks := props["DEVLINKS"]; devlinks != "" {
		dev.Symlinks = strings.Fields(devlinks)
	}

	return dev, nil
}

// SharedFilesystem returns whether the device carries a filesystem
// meant to be mounted at a location shared by all users.
func (d *Device) SharedFilesystem() bool {
	return propertyAsBool(d.Properties[FilesystemSharedProperty])
}

// propertyAsBool interprets a udev property value the way libgudev
// does: only "1" and "true" count as true.
func propertyAsBool(value string) bool {
	return value == "1" || value == "true"
}
