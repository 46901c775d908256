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
	"sort"
	"strings"

	"github.com/diskcore/diskmountd/disks"
)

// UdevMountOptionsPrefix identifies udev properties carrying
// per-device mount option hints, e.g. set by hardware-specific udev
// rules. The prefix is matched case-insensitively.
const UdevMountOptionsPrefix = "UDISKS_MOUNT_OPTIONS_"

// mountOptionsFromUdev extracts the mount option hints from the
// device's udev properties. The result is a flat filesystem-type to
// record map: the properties are already device-specific, so there is
// no device scoping level.
func mountOptionsFromUdev(dev *disks.Device) map[string]*Record {
	if dev == nil || len(dev.Properties) == 0 {
		return nil
	}

	keys := make([]string, 0, len(dev.Properties))
	for key := range dev.Properties {
		if strings.HasPrefix(strings.ToUpper(key), UdevMountOptionsPrefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	options := make(map[string]*Record, len(keys))
	for _, key := range keys {
		parseKeyValuePair(options, key[len(UdevMountOptionsPrefix):], dev.Properties[key])
	}

	return options
}
