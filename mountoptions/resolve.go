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
	"strings"

	"github.com/diskcore/diskmountd/disks"
	"github.com/diskcore/diskmountd/logger"
)

// deviceScope finds the section of the store matching the device, by
// its canonical path first, then by each of its symlink aliases.
func (st store) deviceScope(dev *disks.Device) map[string]*Record {
	if dev.Path != configGroupDefaults {
		if options, ok := st[dev.Path]; ok {
			return options
		}
	}
	for _, symlink := range dev.Symlinks {
		if symlink == configGroupDefaults {
			continue
		}
		if options, ok := st[symlink]; ok {
			return options
		}
	}
	return nil
}

// apply layers the store's records for the given device and filesystem
// type onto the two accumulators. Device-specific records fully
// override the "defaults" scope records on a per-field basis. Returns
// whether any record matched.
func (st store) apply(dev *disks.Device, fstype string, specific, general *Record) bool {
	changed := false

	if generalOptions := st[configGroupDefaults]; generalOptions != nil {
		if o := generalOptions[configGroupDefaults]; o != nil {
			general.override(o)
			changed = true
		}
		if fstype != "" {
			if o := generalOptions[fstype]; o != nil {
				specific.override(o)
				changed = true
			}
		}
	}

	if dev != nil {
		if blockOptions := st.deviceScope(dev); blockOptions != nil {
			if o := blockOptions[configGroupDefaults]; o != nil {
				general.override(o)
				changed = true
			}
			if fstype != "" {
				if o := blockOptions[fstype]; o != nil {
					specific.override(o)
					changed = true
				}
			}
		}
	}

	return changed
}

// resolveRecord computes the effective policy record for one mount
// request, layering the three policy origins in precedence order
// (built-in, administrator override file, udev hints) and finally
// merging the type-agnostic policy into the type-specific one.
func resolveRecord(dev *disks.Device, fstype string) (*Record, error) {
	specific := &Record{}
	general := &Record{}

	builtin, err := builtinPolicy()
	if err != nil {
		return nil, err
	}
	builtin.apply(dev, fstype, specific, general)

	changed := false
	if overrides := adminPolicy(); overrides != nil {
		if overrides.apply(dev, fstype, specific, general) {
			changed = true
		}
	}

	// udev hints carry no device scoping, the properties are already
	// specific to this very device
	hints := mountOptionsFromUdev(dev)
	if o := hints[configGroupDefaults]; o != nil {
		general.override(o)
		changed = true
	}
	if fstype != "" {
		if o := hints[fstype]; o != nil {
			specific.override(o)
			changed = true
		}
	}

	// the type-agnostic policy is additive, never overriding
	specific.appendUnique(general)

	if changed && len(specific.Defaults) > 0 {
		logger.Noticef("using overridden mount options: %s", strings.Join(specific.Defaults, ","))
	}

	return specific, nil
}

// EffectiveRecord computes the fully merged policy record in effect
// for the given device and filesystem type.
func EffectiveRecord(dev *disks.Device, fstype string) (*Record, error) {
	return resolveRecord(dev, strings.ToLower(fstype))
}
