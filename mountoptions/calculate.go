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

// Package mountoptions decides which mount options are safe to hand to
// the kernel for a mount requested by an unprivileged caller. Policy
// comes from three origins layered in precedence order: a built-in
// resource, the administrator override file and per-device udev hints.
package mountoptions

import (
	"fmt"
	"strings"

	"github.com/diskcore/diskmountd/disks"
)

// fixedMountOptions are always prepended to the computed option string
// and cannot be disabled by the caller. The uhelper tag makes
// umount(8) delegate unmounting back to the udisks2-compatible helper.
const fixedMountOptions = "uhelper=udisks2,nodev,nosuid"

// NotAllowedError reports a mount option rejected by the effective
// policy.
type NotAllowedError struct {
	Option MountOpt
}

func (e *NotAllowedError) Error() string {
	return fmt.Sprintf("mount option %q is not allowed", e.Option.String())
}

// MalformedOptionError reports a mount option whose name or value
// would smuggle additional, unvalidated options into the final option
// string.
type MalformedOptionError struct {
	Name string
}

func (e *MalformedOptionError) Error() string {
	return fmt.Sprintf("malformed mount option %q", e.Name)
}

// Calculate computes the validated mount option string for a mount of
// the given device as the given filesystem type, requested by the user
// with the given uid. It either returns the full option string to pass
// to the mount call, starting with the fixed safety options, or an
// error describing why the mount must be refused. No partial option
// string is ever returned.
func Calculate(dev *disks.Device, callerUID uint32, fstype string, requested []MountOpt) (string, error) {
	sharedFS := dev != nil && dev.SharedFilesystem()
	fstype = strings.ToLower(fstype)

	record, err := resolveRecord(dev, fstype)
	if err != nil {
		return "", err
	}

	candidates := prependDefaults(record, callerUID, sharedFS, requested)

	out := make([]string, 0, len(candidates)+1)
	out = append(out, fixedMountOptions)
	for _, opt := range candidates {
		// a literal comma in an option would let a crafted option
		// such as "shortname=lower,uid=0" slip an extra option past
		// the checks below
		if strings.Contains(opt.Name, ",") || (opt.HasValue && strings.Contains(opt.Value, ",")) {
			return "", &MalformedOptionError{Name: opt.String()}
		}
		if !isOptionAllowed(record, opt, callerUID) {
			return "", &NotAllowedError{Option: opt}
		}
		out = append(out, opt.String())
	}

	return strings.Join(out, ","), nil
}

// CalculateFromString is Calculate for a caller-requested option
// string in raw comma-separated syntax.
func CalculateFromString(dev *disks.Device, callerUID uint32, fstype, options string) (string, error) {
	requested, err := ParseOptions(options)
	if err != nil {
		return "", err
	}
	return Calculate(dev, callerUID, fstype, requested)
}
