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

// diskmountd-options evaluates the mount option policy for a device
// the same way the daemon does when handling a mount request, and
// prints the resulting option string or the reason for refusal. It is
// meant for administrators debugging policy override files.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	"golang.org/x/sys/unix"

	"github.com/diskcore/diskmountd/disks"
	"github.com/diskcore/diskmountd/logger"
	"github.com/diskcore/diskmountd/mountoptions"
)

// Standard streams, redirected for testing.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

type options struct {
	Device     string  `long:"device" description:"block device node to evaluate" required:"yes"`
	Type       string  `long:"type" description:"filesystem type requested by the caller" required:"yes"`
	UID        *uint32 `long:"uid" description:"uid of the requesting user (defaults to the current user)"`
	Options    string  `long:"options" description:"mount options requested by the caller"`
	ShowPolicy bool    `long:"show-policy" description:"print the effective policy record instead of computing an option string"`
}

func showPolicy(w io.Writer, rec *mountoptions.Record) {
	fmt.Fprintf(w, "defaults:       %s\n", strings.Join(rec.Defaults, ","))
	fmt.Fprintf(w, "allow:          %s\n", strings.Join(rec.Allow, ","))
	fmt.Fprintf(w, "allow_uid_self: %s\n", strings.Join(rec.AllowUIDSelf, ","))
	fmt.Fprintf(w, "allow_gid_self: %s\n", strings.Join(rec.AllowGIDSelf, ","))
}

func run(args []string) error {
	var opts options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		return err
	}

	if err := mountoptions.CheckBuiltin(); err != nil {
		return err
	}

	dev, err := disks.DeviceFromPath(opts.Device)
	if err != nil {
		return fmt.Errorf("cannot query device %s: %v", opts.Device, err)
	}

	if opts.ShowPolicy {
		rec, err := mountoptions.EffectiveRecord(dev, opts.Type)
		if err != nil {
			return err
		}
		showPolicy(Stdout, rec)
		return nil
	}

	uid := uint32(unix.Getuid())
	if opts.UID != nil {
		uid = *opts.UID
	}

	optstr, err := mountoptions.CalculateFromString(dev, uid, opts.Type, opts.Options)
	if err != nil {
		return err
	}
	fmt.Fprintln(Stdout, optstr)

	return nil
}

func main() {
	if err := logger.SimpleSetup(); err != nil {
		fmt.Fprintf(Stderr, "cannot set up logging: %v\n", err)
	}

	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
