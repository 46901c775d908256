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

package mountoptions_test

import (
	"errors"

	. "gopkg.in/check.v1"

	"github.com/diskcore/diskmountd/mountoptions"
	"github.com/diskcore/diskmountd/testutil"
)

type defaultsSuite struct {
	baseSuite
}

var _ = Suite(&defaultsSuite{})

func (s *defaultsSuite) TestUIDAndGIDSubstitution(c *C) {
	rec := &mountoptions.Record{Defaults: []string{"uid=", "gid=", "shortname=mixed", "flush"}}

	opts := mountoptions.PrependDefaults(rec, 1000, false, nil)
	c.Check(opts, DeepEquals, []mountoptions.MountOpt{
		optv("uid", "1000"),
		optv("gid", "1000"),
		optv("shortname", "mixed"),
		opt("flush"),
	})
}

func (s *defaultsSuite) TestUIDSubstitutionOverridesConfiguredValue(c *C) {
	// a uid default always names the requesting user, whatever value
	// the policy file carried
	rec := &mountoptions.Record{Defaults: []string{"uid=500"}}

	opts := mountoptions.PrependDefaults(rec, 1000, false, nil)
	c.Check(opts, DeepEquals, []mountoptions.MountOpt{optv("uid", "1000")})
}

func (s *defaultsSuite) TestExplicitlyAllowedPairKeptVerbatim(c *C) {
	rec := &mountoptions.Record{
		Defaults: []string{"uid=500"},
		Allow:    []string{"uid=500"},
	}

	opts := mountoptions.PrependDefaults(rec, 1000, false, nil)
	c.Check(opts, DeepEquals, []mountoptions.MountOpt{optv("uid", "500")})
}

func (s *defaultsSuite) TestGIDOmittedOnLookupFailure(c *C) {
	restore := mountoptions.MockUserInfo(func(uid uint32) (string, uint32, error) {
		return "", 0, errors.New("no such user")
	})
	defer restore()

	rec := &mountoptions.Record{Defaults: []string{"uid=", "gid=", "flush"}}

	opts := mountoptions.PrependDefaults(rec, 1000, false, nil)
	c.Check(opts, DeepEquals, []mountoptions.MountOpt{
		optv("uid", "1000"),
		opt("flush"),
	})
	c.Check(s.log.String(), testutil.Contains, "cannot resolve primary group of uid 1000: no such user")
}

func (s *defaultsSuite) TestSharedFilesystemModes(c *C) {
	rec := &mountoptions.Record{Defaults: []string{"mode=0600", "dmode=0700"}}

	opts := mountoptions.PrependDefaults(rec, 1000, true, nil)
	c.Check(opts, DeepEquals, []mountoptions.MountOpt{
		optv("mode", "0644"),
		optv("dmode", "0555"),
	})
}

func (s *defaultsSuite) TestModesKeptWhenNotShared(c *C) {
	rec := &mountoptions.Record{Defaults: []string{"mode=0600", "dmode=0700"}}

	opts := mountoptions.PrependDefaults(rec, 1000, false, nil)
	c.Check(opts, DeepEquals, []mountoptions.MountOpt{
		optv("mode", "0600"),
		optv("dmode", "0700"),
	})
}

func (s *defaultsSuite) TestCallerOptionsAppended(c *C) {
	rec := &mountoptions.Record{Defaults: []string{"uid="}}

	opts := mountoptions.PrependDefaults(rec, 1000, false, []mountoptions.MountOpt{
		opt("ro"),
		optv("uid", "5"),
	})
	// caller options follow the defaults verbatim, duplicates included
	c.Check(opts, DeepEquals, []mountoptions.MountOpt{
		optv("uid", "1000"),
		opt("ro"),
		optv("uid", "5"),
	})
}

func (s *defaultsSuite) TestSharedMode(c *C) {
	for _, tc := range []struct{ in, out string }{
		{"0700", "0755"},
		{"0750", "0755"},
		{"0600", "0644"},
		{"0640", "0644"},
		// group/other never drop below read
		{"0400", "0444"},
		{"0000", "0044"},
		// only 4-character mode strings are adjusted
		{"755", "755"},
		{"01777", "01777"},
		{"", ""},
	} {
		c.Check(mountoptions.SharedMode(tc.in), Equals, tc.out, Commentf("mode %q", tc.in))
	}
}
