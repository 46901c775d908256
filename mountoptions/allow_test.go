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

type allowSuite struct {
	baseSuite

	rec *mountoptions.Record
}

var _ = Suite(&allowSuite{})

func (s *allowSuite) SetUpTest(c *C) {
	s.baseSuite.SetUpTest(c)

	s.rec = &mountoptions.Record{
		Allow:        []string{"ro", "quiet=", "shortname=mixed", "uid"},
		AllowUIDSelf: []string{"uid"},
		AllowGIDSelf: []string{"gid"},
	}
}

func opt(name string) mountoptions.MountOpt {
	return mountoptions.MountOpt{Name: name}
}

func optv(name, value string) mountoptions.MountOpt {
	return mountoptions.MountOpt{Name: name, Value: value, HasValue: true}
}

func (s *allowSuite) TestUIDSelf(c *C) {
	// the caller uid from the suite mocks is 1000
	c.Check(mountoptions.IsOptionAllowed(s.rec, optv("uid", "1000"), 1000), Equals, true)
	c.Check(mountoptions.IsOptionAllowed(s.rec, optv("uid", "1001"), 1000), Equals, false)
	c.Check(mountoptions.IsOptionAllowed(s.rec, optv("uid", "abc"), 1000), Equals, false)
	c.Check(mountoptions.IsOptionAllowed(s.rec, optv("uid", "-1"), 1000), Equals, false)
	c.Check(mountoptions.IsOptionAllowed(s.rec, optv("uid", ""), 1000), Equals, false)
}

func (s *allowSuite) TestUIDSelfWithoutValue(c *C) {
	c.Check(mountoptions.IsOptionAllowed(s.rec, opt("uid"), 1000), Equals, false)
	c.Check(s.log.String(), testutil.Contains, `mount option "uid" is listed in allow_uid_self but has no value`)
}

func (s *allowSuite) TestUIDSelfShortCircuitsPlainAllow(c *C) {
	// "uid" is also on the plain allow list, but names on a self list
	// are decided by the self rule alone
	c.Check(mountoptions.IsOptionAllowed(s.rec, optv("uid", "1001"), 1000), Equals, false)
}

func (s *allowSuite) TestGIDSelf(c *C) {
	// uid 1000 is in groups 1000 and 1001 per the suite mocks
	c.Check(mountoptions.IsOptionAllowed(s.rec, optv("gid", "1000"), 1000), Equals, true)
	c.Check(mountoptions.IsOptionAllowed(s.rec, optv("gid", "1001"), 1000), Equals, true)
	c.Check(mountoptions.IsOptionAllowed(s.rec, optv("gid", "2000"), 1000), Equals, false)
	c.Check(mountoptions.IsOptionAllowed(s.rec, optv("gid", "abc"), 1000), Equals, false)
	c.Check(mountoptions.IsOptionAllowed(s.rec, opt("gid"), 1000), Equals, false)
}

func (s *allowSuite) TestGIDSelfFailsClosedOnLookupError(c *C) {
	restore := mountoptions.MockUIDInGroup(func(uid, gid uint32) (bool, error) {
		return true, errors.New("nsswitch exploded")
	})
	defer restore()

	c.Check(mountoptions.IsOptionAllowed(s.rec, optv("gid", "1000"), 1000), Equals, false)
	c.Check(s.log.String(), testutil.Contains, "cannot check group membership of uid 1000: nsswitch exploded")
}

func (s *allowSuite) TestExactValuePair(c *C) {
	c.Check(mountoptions.IsOptionAllowed(s.rec, optv("shortname", "mixed"), 1000), Equals, true)
	c.Check(mountoptions.IsOptionAllowed(s.rec, optv("shortname", "lower"), 1000), Equals, false)
}

func (s *allowSuite) TestPlainAllow(c *C) {
	// a bare name on the allow list permits the option with any value
	c.Check(mountoptions.IsOptionAllowed(s.rec, opt("ro"), 1000), Equals, true)
	c.Check(mountoptions.IsOptionAllowed(s.rec, optv("ro", "1"), 1000), Equals, true)
	// "quiet=" on the allow list likewise
	c.Check(mountoptions.IsOptionAllowed(s.rec, opt("quiet"), 1000), Equals, true)
	c.Check(mountoptions.IsOptionAllowed(s.rec, optv("quiet", "very"), 1000), Equals, true)

	c.Check(mountoptions.IsOptionAllowed(s.rec, opt("sync"), 1000), Equals, false)
	c.Check(mountoptions.IsOptionAllowed(s.rec, optv("umask", "0022"), 1000), Equals, false)
}

func (s *allowSuite) TestXNamespaceAlwaysAllowed(c *C) {
	c.Check(mountoptions.IsOptionAllowed(s.rec, opt("x-gvfs-show"), 1000), Equals, true)
	c.Check(mountoptions.IsOptionAllowed(s.rec, optv("x-mount.idle-timeout", "5s"), 1000), Equals, true)
}

func (s *allowSuite) TestEmptyRecord(c *C) {
	empty := &mountoptions.Record{}
	c.Check(mountoptions.IsOptionAllowed(empty, opt("ro"), 1000), Equals, false)
	c.Check(mountoptions.IsOptionAllowed(empty, opt("x-whatever"), 1000), Equals, true)
}
