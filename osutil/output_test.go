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

package osutil_test

import (
	"errors"

	. "gopkg.in/check.v1"

	"github.com/diskcore/diskmountd/osutil"
)

type outputErrSuite struct{}

var _ = Suite(&outputErrSuite{})

func (s *outputErrSuite) TestOutputErr(c *C) {
	cmdErr := errors.New("exit status 1")

	c.Check(osutil.OutputErr(nil, cmdErr), Equals, cmdErr)
	c.Check(osutil.OutputErr([]byte("  \n"), cmdErr), Equals, cmdErr)

	err := osutil.OutputErr([]byte("not found\n"), cmdErr)
	c.Check(err, ErrorMatches, `exit status 1 \(not found\)`)

	err = osutil.OutputErr([]byte("first line\nsecond line\n"), cmdErr)
	c.Check(err, ErrorMatches, "(?s)exit status 1\n-----\nfirst line\nsecond line\n-----")
}
