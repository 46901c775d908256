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

package osutil

import (
	"fmt"
	"os/user"
	"strconv"
)

var userLookupId = user.LookupId

var userGroupIds = func(usr *user.User) ([]string, error) {
	return usr.GroupIds()
}

// MockUserLookupId mocks the user database lookup by numeric id, for
// use in tests.
func MockUserLookupId(f func(uid string) (*user.User, error)) (restore func()) {
	old := userLookupId
	userLookupId = f
	return func() {
		userLookupId = old
	}
}

// MockUserGroupIds mocks the supplementary group lookup for a user,
// for use in tests.
func MockUserGroupIds(f func(usr *user.User) ([]string, error)) (restore func()) {
	old := userGroupIds
	userGroupIds = f
	return func() {
		userGroupIds = old
	}
}

// UserInfo resolves a numeric user id to the user name and the primary
// group id.
func UserInfo(uid uint32) (username string, gid uint32, err error) {
	usr, err := userLookupId(strconv.FormatUint(uint64(uid), 10))
	if err != nil {
		return "", 0, err
	}

	g, err := strconv.ParseUint(usr.Gid, 10, 32)
	if err != nil {
		return "", 0, fmt.Errorf("cannot parse group id %q of user %q: %v", usr.Gid, usr.Username, err)
	}

	return usr.Username, uint32(g), nil
}

// UIDInGroup returns whether the user with the given id is a member of
// the given group, either as the primary group or as one of the
// supplementary groups.
func UIDInGroup(uid, gid uint32) (bool, error) {
	usr, err := userLookupId(strconv.FormatUint(uint64(uid), 10))
	if err != nil {
		return false, err
	}

	want := strconv.FormatUint(uint64(gid), 10)
	if usr.Gid == want {
		return true, nil
	}

	gids, err := userGroupIds(usr)
	if err != nil {
		return false, fmt.Errorf("cannot get supplementary groups of user %q: %v", usr.Username, err)
	}
	for _, g := range gids {
		if g == want {
			return true, nil
		}
	}

	return false, nil
}
