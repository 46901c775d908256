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
	_ "embed"
	"fmt"
	"sync"

	"github.com/mvo5/goconfigparser"
)

//go:embed builtin_mount_options.conf
var builtinMountOptionsConf string

var (
	builtinOnce  sync.Once
	builtinStore store
	builtinErr   error
)

// builtinPolicy returns the built-in mount option policy store. The
// embedded resource never changes, so it is parsed once per process
// and shared read-only afterwards.
func builtinPolicy() (store, error) {
	builtinOnce.Do(func() {
		builtinStore, builtinErr = parseBuiltinPolicy(builtinMountOptionsConf)
	})
	return builtinStore, builtinErr
}

func parseBuiltinPolicy(content string) (store, error) {
	cfg := goconfigparser.New()
	if err := cfg.ReadString(content); err != nil {
		return nil, fmt.Errorf("cannot parse built-in mount options: %v", err)
	}
	st, err := parseConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("cannot parse built-in mount options: %v", err)
	}
	if _, ok := st[configGroupDefaults]; !ok {
		return nil, fmt.Errorf("cannot use built-in mount options: no global %q section found", configGroupDefaults)
	}
	return st, nil
}

// CheckBuiltin verifies that the built-in mount option policy is
// usable. The service cannot safely handle mount requests without it,
// so a failure here is fatal at startup.
func CheckBuiltin() error {
	_, err := builtinPolicy()
	return err
}
