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
	"errors"
	"strings"

	"github.com/mvo5/goconfigparser"

	"github.com/diskcore/diskmountd/logger"
	"github.com/diskcore/diskmountd/strutil"
)

const (
	// configGroupDefaults is both the section name of the policy that
	// applies to any device and, within a section, the record key of
	// the policy that applies to any filesystem type.
	configGroupDefaults = "defaults"

	keyDefaults     = "defaults"
	keyAllow        = "allow"
	keyAllowUIDSelf = "allow_uid_self"
	keyAllowGIDSelf = "allow_gid_self"
)

var errNoSections = errors.New("no sections found")

// store is a parsed mount option policy: section (device path, alias
// or the "defaults" marker) to filesystem type (or the "defaults"
// marker) to policy record.
type store map[string]map[string]*Record

// extractFSType classifies a policy key into the filesystem type it
// names and the record field it sets. A key that is exactly one of the
// four field names belongs to the type-agnostic record. Unknown keys
// yield an empty filesystem type.
func extractFSType(key string) (fstype, field string) {
	switch key {
	case keyDefaults, keyAllow, keyAllowUIDSelf, keyAllowGIDSelf:
		return configGroupDefaults, key
	}

	// longest suffix first: "_allow_uid_self" before "_allow"
	for _, f := range []string{keyAllowUIDSelf, keyAllowGIDSelf, keyAllow, keyDefaults} {
		if strings.HasSuffix(key, "_"+f) {
			return strings.TrimSuffix(key, "_"+f), f
		}
	}

	return "", ""
}

// parseKeyValuePair parses a single policy key/value pair into the
// per-filesystem-type record map of one section. Invalid keys and
// unparsable values are discarded without failing the section.
func parseKeyValuePair(options map[string]*Record, key, value string) {
	key = strings.ToLower(key)
	fstype, field := extractFSType(key)
	if fstype == "" {
		logger.Debugf("ignoring invalid mount option policy key %q", key)
		return
	}

	// goconfigparser joins the values of a key repeated within one
	// section with a newline; the last occurrence overwrites the
	// earlier ones
	if i := strings.LastIndexByte(value, '\n'); i >= 0 {
		logger.Noticef("duplicate mount option policy key %q detected", key)
		value = value[i+1:]
	}

	opts, err := ParseOptions(value)
	if err != nil {
		logger.Noticef("cannot parse value of mount option policy key %q: %v", key, err)
		return
	}
	tokens := make([]string, len(opts))
	for i, o := range opts {
		tokens[i] = o.String()
	}
	tokens = strutil.Deduplicate(tokens)

	rec := options[fstype]
	if rec == nil {
		rec = &Record{}
		options[fstype] = rec
	}

	warnDup := func(old []string) {
		if old != nil {
			logger.Noticef("duplicate mount option policy key %q detected", key)
		}
	}
	switch field {
	case keyAllowUIDSelf:
		warnDup(rec.AllowUIDSelf)
		rec.AllowUIDSelf = tokens
	case keyAllowGIDSelf:
		warnDup(rec.AllowGIDSelf)
		rec.AllowGIDSelf = tokens
	case keyAllow:
		warnDup(rec.Allow)
		rec.Allow = tokens
	case keyDefaults:
		warnDup(rec.Defaults)
		rec.Defaults = tokens
	}
}

// parseConfig builds a two-level policy store from a parsed
// sectioned key/value file. Sections that fail to parse are skipped
// with a warning; an input without any sections yields errNoSections.
func parseConfig(cfg *goconfigparser.ConfigParser) (store, error) {
	sections := cfg.Sections()
	if len(sections) == 0 {
		return nil, errNoSections
	}

	st := make(store, len(sections))
	for _, section := range sections {
		keys, err := cfg.Options(section)
		if err != nil {
			logger.Noticef("cannot parse mount option policy section %q: %v", section, err)
			continue
		}

		options := make(map[string]*Record, len(keys))
		for _, key := range keys {
			value, err := cfg.Get(section, key)
			if err != nil {
				logger.Noticef("cannot get value of mount option policy key %q: %v", key, err)
				continue
			}
			parseKeyValuePair(options, key, value)
		}
		st[section] = options
	}

	return st, nil
}
