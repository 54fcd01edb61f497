// Copyright 2024 hhorai. All rights reserved.
// Use of this source code is governed by a MIT license that can be found
// in the LICENSE file.

// Package rlog gives every protocol component in ranpdu a named,
// structured logger instead of each one rolling its own fmt.Printf calls,
// the way the teacher repo did for its RAN session logging.
package rlog

import (
	"os"

	"github.com/charmbracelet/log"
)

// New returns a logger tagged with name, e.g. a radio bearer name or
// "per"/"asn1" for the codec packages. Output defaults to stderr at Info
// level; callers in tests usually lower it to Debug.
func New(name string) *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          name,
	})
	l.SetLevel(log.InfoLevel)
	return l
}

// Discard returns a logger that drops everything, for tests that don't
// want bearer chatter on stderr.
func Discard() *log.Logger {
	l := log.New(discardWriter{})
	l.SetLevel(log.FatalLevel + 1)
	return l
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
