// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"bytes"
	"log/slog"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return buf
}

func TestLog(t *testing.T) {
	buf := captureLog(t)
	assert.NoError(t, Log(nil))
	assert.Zero(t, buf.Len())

	err := New("broken mesh")
	assert.Equal(t, err, Log(err))
	assert.Contains(t, buf.String(), "broken mesh")
	assert.Contains(t, buf.String(), "errors_test.go")
}

func TestLog1(t *testing.T) {
	captureLog(t)
	assert.Equal(t, 3, Log1(strconv.Atoi("3")))
	assert.Equal(t, 0, Log1(strconv.Atoi("three")))
}

func TestMust(t *testing.T) {
	assert.NotPanics(t, func() { Must(nil) })
	assert.Panics(t, func() { Must(New("fail")) })
}

func TestWrapping(t *testing.T) {
	base := New("base")
	joined := Join(base, New("other"))
	assert.True(t, Is(joined, base))
	var target interface{ Unwrap() []error }
	assert.True(t, As(joined, &target))
}
