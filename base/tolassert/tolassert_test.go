// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tolassert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type mockT struct {
	failed bool
}

func (m *mockT) Errorf(format string, args ...any) {
	m.failed = true
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(t, 3.1415, 3.1416))
	assert.True(t, EqualTol(t, float32(1), 1.00001, 1.0e-4))

	mock := &mockT{}
	assert.False(t, EqualTol(mock, 1.0, 1.1, 0.01))
	assert.True(t, mock.failed)

	mock = &mockT{}
	assert.False(t, EqualTolSlice(mock, []float32{1, 2}, []float32{1}, 0.1))
	assert.True(t, mock.failed)
	assert.True(t, EqualTolSlice(t, []float32{1, 2}, []float32{1.01, 1.99}, 0.05))
}
