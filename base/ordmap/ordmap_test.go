// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ordmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	om := New[string, int]()
	om.Add("Unlit", 0)
	om.Add("LitStatic", 1)
	om.Add("DebugOverlay", 2)
	om.Add("LitStatic", 10)

	assert.Equal(t, 3, om.Len())
	assert.Equal(t, []string{"Unlit", "LitStatic", "DebugOverlay"}, om.Keys())
	v, ok := om.ValueByKeyTry("LitStatic")
	assert.True(t, ok)
	assert.Equal(t, 10, v)
	_, ok = om.ValueByKeyTry("LitInstanced")
	assert.False(t, ok)
	assert.Equal(t, "[{Unlit 0} {LitStatic 10} {DebugOverlay 2}]", om.String())

	var keys []string
	for k := range om.All() {
		keys = append(keys, k)
		if k == "LitStatic" {
			break
		}
	}
	assert.Equal(t, []string{"Unlit", "LitStatic"}, keys)

	om.Reset()
	assert.Equal(t, 0, om.Len())
	om.Add("Unlit", 1)
	assert.Equal(t, 1, om.Len())

	var zero Map[string, int]
	zero.Add("a", 1)
	assert.Equal(t, []string{"a"}, zero.Keys())
	var nilMap *Map[string, int]
	assert.Equal(t, 0, nilMap.Len())
}
