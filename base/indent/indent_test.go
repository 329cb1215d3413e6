// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package indent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndent(t *testing.T) {
	assert.Equal(t, "\t\t", Tabs(2))
	assert.Equal(t, "      ", Spaces(2, 3))
	assert.Equal(t, "  a\n\n  b", Lines("a\n\nb", 1, 2))
}
