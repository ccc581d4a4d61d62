package ptr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTo(t *testing.T) {
	v := 3
	p := To(v)
	v = 4
	assert.Equal(t, 3, *p)
}

func TestDeref(t *testing.T) {
	assert.Equal(t, "def", Deref[string](nil, "def"))
	assert.Equal(t, "set", Deref(To("set"), "def"))
}
