package monitoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetLogger(t *testing.T) {
	orig := Logf
	defer func() { Logf = orig }()

	var got string
	SetLogger(func(format string, v ...interface{}) { got = fmt.Sprintf(format, v...) })
	Logf("survivor %d", 3)
	assert.Equal(t, "survivor 3", got)

	SetLogger(nil)
	assert.NotPanics(t, func() { Logf("dropped") })
}
