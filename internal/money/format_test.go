package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	cases := map[int64]string{
		0:       "$0",
		44990:   "$44.990",
		179960:  "$179.960",
		1234567: "$1.234.567",
		-17990:  "-$17.990",
	}
	for in, want := range cases {
		assert.Equal(t, want, Format(in), "amount %d", in)
	}
}
