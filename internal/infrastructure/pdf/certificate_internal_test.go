package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":        "0",
		"999":      "999",
		"25000":    "25.000",
		"1000000":  "1.000.000",
		"-4500000": "-4.500.000",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(in), in)
	}
}
