package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCents(t *testing.T) {
	tests := []struct {
		name  string
		cents int64
		want  string
	}{
		{name: "dollars and cents", cents: 1050, want: "$10.50"},
		{name: "whole dollars", cents: 500, want: "$5.00"},
		{name: "single cent", cents: 1, want: "$0.01"},
		{name: "zero", cents: 0, want: "$0.00"},
		{name: "large amount", cents: 123456789, want: "$1234567.89"},
		{name: "negative", cents: -250, want: "-$2.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCents(tt.cents))
		})
	}
}
