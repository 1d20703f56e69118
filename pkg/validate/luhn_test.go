package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardNumber(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "valid", input: "4561261212345467", want: "4561261212345467", wantOK: true},
		{name: "with spaces", input: "4561 2612 1234 5467", want: "4561261212345467", wantOK: true},
		{name: "with dashes", input: "4561-2612-1234-5467", want: "4561261212345467", wantOK: true},
		{name: "bad checksum", input: "4561261212345464", wantOK: false},
		{name: "too short", input: "79927398713", wantOK: false},
		{name: "letters", input: "4561a61212345467", wantOK: false},
		{name: "empty", input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CardNumber(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMaskCard(t *testing.T) {
	assert.Equal(t, "****5467", MaskCard("4561261212345467"))
	assert.Equal(t, "123", MaskCard("123"))
}
