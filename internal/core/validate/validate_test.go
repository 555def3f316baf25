package validate

import (
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/storm/internal/core/grid"
)

func TestNotEmpty(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"path", "map.json", false},
		{"empty string", "", true},
		{"only spaces", "   ", true},
		{"only tabs", "\t\t", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NotEmpty(tt.input)
			assert.Equal(t, tt.wantErr, err != nil, "NotEmpty(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		})
	}
}

func TestSymbol(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    rune
		wantErr bool
	}{
		{"hash", "#", '#', false},
		{"space", " ", ' ', false},
		{"del is accepted", "\x7f", 0x7f, false},
		{"two characters", "ab", 0, true},
		{"empty", "", 0, true},
		{"tab", "\t", 0, true},
		{"non ascii", "é", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Symbol(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSymbolField(t *testing.T) {
	require.NoError(t, SymbolField("fill", "."))

	err := SymbolField("fill", "..")
	require.Error(t, err)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "fill", fieldErrs[0].Field)
}

func TestDimension(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "1", want: 1},
		{in: " 1000 ", want: 1000},
		{in: "0", wantErr: true},
		{in: "1001", wantErr: true},
		{in: "-4", wantErr: true},
		{in: "ten", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Dimension(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, grid.ErrInvalidDimension)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
