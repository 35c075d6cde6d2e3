//go:build unit

package vehicle_test

import (
	"testing"

	"parkflow/internal/domain/vehicle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    vehicle.Plate
		wantErr bool
	}{
		{name: "already normalised", raw: "B1234XY", want: "B1234XY"},
		{name: "lower case with spaces and dashes", raw: " b 1234-xy ", want: "B1234XY"},
		{name: "tabs are stripped", raw: "d\t55\tab", want: "D55AB"},
		{name: "empty", raw: "", wantErr: true},
		{name: "only separators", raw: " - - ", wantErr: true},
		{name: "too long", raw: "ABCDEFGHIJKLMNOPQ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := vehicle.NewPlate(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, vehicle.ErrInvalidPlate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewClass(t *testing.T) {
	t.Run("known classes", func(t *testing.T) {
		for _, raw := range []string{"bike", "Car", " HEAVY "} {
			class, err := vehicle.NewClass(raw)
			require.NoError(t, err, raw)
			assert.True(t, class.IsValid())
		}
	})

	t.Run("unknown class", func(t *testing.T) {
		_, err := vehicle.NewClass("truck")
		assert.ErrorIs(t, err, vehicle.ErrInvalidClass)
	})
}
