package kernel_test

import (
	"math"
	"testing"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		wantErr  []string
	}{
		{name: "addis ababa", lat: 9.0054, lon: 38.7636},
		{name: "boundaries", lat: -90, lon: 180},
		{name: "latitude too high", lat: 90.0001, lon: 0, wantErr: []string{"latitude"}},
		{name: "longitude too low", lat: 0, lon: -180.5, wantErr: []string{"longitude"}},
		{name: "both invalid", lat: 100, lon: 200, wantErr: []string{"latitude", "longitude"}},
		{name: "latitude not a number", lat: math.NaN(), lon: 38.7636, wantErr: []string{"latitude"}},
		{name: "longitude not a number", lat: 9.0054, lon: math.NaN(), wantErr: []string{"longitude"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := kernel.NewGeoPoint(tt.lat, tt.lon)

			if len(tt.wantErr) == 0 {
				require.NoError(t, err)
				require.NoError(t, p.Validate())
				assert.InDelta(t, tt.lat, p.Lat(), 1e-9)
				assert.InDelta(t, tt.lon, p.Lon(), 1e-9)
				return
			}

			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
			for _, part := range tt.wantErr {
				assert.Contains(t, err.Error(), part)
			}
			assert.Equal(t, kernel.ErrGeoPointIsNotConstructed, p.Validate())
		})
	}
}

func TestGeoPoint_IsEqual(t *testing.T) {
	a, _ := kernel.NewGeoPoint(9.01, 38.76)
	b, _ := kernel.NewGeoPoint(9.01, 38.76)
	c, _ := kernel.NewGeoPoint(9.02, 38.76)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
	assert.False(t, a.IsEqual(kernel.GeoPoint{}))
	assert.Equal(t, "(9.010000, 38.760000)", a.String())
}
