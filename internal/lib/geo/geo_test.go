package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_ValidPair(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	tests := []struct {
		name     string
		district string
		upazila  string
		want     bool
	}{
		{
			name:     "valid pair",
			district: "Dhaka",
			upazila:  "Savar",
			want:     true,
		},
		{
			name:     "case insensitive",
			district: "dhaka",
			upazila:  "savar",
			want:     true,
		},
		{
			name:     "upazila of another district",
			district: "Dhaka",
			upazila:  "Hathazari",
			want:     false,
		},
		{
			name:     "unknown district",
			district: "Atlantis",
			upazila:  "Savar",
			want:     false,
		},
		{
			name:     "empty upazila",
			district: "Dhaka",
			upazila:  "",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.ValidPair(tt.district, tt.upazila))
		})
	}
}

func TestProvider_Listings(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	assert.NotEmpty(t, p.Districts())
	assert.NotEmpty(t, p.Upazilas(""))

	dhaka := p.Upazilas("Dhaka")
	require.NotEmpty(t, dhaka)
	for _, u := range dhaka {
		assert.Equal(t, "1", u.DistrictID)
	}

	assert.Empty(t, p.Upazilas("Atlantis"))
}
