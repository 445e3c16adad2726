package metar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitFamilyParse(t *testing.T) {
	tests := []struct {
		name     string
		family   UnitFamily
		symbol   string
		expected Unit
		wantErr  bool
	}{
		{"knots in speed", FamilySpeed, "KT", UnitKnots, false},
		{"meters in distance", FamilyDistance, "M", UnitMeters, false},
		{"celsius in temperature", FamilyTemperature, "C", UnitCelsius, false},
		{"hectopascal in pressure", FamilyPressure, "HPA", UnitHectopascal, false},
		{"centimeters in precipitation", FamilyPrecipitation, "CM", UnitCentimeters, false},
		{"inches in distance", FamilyDistance, "IN", UnitInches, false},
		{"inches in precipitation", FamilyPrecipitation, "IN", UnitInches, false},
		{"inches in pressure", FamilyPressure, "IN", UnitInches, false},
		{"knots in temperature rejected", FamilyTemperature, "KT", "", true},
		{"lowercase rejected", FamilySpeed, "kt", "", true},
		{"empty symbol rejected", FamilySpeed, "", "", true},
		{"unknown symbol", FamilyDistance, "FURLONG", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := tt.family.Parse(tt.symbol)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnknownUnit)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, u)
		})
	}
}

func TestUnitFamilyDefault(t *testing.T) {
	tests := []struct {
		family   UnitFamily
		expected Unit
	}{
		{FamilyDistance, UnitMeters},
		{FamilyPrecipitation, UnitCentimeters},
		{FamilyPressure, UnitHectopascal},
		{FamilySpeed, UnitKilometersPerHour},
		{FamilyTemperature, UnitCelsius},
	}

	for _, tt := range tests {
		t.Run(string(tt.family), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.family.Default())
			assert.True(t, tt.family.Contains(tt.expected), "default must belong to its family")
		})
	}
}

func TestUnitFamilyContains(t *testing.T) {
	t.Run("member", func(t *testing.T) {
		assert.True(t, FamilySpeed.Contains(UnitMetersPerSecond))
	})

	t.Run("other family's unit", func(t *testing.T) {
		assert.False(t, FamilySpeed.Contains(UnitCelsius))
	})

	t.Run("none family contains nothing", func(t *testing.T) {
		assert.False(t, FamilyNone.Contains(UnitMeters))
		assert.Empty(t, FamilyNone.Units())
	})
}
