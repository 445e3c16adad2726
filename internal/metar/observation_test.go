package metar

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildObservations(t *testing.T) {
	fixedTime := time.Date(2024, 4, 26, 12, 30, 45, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixedTime))
	defer SetClock(nil)

	t.Run("splits identifiers from properties", func(t *testing.T) {
		rows := []Row{{
			"station_id":      "EDDF",
			"datetime":        "2024-04-26T15:20:00Z",
			"temperature [C]": 21.5,
			"wind_speed [KT]": 12.0,
		}}

		obs := BuildObservations(rows)
		require.Len(t, obs, 1)

		assert.Equal(t, "EDDF", obs[0].StationID)
		assert.Equal(t, time.Date(2024, 4, 26, 15, 20, 0, 0, time.UTC), obs[0].Time)
		assert.Equal(t, fixedTime, obs[0].FetchedAt)
		assert.Equal(t, map[string]any{
			"temperature [C]": 21.5,
			"wind_speed [KT]": 12.0,
		}, obs[0].Properties)
		assert.NotContains(t, obs[0].Properties, "station_id")
		assert.NotContains(t, obs[0].Properties, "datetime")
	})

	t.Run("already-parsed time value", func(t *testing.T) {
		when := time.Date(2024, 4, 26, 9, 0, 0, 0, time.UTC)
		obs := BuildObservations([]Row{{"station_id": "KJFK", "datetime": when}})

		require.Len(t, obs, 1)
		assert.Equal(t, when, obs[0].Time)
	})

	t.Run("unparseable identifiers keep zero values", func(t *testing.T) {
		obs := BuildObservations([]Row{{
			"station_id":      42,
			"datetime":        "not a timestamp",
			"temperature [C]": 3.0,
		}})

		require.Len(t, obs, 1)
		assert.Empty(t, obs[0].StationID)
		assert.True(t, obs[0].Time.IsZero())
		assert.Equal(t, 3.0, obs[0].Properties["temperature [C]"])
	})

	t.Run("preserves row order", func(t *testing.T) {
		obs := BuildObservations([]Row{
			{"station_id": "A"},
			{"station_id": "B"},
			{"station_id": "C"},
		})

		require.Len(t, obs, 3)
		assert.Equal(t, "A", obs[0].StationID)
		assert.Equal(t, "B", obs[1].StationID)
		assert.Equal(t, "C", obs[2].StationID)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, BuildObservations(nil))
	})
}
