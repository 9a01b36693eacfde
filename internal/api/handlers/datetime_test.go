package handlers_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
)

func TestParseLocalDateTime(t *testing.T) {
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	// летнее время, UTC+1
	start, err := handlers.ParseLocalDateTime("2024-06-01", "14:00", loc)
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2024, time.June, 1, 13, 0, 0, 0, time.UTC)))
	assert.Equal(t, loc, start.Location())

	// зимнее время совпадает с UTC
	start, err = handlers.ParseLocalDateTime("2024-01-15", "09:30", loc)
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2024, time.January, 15, 9, 30, 0, 0, time.UTC)))

	_, err = handlers.ParseLocalDateTime("2024-02-30", "09:00", loc)
	assert.Error(t, err)

	_, err = handlers.ParseLocalDateTime("2024-06-01", "9am", loc)
	assert.Error(t, err)
}
