package calendar_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/availability"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/infra/cache/calendar"
)

var weekStart = time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)

func sampleGrid() *availability.WeekGrid {
	return &availability.WeekGrid{
		WeekStart: weekStart,
		Days:      []time.Time{weekStart},
		Rows: []availability.GridRow{
			{
				Time: "09:00",
				Cells: []availability.GridCell{
					{Start: weekStart.Add(9 * time.Hour), State: availability.SlotBlocked, Label: domain.LabelBooked},
				},
			},
		},
	}
}

func TestCache_GetWeek_Hit(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	cache := calendar.NewCache(db, time.Minute)
	ctx := context.Background()

	data, err := json.Marshal(sampleGrid())
	require.NoError(t, err)

	mockRedis.ExpectGet("calendar:generation").SetVal("3")
	mockRedis.ExpectGet("calendar:week:3:user:2024-06-03").SetVal(string(data))

	grid, generation, err := cache.GetWeek(ctx, domain.RoleUser, weekStart)
	require.NoError(t, err)

	assert.Equal(t, "3", generation)
	assert.True(t, weekStart.Equal(grid.WeekStart))
	require.Len(t, grid.Rows, 1)
	assert.Equal(t, availability.SlotBlocked, grid.Rows[0].Cells[0].State)

	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestCache_GetWeek_Miss(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	cache := calendar.NewCache(db, time.Minute)

	mockRedis.ExpectGet("calendar:generation").RedisNil()
	mockRedis.ExpectGet("calendar:week:0:admin:2024-06-03").RedisNil()

	_, generation, err := cache.GetWeek(context.Background(), domain.RoleAdmin, weekStart)
	assert.ErrorIs(t, err, calendar.ErrCacheMiss)
	assert.Equal(t, "0", generation)

	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestCache_GetWeek_RedisError(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	cache := calendar.NewCache(db, time.Minute)

	mockRedis.ExpectGet("calendar:generation").SetErr(errors.New("connection refused"))

	_, generation, err := cache.GetWeek(context.Background(), domain.RoleUser, weekStart)
	assert.ErrorIs(t, err, calendar.ErrCache)
	assert.Empty(t, generation)
}

func TestCache_GetWeek_Corrupted(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	cache := calendar.NewCache(db, time.Minute)

	mockRedis.ExpectGet("calendar:generation").SetVal("1")
	mockRedis.ExpectGet("calendar:week:1:user:2024-06-03").SetVal("not json")

	_, generation, err := cache.GetWeek(context.Background(), domain.RoleUser, weekStart)
	assert.ErrorIs(t, err, calendar.ErrDecode)
	assert.Equal(t, "1", generation)
}

func TestCache_SetWeek(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	cache := calendar.NewCache(db, 5*time.Minute)
	grid := sampleGrid()

	data, err := json.Marshal(grid)
	require.NoError(t, err)

	mockRedis.ExpectSet("calendar:week:7:user:2024-06-03", data, 5*time.Minute).SetVal("OK")

	err = cache.SetWeek(context.Background(), "7", domain.RoleUser, weekStart, grid)
	assert.NoError(t, err)

	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestCache_SetWeek_EmptyGeneration(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	cache := calendar.NewCache(db, time.Minute)

	err := cache.SetWeek(context.Background(), "", domain.RoleUser, weekStart, sampleGrid())
	assert.ErrorIs(t, err, calendar.ErrCache)

	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

// Сетка, построенная до инвалидации, остается в старом поколении
func TestCache_SetWeek_AfterInvalidate_KeepsReadGeneration(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	cache := calendar.NewCache(db, time.Minute)
	ctx := context.Background()
	grid := sampleGrid()

	data, err := json.Marshal(grid)
	require.NoError(t, err)

	mockRedis.ExpectGet("calendar:generation").SetVal("5")
	mockRedis.ExpectGet("calendar:week:5:user:2024-06-03").RedisNil()
	mockRedis.ExpectIncr("calendar:generation").SetVal(6)
	mockRedis.ExpectSet("calendar:week:5:user:2024-06-03", data, time.Minute).SetVal("OK")

	_, generation, err := cache.GetWeek(ctx, domain.RoleUser, weekStart)
	require.ErrorIs(t, err, calendar.ErrCacheMiss)
	require.Equal(t, "5", generation)

	// бронирование зафиксировано, пока сетка строилась
	require.NoError(t, cache.Invalidate(ctx))

	require.NoError(t, cache.SetWeek(ctx, generation, domain.RoleUser, weekStart, grid))

	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestCache_Invalidate(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	cache := calendar.NewCache(db, time.Minute)

	mockRedis.ExpectIncr("calendar:generation").SetVal(8)
	assert.NoError(t, cache.Invalidate(context.Background()))

	mockRedis.ExpectIncr("calendar:generation").SetErr(errors.New("readonly"))
	assert.ErrorIs(t, cache.Invalidate(context.Background()), calendar.ErrCache)

	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestNop(t *testing.T) {
	var cache calendar.Nop
	ctx := context.Background()

	_, generation, err := cache.GetWeek(ctx, domain.RoleUser, weekStart)
	assert.ErrorIs(t, err, calendar.ErrCacheMiss)
	assert.Empty(t, generation)
	assert.NoError(t, cache.SetWeek(ctx, "0", domain.RoleUser, weekStart, sampleGrid()))
	assert.NoError(t, cache.Invalidate(ctx))
}
