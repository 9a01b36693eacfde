package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-StudioBooking/internal/availability"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

const (
	keyGeneration = "calendar:generation"
	keyWeekFormat = "calendar:week:%s:%s:%s" // generation, role, week start
)

// Cache кэш отрисованных недельных сеток в Redis
//
// Инвалидация через счетчик поколения: любое изменение бронирований или настроек
// увеличивает calendar:generation, старые ключи перестают читаться и истекают по TTL
type Cache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewCache создает кэш календаря
func NewCache(client redis.Cmdable, ttl time.Duration) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
	}
}

// GetWeek возвращает сетку недели для роли или ErrCacheMiss
//
// Вместе с сеткой возвращается поколение, под которым выполнялось чтение.
// Его нужно передать в SetWeek, чтобы сетка, построенная до инвалидации,
// не попала в новое поколение. Пустое поколение означает, что его прочитать не удалось
func (c *Cache) GetWeek(ctx context.Context, role domain.Role, weekStart time.Time) (*availability.WeekGrid, string, error) {
	generation, err := c.generation(ctx)
	if err != nil {
		return nil, "", err
	}

	key := weekKey(generation, role, weekStart)
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, generation, ErrCacheMiss
	}
	if err != nil {
		return nil, generation, fmt.Errorf("%w: GetWeek - get %s: %v", ErrCache, key, err)
	}

	var grid availability.WeekGrid
	if err := json.Unmarshal(data, &grid); err != nil {
		return nil, generation, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return &grid, generation, nil
}

// SetWeek сохраняет сетку недели для роли под поколением, полученным из GetWeek
func (c *Cache) SetWeek(ctx context.Context, generation string, role domain.Role, weekStart time.Time, grid *availability.WeekGrid) error {
	if generation == "" {
		return fmt.Errorf("%w: SetWeek - empty generation", ErrCache)
	}

	key := weekKey(generation, role, weekStart)
	data, err := json.Marshal(grid)
	if err != nil {
		return fmt.Errorf("%w: SetWeek - marshal grid: %v", ErrCache, err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: SetWeek - set %s: %v", ErrCache, key, err)
	}

	return nil
}

// Invalidate делает все закэшированные сетки недействительными
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, keyGeneration).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate - incr generation: %v", ErrCache, err)
	}
	return nil
}

func (c *Cache) generation(ctx context.Context) (string, error) {
	generation, err := c.client.Get(ctx, keyGeneration).Result()
	if errors.Is(err, redis.Nil) {
		return "0", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: get generation: %v", ErrCache, err)
	}
	return generation, nil
}

func weekKey(generation string, role domain.Role, weekStart time.Time) string {
	return fmt.Sprintf(keyWeekFormat, generation, role, weekStart.Format(domain.DateFormat))
}

// Nop кэш-заглушка, когда Redis выключен в конфигурации
type Nop struct{}

// GetWeek всегда промах
func (Nop) GetWeek(context.Context, domain.Role, time.Time) (*availability.WeekGrid, string, error) {
	return nil, "", ErrCacheMiss
}

// SetWeek ничего не делает
func (Nop) SetWeek(context.Context, string, domain.Role, time.Time, *availability.WeekGrid) error {
	return nil
}

// Invalidate ничего не делает
func (Nop) Invalidate(context.Context) error {
	return nil
}
