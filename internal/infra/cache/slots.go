package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/Restaurant-BookingService/internal/domain"
)

// SlotsCache кеширует рассчитанную сетку слотов на дату.
// Хранится картина, не зависящая от размера компании гостя: причина
// недоступности и остаток мест; пригодность под конкретную компанию
// выводится при чтении. TTL короткий, кеш переживает только всплеск
// однотипных запросов.
type SlotsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New подключается к Redis и проверяет соединение
func New(ctx context.Context, addr, password string, db int, ttl time.Duration) (*SlotsCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: failed to connect to redis: %w", err)
	}

	return &SlotsCache{client: client, ttl: ttl}, nil
}

func slotsKey(date time.Time) string {
	return "slots:" + date.Format(domain.DateFormat)
}

// GetSlots читает сетку слотов на дату; (nil, false) при промахе
func (c *SlotsCache) GetSlots(ctx context.Context, date time.Time) ([]domain.AvailableSlot, bool) {
	val, err := c.client.Get(ctx, slotsKey(date)).Result()
	if err != nil {
		// redis.Nil — обычный промах, остальное тоже считаем промахом:
		// кеш не должен ронять чтение слотов
		return nil, false
	}

	var slots []domain.AvailableSlot
	if err := json.Unmarshal([]byte(val), &slots); err != nil {
		return nil, false
	}

	return slots, true
}

// SaveSlots сохраняет сетку слотов на дату
func (c *SlotsCache) SaveSlots(ctx context.Context, date time.Time, slots []domain.AvailableSlot) error {
	data, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("cache: failed to marshal slots: %w", err)
	}

	return c.client.Set(ctx, slotsKey(date), data, c.ttl).Err()
}

// InvalidateDate сбрасывает кеш слотов на дату.
// Вызывается после каждой операции, меняющей занятость даты.
func (c *SlotsCache) InvalidateDate(ctx context.Context, date time.Time) error {
	return c.client.Del(ctx, slotsKey(date)).Err()
}

// InvalidateRange сбрасывает кеш слотов для всех дат интервала [from, to]
func (c *SlotsCache) InvalidateRange(ctx context.Context, from, to time.Time) error {
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	last := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location())

	for !day.After(last) {
		if err := c.client.Del(ctx, slotsKey(day)).Err(); err != nil {
			return err
		}
		day = day.AddDate(0, 0, 1)
	}

	return nil
}

// Close закрывает соединение с Redis
func (c *SlotsCache) Close() error {
	return c.client.Close()
}
