package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/bson"

	"sira/backend/internal/config"
	"sira/backend/internal/models"
)

// GetAllReports повертає повний список репортів для адмін-панелі.
// Список кешується в Redis на короткий TTL; кеш скидається при будь-якій
// мутації репортів. Якщо Redis недоступний — читаємо напряму з Mongo.
func (s *Service) GetAllReports(ctx context.Context) ([]models.Report, error) {
	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, config.ReportCacheKey).Result()
		if err == nil {
			var reports []models.Report
			if jsonErr := json.Unmarshal([]byte(cached), &reports); jsonErr == nil {
				return reports, nil
			}
			// Пошкоджений кеш — ігноруємо і перечитуємо з бази.
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("WARN: report cache read failed: %v", err)
		}
	}

	reports, err := s.findReports(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(reports); err == nil {
			if err := s.Redis.Set(ctx, config.ReportCacheKey, data, config.ReportCacheTTL).Err(); err != nil {
				log.Printf("WARN: report cache write failed: %v", err)
			}
		}
	}
	return reports, nil
}

// invalidateReportCache скидає кеш списку репортів. Помилки лише
// логуються: кеш — не джерело істини.
func (s *Service) invalidateReportCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, config.ReportCacheKey).Err(); err != nil {
		log.Printf("WARN: report cache invalidation failed: %v", err)
	}
}
