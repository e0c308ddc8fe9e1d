package cron

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"brightpath/services/scheduling"
	"brightpath/utils"
)

// StartCacheMaintenance evicts slots that started before today from the cache
// once a day, keeping it aligned with the feed's startTime filter.
func StartCacheMaintenance(cache *scheduling.SlotCache) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("5 0 * * *", func() {
		now := time.Now().UTC()
		startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		n := cache.EvictBefore(startOfDay)
		if n > 0 {
			utils.GetLogger().Info("slot cache maintenance: evicted past slots", zap.Int("count", n))
		}
	})
	if err != nil {
		utils.GetLogger().Error("failed to register cache maintenance job", zap.Error(err))
		return c
	}
	c.Start()
	return c
}
