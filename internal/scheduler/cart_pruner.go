package scheduler

import (
	"github.com/paikari/paikariworld-backend/config"
	"github.com/paikari/paikariworld-backend/internal/app/cart"
	"github.com/paikari/paikariworld-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CartPruner evicts idle in-memory cart stores and, for the file
// backend, deletes cart records older than the guest TTL.
type CartPruner struct {
	cron    *cron.Cron
	manager *cart.Manager
	config  config.CartConfig
}

func NewCartPruner(manager *cart.Manager, cfg config.CartConfig) *CartPruner {
	return &CartPruner{
		cron:    cron.New(),
		manager: manager,
		config:  cfg,
	}
}

func (s *CartPruner) Start() error {
	// Hourly at minute 0. Evicted stores rehydrate from their
	// persisted record on the guest's next request.
	_, err := s.cron.AddFunc("0 * * * *", func() {
		evicted := s.manager.PruneIdle(s.config.GuestTTL)
		if evicted > 0 {
			logger.Info("Evicted idle cart stores", map[string]interface{}{
				"evicted": evicted,
			})
		}

		if s.config.Backend != "file" {
			return
		}
		removed, err := cart.PruneFiles(s.config.StorageDir, s.config.GuestTTL)
		if err != nil {
			logger.Error("Failed to prune cart storage files", err)
			return
		}
		if removed > 0 {
			logger.Info("Pruned stale cart records", map[string]interface{}{
				"removed": removed,
			})
		}
	})

	if err != nil {
		logger.Error("Failed to add cron job for cart pruning", err)
		return err
	}

	s.cron.Start()
	logger.Info("Cart pruner started (hourly)", nil)

	return nil
}

func (s *CartPruner) Stop() {
	logger.Info("Stopping cart pruner...", nil)
	s.cron.Stop()
	logger.Info("Cart pruner stopped", nil)
}
