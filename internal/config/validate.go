package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Cabinet.validate(); err != nil {
		return fmt.Errorf("cabinet: %w", err)
	}

	if c.Server.RateLimitRPS <= 0 {
		return fmt.Errorf("server.rate_limit_rps must be > 0 (got %d)", c.Server.RateLimitRPS)
	}

	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func (c *CabinetConfig) validate() error {
	if c.LowStockThreshold <= 0 {
		return fmt.Errorf("low_stock_threshold must be > 0 (got %d)", c.LowStockThreshold)
	}
	if c.ExpiryWarningDays <= 0 {
		return fmt.Errorf("expiry_warning_days must be > 0 (got %d)", c.ExpiryWarningDays)
	}
	if c.FuzzyMatchThreshold < 0 || c.FuzzyMatchThreshold > 100 {
		return fmt.Errorf("fuzzy_match_threshold must be in 0..100 (got %d)", c.FuzzyMatchThreshold)
	}
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("store_timeout must be > 0 (got %v)", c.StoreTimeout)
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("history_limit must be > 0 (got %d)", c.HistoryLimit)
	}
	if c.StatsWindowDays <= 0 {
		return fmt.Errorf("stats_window_days must be > 0 (got %d)", c.StatsWindowDays)
	}

	c.AdminUserIDs = ParseAdminIDs(c.AdminUserIDsRaw)

	return nil
}
