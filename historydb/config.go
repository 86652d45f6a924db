package historydb

type Config struct {
	// Terminal transactions kept, oldest pruned first.
	HistoryCap int
	// Notifications kept, oldest pruned first.
	NotificationCap int
}

func DefaultConfig() *Config {
	return &Config{
		HistoryCap:      100,
		NotificationCap: 50,
	}
}
