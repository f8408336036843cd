package db

import "time"

// Scan is one persisted analysis result, as served by the history API.
type Scan struct {
	ID        int64     `json:"id"`
	Address   string    `json:"address"`
	Chain     string    `json:"chain"`
	Intent    string    `json:"intent"`
	Category  string    `json:"category"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}

// Stats is the aggregate view for the dashboard header.
type Stats struct {
	TotalScans    int            `json:"total_scans"`
	ByCategory    map[string]int `json:"by_category"`
	UniqueWallets int            `json:"unique_wallets"`
}
