package config

import "time"

const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Default loan policy: two weeks, $0.50 per day overdue, five entries
	// of recent activity on the dashboard.
	DefaultLoanPeriodDays   = 14
	DefaultLateFeePerDay    = 0.50
	DefaultRecentLoansLimit = 5
)
