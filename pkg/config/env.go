package config

const (
	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvLoanPeriodDays   = "LOAN_PERIOD_DAYS"
	EnvLateFeePerDay    = "LATE_FEE_PER_DAY"
	EnvRecentLoansLimit = "RECENT_LOANS_LIMIT"
	EnvSeedDemoData     = "SEED_DEMO_DATA"
)
