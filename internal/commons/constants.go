package commons

import "time"

const (
	DefaultPageSize    = 10
	DefaultMaxPageSize = 100
	DefaultRateLimit   = 10
	DefaultRateBurst   = 20
	TotalCountHeader   = "X-Total-Count"
	ServerIdleTimeout  = time.Minute
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ShutdownTimeout    = 10 * time.Second
	ReadinessTimeout   = 2 * time.Second
	RateLimitIdleTTL   = 3 * time.Minute
)
