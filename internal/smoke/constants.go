package smoke

import "time"

// HTTP status code constants.
const (
	StatusOK                  = 200
	StatusInternalServerError = 500
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	DefaultRounds        = 1
	DefaultWorkers       = 4
	DefaultTimeout       = 30 * time.Second
	PercentageMultiplier = 100
)
