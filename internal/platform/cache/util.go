package cache

import (
	"time"
)

// TimeUntilNextMidnightKST returns the duration until the next midnight in
// Seoul, when the exchange calendar rolls over.
func TimeUntilNextMidnightKST() time.Duration {
	loc, _ := time.LoadLocation("Asia/Seoul")
	now := time.Now().In(loc)

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).Add(24 * time.Hour)

	return midnight.Sub(now)
}
