package signal

import "scout/internal/md"

// Breakout flags the latest fine-grained close trading above the prior
// completed daily bar's high. A missing or short daily series means no
// breakout evidence, so the detector reads false rather than failing.
type Breakout struct{}

func (Breakout) Detect(fine, daily md.Series) bool {
	if fine.Len() == 0 || daily.Len() < 2 {
		return false
	}

	yesterdayHigh := daily[daily.Len()-2].High
	last, _ := fine.Last()
	return last.Close > yesterdayHigh
}
