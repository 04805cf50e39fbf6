package signal

import (
	"scout/internal/indicator"
	"scout/internal/md"
)

const (
	flowMinBars   = 21
	volMeanWindow = 20
)

// Flow flags a volume surge with price above fair value: latest volume
// at or above VolMult times its 20-period rolling mean, while the
// latest close sits above the running VWAP.
type Flow struct {
	VolMult float64
}

func (f Flow) Detect(bars md.Series) bool {
	if bars.Len() < flowMinBars {
		return false
	}

	volMean := indicator.Last(indicator.RollingMean(bars.Volumes(), volMeanWindow))
	vwap := indicator.Last(indicator.VWAP(bars))
	if !volMean.OK || !vwap.OK {
		return false
	}

	last, _ := bars.Last()
	return last.Volume >= f.VolMult*volMean.F && last.Close > vwap.F
}
