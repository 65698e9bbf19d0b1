package docsis

import "time"

// RateTracker converts the modem's monotonically increasing codeword
// counters into per-minute error rates across polls. A negative delta means
// the counter reset (modem reboot), so the rate for that period is zero.
type RateTracker struct {
	lastTime          time.Time
	lastCorrectable   int64
	lastUncorrectable int64
	primed            bool
}

// Rates records the counters observed at now and returns the per-minute
// rates since the previous observation. The first observation yields zero
// rates.
func (t *RateTracker) Rates(now time.Time, correctable, uncorrectable int64) (correctablePerMin, uncorrectablePerMin float64) {
	if t.primed {
		delta := now.Sub(t.lastTime).Seconds()
		if delta > 0 {
			correctablePerMin = clampedRate(correctable-t.lastCorrectable, delta)
			uncorrectablePerMin = clampedRate(uncorrectable-t.lastUncorrectable, delta)
		}
	}

	t.lastTime = now
	t.lastCorrectable = correctable
	t.lastUncorrectable = uncorrectable
	t.primed = true

	return correctablePerMin, uncorrectablePerMin
}

func clampedRate(delta int64, seconds float64) float64 {
	if delta < 0 {
		delta = 0
	}
	return round(float64(delta)/seconds*60, 2)
}
