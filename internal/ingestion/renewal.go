package ingestion

import (
	"math"
	"time"
)

// renewalDate computes the date the dispensed quantity is expected to run
// out: prescribed date plus quantity divided by the daily consumption rate.
// As-needed medications have no predictable consumption and get no renewal
// date, nor do medications without a prescribed date, a quantity or a
// derivable rate.
func renewalDate(med MedicationInput, prescribed *time.Time) *time.Time {
	if prescribed == nil || med.Quantity <= 0 || med.Timing == "as needed" {
		return nil
	}
	rate, ok := dailyRate(med.Frequency)
	if !ok {
		return nil
	}
	days := int(math.Floor(float64(med.Quantity) / rate))
	t := prescribed.AddDate(0, 0, days)
	return &t
}
