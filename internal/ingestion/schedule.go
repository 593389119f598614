package ingestion

import (
	"regexp"
	"strconv"
)

// Dosing slot names and their default administration times.
const (
	SlotMorning = "morning"
	SlotNoon    = "noon"
	SlotEvening = "evening"
	SlotNight   = "night"
	SlotCustom  = "custom"
)

var slotTimes = map[string]string{
	SlotMorning: "08:00",
	SlotNoon:    "12:00",
	SlotEvening: "18:00",
	SlotNight:   "20:00",
}

// slotSets maps a canonical frequency to its default slot set.
var slotSets = map[string][]string{
	"once daily":        {SlotMorning},
	"twice daily":       {SlotMorning, SlotNight},
	"three times daily": {SlotMorning, SlotNoon, SlotNight},
	"four times daily":  {SlotMorning, SlotNoon, SlotEvening, SlotNight},
	"every other day":   {SlotMorning},
	"weekly":            {SlotMorning},
	"monthly":           {SlotMorning},
}

// timingSlots maps a canonical timing to the single slot it pins a
// once-daily dose to.
var timingSlots = map[string]string{
	"morning":      SlotMorning,
	"noon":         SlotNoon,
	"night":        SlotNight,
	"with meals":   SlotMorning,
	"before meals": SlotMorning,
	"after meals":  SlotMorning,
}

// deriveSchedule builds the dosing slots for one medication. Explicit clock
// times take precedence over frequency-derived defaults; an as-needed
// medication gets no schedule at all.
func deriveSchedule(med MedicationInput) []ScheduleRecord {
	if med.Timing == "as needed" {
		return nil
	}

	if len(med.CustomTimes) > 0 {
		recs := make([]ScheduleRecord, 0, len(med.CustomTimes))
		for _, t := range med.CustomTimes {
			recs = append(recs, ScheduleRecord{Slot: SlotCustom, Time: t})
		}
		return recs
	}

	slots, ok := slotSets[med.Frequency]
	if !ok {
		if med.Frequency == "" && med.Timing == "" {
			return nil
		}
		// Interval frequencies and unrecognised phrasings fall back to a
		// single daily dose.
		slots = []string{SlotMorning}
	}

	// A single-dose frequency with an explicit timing moves to that slot.
	if len(slots) == 1 {
		if slot, ok := timingSlots[med.Timing]; ok {
			slots = []string{slot}
		}
	}

	recs := make([]ScheduleRecord, 0, len(slots))
	for _, slot := range slots {
		recs = append(recs, ScheduleRecord{Slot: slot, Time: slotTimes[slot]})
	}
	return recs
}

var everyNHoursRe = regexp.MustCompile(`(?i)^every\s+(\d+)\s+hours?$`)

// dailyRate returns the doses-per-day implied by a canonical frequency, or
// ok=false when no rate can be derived.
func dailyRate(frequency string) (float64, bool) {
	switch frequency {
	case "once daily":
		return 1, true
	case "twice daily":
		return 2, true
	case "three times daily":
		return 3, true
	case "four times daily":
		return 4, true
	case "every other day":
		return 0.5, true
	case "weekly":
		return 1.0 / 7, true
	case "monthly":
		return 1.0 / 30, true
	}
	if m := everyNHoursRe.FindStringSubmatch(frequency); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil && n > 0 {
			return 24 / float64(n), true
		}
	}
	return 0, false
}
