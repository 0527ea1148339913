package weather

import "time"

// DtTxtLayout is the provider's local timestamp format for forecast samples.
const DtTxtLayout = "2006-01-02 15:04:05"

// middayHour is the sample slot chosen to represent a whole day.
const middayHour = 12

// ReduceToDaily keeps the midday (12:00:00) sample of each day, in input order.
// Days without a midday sample are absent from the result; nothing is averaged
// or interpolated. Samples with an unparseable timestamp are skipped.
func ReduceToDaily(raw []RawForecastEntry) []ForecastEntry {
	daily := make([]ForecastEntry, 0, len(raw)/8+1)
	for _, r := range raw {
		ts, err := time.Parse(DtTxtLayout, r.DtTxt)
		if err != nil {
			continue
		}
		if ts.Hour() != middayHour || ts.Minute() != 0 || ts.Second() != 0 {
			continue
		}
		daily = append(daily, ForecastEntry{
			Timestamp:            ts,
			Temperature:          r.Temperature,
			ConditionDescription: r.ConditionDescription,
			IconID:               r.IconID,
		})
	}
	return daily
}
