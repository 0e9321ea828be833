package domain

import "time"

// HistoryDays is the fixed length of the calorie history handed to the
// recommendation provider.
const HistoryDays = 7

// Week is a trailing calorie history. Slot 0 is today, slot i covers
// today minus i days. A nil slot means no calories were recorded that day;
// a day whose meals sum to exactly zero collapses to nil as well, since the
// two cases are indistinguishable from the sum.
type Week [HistoryDays]*float64

// BuildWeek buckets meals by calendar day relative to today and sums their
// calories per slot. Pure: no side effects, order-independent over meals.
func BuildWeek(today time.Time, meals []Meal) Week {
	var week Week
	day := truncateToDay(today)
	for offset := 0; offset < HistoryDays; offset++ {
		target := day.AddDate(0, 0, -offset)
		total := 0.0
		for _, m := range meals {
			if truncateToDay(m.CreatedDate).Equal(target) {
				total += m.Calories
			}
		}
		if total != 0 {
			v := total
			week[offset] = &v
		}
	}
	return week
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
