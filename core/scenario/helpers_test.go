package scenario

import (
	"time"

	"github.com/ewoodward/gridshift/core/model"
)

func testDate() time.Time {
	return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
}

// flatSignal builds a day with constant intensity and renewable share.
func flatSignal(ci, ren float64) model.DaySignal {
	sig := model.DaySignal{Date: testDate()}
	for h := range sig.Intensity {
		sig.Intensity[h] = ci
		sig.Renewable[h] = ren
	}
	return sig
}

// cheapHoursSignal builds a day at baseCI with the given hours dropped to
// cheapCI. Renewable share mirrors the intensity inversely so the two
// strategies agree on the interesting hours.
func cheapHoursSignal(baseCI, cheapCI float64, cheap ...int) model.DaySignal {
	sig := flatSignal(baseCI, 0.2)
	for _, h := range cheap {
		sig.Intensity[h] = cheapCI
		sig.Renewable[h] = 0.8
	}
	return sig
}

func uniformProfile(dailyKWh, flexShare float64) model.HouseholdProfile {
	p := model.HouseholdProfile{DailyKWh: dailyKWh, FlexibleShare: flexShare}
	for h := range p.Weights {
		p.Weights[h] = 1.0 / float64(model.HoursPerDay)
	}
	return p
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
