package pipeline

import (
	"github.com/pkg/errors"

	"f1strategydash/pkg/model"
)

// CompareDrivers pairs the laps of two drivers of an already loaded session.
// Only laps where both drivers set a time are included, so in-laps and red
// flag laps drop out of the comparison. The view is antisymmetric:
// swapping the drivers negates every delta.
func CompareDrivers(s *model.SessionData, driverA, driverB string) (*model.DriverComparison, error) {
	if !s.HasDriver(driverA) {
		return nil, errors.Wrapf(ErrNotFound, "driver %q in %s", driverA, s.ID)
	}
	if !s.HasDriver(driverB) {
		return nil, errors.Wrapf(ErrNotFound, "driver %q in %s", driverB, s.ID)
	}

	byLapA := map[int]float64{}
	for _, lap := range s.LapsForDriver(driverA) {
		if lap.Time > 0 {
			byLapA[lap.Lap] = lap.Time
		}
	}

	cmp := &model.DriverComparison{
		Session: s.ID,
		DriverA: driverA,
		DriverB: driverB,
	}
	for _, lap := range s.LapsForDriver(driverB) {
		if lap.Time <= 0 {
			continue
		}
		timeA, ok := byLapA[lap.Lap]
		if !ok {
			continue
		}
		cmp.Laps = append(cmp.Laps, model.LapDelta{
			Lap:   lap.Lap,
			TimeA: timeA,
			TimeB: lap.Time,
			Delta: timeA - lap.Time,
		})
	}
	return cmp, nil
}
