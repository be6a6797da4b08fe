package sim

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/inference-sim/visit-sim/sim/trace"
)

// MaxSeriesDays bounds a single series run (roughly a century).
const MaxSeriesDays = 36525

// DailyReading pairs a business date with the reading simulated for it.
type DailyReading struct {
	Date    BusinessDate
	Reading Reading
}

// Record converts the reading to a trace record for sensorID.
func (dr DailyReading) Record(sensorID string) trace.DayRecord {
	rec := trace.DayRecord{
		SensorID:  sensorID,
		Date:      dr.Date.String(),
		Weekday:   dr.Date.Weekday().String(),
		Closed:    dr.Reading.IsClosed(),
		Condition: string(dr.Reading.Condition),
	}
	if n, ok := dr.Reading.Value(); ok {
		rec.Count = &n
	}
	return rec
}

// Series simulates every date in [from, to], in date order.
// With workers > 1 dates are evaluated concurrently; the output is
// identical to a serial run because each date seeds its own generator.
func (s *VisitSensor) Series(ctx context.Context, from, to BusinessDate, workers int) ([]DailyReading, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("series end %s is before start %s", to, from)
	}
	days := from.DaysUntil(to) + 1
	if days > MaxSeriesDays {
		return nil, fmt.Errorf("series of %d days exceeds limit of %d", days, MaxSeriesDays)
	}
	if workers < 1 {
		workers = 1
	}

	logrus.Debugf("simulating %d days for sensor %s with %d workers", days, s.name, workers)

	out := make([]DailyReading, days)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range out {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d := from.AddDays(i)
			out[i] = DailyReading{Date: d, Reading: s.VisitCount(d)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Cancellation can stop scheduling without any goroutine failing.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Trace runs Series and records the result at the given trace level.
func (s *VisitSensor) Trace(ctx context.Context, from, to BusinessDate, workers int, level trace.TraceLevel) (*trace.SensorTrace, error) {
	readings, err := s.Series(ctx, from, to, workers)
	if err != nil {
		return nil, err
	}
	st := trace.NewSensorTrace(trace.TraceConfig{Level: level, SensorID: s.id.String()})
	for _, dr := range readings {
		st.Record(dr.Record(""))
	}
	return st, nil
}
