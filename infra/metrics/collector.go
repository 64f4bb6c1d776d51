package metrics

import (
	"context"

	coremetrics "github.com/ewoodward/gridshift/core/metrics"
	"github.com/ewoodward/gridshift/internal/eventbus"
)

// StartEventCollector subscribes to the day-result bus and records each
// event on the sink. It stops when the context is canceled or the bus
// closes. Delivery is best effort; the bus drops events for slow consumers.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus[coremetrics.DayEvent], sink coremetrics.Sink) {
	if bus == nil || sink == nil {
		return
	}
	rec, ok := sink.(coremetrics.DayRecorder)
	if !ok {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, open := <-sub:
				if !open {
					return
				}
				_ = rec.RecordDay(ev)
			}
		}
	}()
}
