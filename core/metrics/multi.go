package metrics

// MultiSink fans events out to multiple sinks. Each event is forwarded only
// to the sinks implementing the matching recorder interface.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// Close closes all sinks, returning the first error encountered.
func (m *MultiSink) Close() error {
	var first error
	for _, s := range m.Sinks {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// RecordDay forwards the day event to sinks recording days.
func (m *MultiSink) RecordDay(ev DayEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(DayRecorder); ok {
			if err := rec.RecordDay(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordRun forwards the run summary to sinks recording runs.
func (m *MultiSink) RecordRun(ev RunEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(RunRecorder); ok {
			if err := rec.RecordRun(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
