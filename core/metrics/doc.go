package metrics

// Package metrics defines interfaces and events for observing simulation
// runs. Sinks like PromSink and InfluxSink record day results and run
// summaries and can be combined with NewMultiSink. The factory helpers
// return a MultiSink automatically when multiple sinks are configured.
