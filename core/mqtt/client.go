package mqtt

import "github.com/ewoodward/gridshift/core/results"

// ResultPublisher publishes simulated day results to interested consumers
// such as dashboards or home automation bridges.
type ResultPublisher interface {
	// PublishResult sends one day result and returns the message identifier
	// assigned to it.
	PublishResult(res results.DayResult) (messageID string, err error)
}
