package metrics

import "github.com/ewoodward/gridshift/core/factory"

var sinkRegistry = factory.NewRegistry[Sink]()

// RegisterSink adds a metrics sink factory identified by name.
func RegisterSink(name string, f factory.Factory[Sink]) error {
	return sinkRegistry.Register(name, f)
}

// NewFromConfigs creates a Sink from the provided configurations. With no
// configuration a NopSink is returned; multiple sinks are combined into a
// MultiSink.
func NewFromConfigs(cfgs []factory.ModuleConfig) (Sink, error) {
	if len(cfgs) == 0 {
		return NopSink{}, nil
	}
	if len(cfgs) == 1 {
		return sinkRegistry.Create(cfgs[0])
	}
	sinks := make([]Sink, len(cfgs))
	for i, c := range cfgs {
		s, err := sinkRegistry.Create(c)
		if err != nil {
			return nil, err
		}
		sinks[i] = s
	}
	return NewMultiSink(sinks...), nil
}
