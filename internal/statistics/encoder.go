package statistics

import (
	"github.com/markusressel/pot2go/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

const encoderSubsystem = "encoder"

type EncoderCollector struct {
	encoder controller.EncoderReader

	pendingValue             *prometheus.Desc
	clockwiseTriggers        *prometheus.Desc
	counterClockwiseTriggers *prometheus.Desc
}

func NewEncoderCollector(encoder controller.EncoderReader) *EncoderCollector {
	return &EncoderCollector{
		encoder: encoder,
		pendingValue: prometheus.NewDesc(prometheus.BuildFQName(namespace, encoderSubsystem, "pending_value"),
			"Setpoint candidate accumulated from encoder pulses",
			nil, nil,
		),
		clockwiseTriggers: prometheus.NewDesc(prometheus.BuildFQName(namespace, encoderSubsystem, "clockwise_triggers"),
			"Number of rising edges seen on the primary encoder line",
			nil, nil,
		),
		counterClockwiseTriggers: prometheus.NewDesc(prometheus.BuildFQName(namespace, encoderSubsystem, "counter_clockwise_triggers"),
			"Number of rising edges seen on the secondary encoder line",
			nil, nil,
		),
	}
}

func (collector *EncoderCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.pendingValue
	ch <- collector.clockwiseTriggers
	ch <- collector.counterClockwiseTriggers
}

// Collect implements required collect function for all prometheus collectors
func (collector *EncoderCollector) Collect(ch chan<- prometheus.Metric) {
	state := collector.encoder.Snapshot()
	ch <- prometheus.MustNewConstMetric(collector.pendingValue, prometheus.GaugeValue, float64(state.Pending))
	ch <- prometheus.MustNewConstMetric(collector.clockwiseTriggers, prometheus.CounterValue, float64(state.ClockwiseCount))
	ch <- prometheus.MustNewConstMetric(collector.counterClockwiseTriggers, prometheus.CounterValue, float64(state.CounterClockwiseCount))
}
