package statistics

import (
	"github.com/markusressel/pot2go/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	inputSubsystem = "input"
	loopSubsystem  = "loop"
)

// LoopCollector exports the button pad input and the timing of the control loop
type LoopCollector struct {
	loop     *controller.Loop
	sourceId string

	rawSample       *prometheus.Desc
	unknownCount    *prometheus.Desc
	readErrorCount  *prometheus.Desc
	transitionCount *prometheus.Desc

	cycleDurationAvg *prometheus.Desc
	cycleDurationMax *prometheus.Desc
}

func NewLoopCollector(loop *controller.Loop, sourceId string) *LoopCollector {
	return &LoopCollector{
		loop:     loop,
		sourceId: sourceId,
		rawSample: prometheus.NewDesc(prometheus.BuildFQName(namespace, inputSubsystem, "raw_sample"),
			"Last raw sample read from the button pad",
			[]string{"id"}, nil,
		),
		unknownCount: prometheus.NewDesc(prometheus.BuildFQName(namespace, inputSubsystem, "unknown_count"),
			"Number of samples that matched no button range",
			[]string{"id"}, nil,
		),
		readErrorCount: prometheus.NewDesc(prometheus.BuildFQName(namespace, inputSubsystem, "read_error_count"),
			"Number of failed reads from the button pad",
			[]string{"id"}, nil,
		),
		transitionCount: prometheus.NewDesc(prometheus.BuildFQName(namespace, inputSubsystem, "transition_count"),
			"Number of debounced button transitions",
			[]string{"id"}, nil,
		),
		cycleDurationAvg: prometheus.NewDesc(prometheus.BuildFQName(namespace, loopSubsystem, "cycle_duration_avg_seconds"),
			"Average duration of recent control cycles",
			nil, nil,
		),
		cycleDurationMax: prometheus.NewDesc(prometheus.BuildFQName(namespace, loopSubsystem, "cycle_duration_max_seconds"),
			"Maximum duration of recent control cycles",
			nil, nil,
		),
	}
}

func (collector *LoopCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.rawSample
	ch <- collector.unknownCount
	ch <- collector.readErrorCount
	ch <- collector.transitionCount
	ch <- collector.cycleDurationAvg
	ch <- collector.cycleDurationMax
}

// Collect implements required collect function for all prometheus collectors
func (collector *LoopCollector) Collect(ch chan<- prometheus.Metric) {
	stats := collector.loop.Statistics()
	id := collector.sourceId
	ch <- prometheus.MustNewConstMetric(collector.rawSample, prometheus.GaugeValue, float64(stats.RawSample), id)
	ch <- prometheus.MustNewConstMetric(collector.unknownCount, prometheus.CounterValue, float64(stats.UnknownCount), id)
	ch <- prometheus.MustNewConstMetric(collector.readErrorCount, prometheus.CounterValue, float64(stats.ReadErrorCount), id)
	ch <- prometheus.MustNewConstMetric(collector.transitionCount, prometheus.CounterValue, float64(stats.TransitionCount), id)
	ch <- prometheus.MustNewConstMetric(collector.cycleDurationAvg, prometheus.GaugeValue, stats.CycleDurationAvg.Seconds())
	ch <- prometheus.MustNewConstMetric(collector.cycleDurationMax, prometheus.GaugeValue, stats.CycleDurationMax.Seconds())
}
