package statistics

import (
	"github.com/markusressel/pot2go/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

const setpointSubsystem = "setpoint"

type SetpointCollector struct {
	setpoint   *controller.SetpointController
	actuatorId string

	committedValue  *prometheus.Desc
	commitCount     *prometheus.Desc
	writeErrorCount *prometheus.Desc
}

func NewSetpointCollector(setpoint *controller.SetpointController, actuatorId string) *SetpointCollector {
	return &SetpointCollector{
		setpoint:   setpoint,
		actuatorId: actuatorId,
		committedValue: prometheus.NewDesc(prometheus.BuildFQName(namespace, setpointSubsystem, "committed_value"),
			"Last setpoint written to the actuator",
			[]string{"id"}, nil,
		),
		commitCount: prometheus.NewDesc(prometheus.BuildFQName(namespace, setpointSubsystem, "commit_count"),
			"Number of commits since startup",
			[]string{"id"}, nil,
		),
		writeErrorCount: prometheus.NewDesc(prometheus.BuildFQName(namespace, setpointSubsystem, "write_error_count"),
			"Number of failed actuator writes since startup",
			[]string{"id"}, nil,
		),
	}
}

func (collector *SetpointCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.committedValue
	ch <- collector.commitCount
	ch <- collector.writeErrorCount
}

// Collect implements required collect function for all prometheus collectors
func (collector *SetpointCollector) Collect(ch chan<- prometheus.Metric) {
	stats := collector.setpoint.Statistics()
	id := collector.actuatorId
	// nothing has been written yet, so there is no meaningful value to report
	if stats.HasCommitted {
		ch <- prometheus.MustNewConstMetric(collector.committedValue, prometheus.GaugeValue, float64(stats.Committed), id)
	}
	ch <- prometheus.MustNewConstMetric(collector.commitCount, prometheus.CounterValue, float64(stats.CommitCount), id)
	ch <- prometheus.MustNewConstMetric(collector.writeErrorCount, prometheus.CounterValue, float64(stats.WriteErrorCount), id)
}
