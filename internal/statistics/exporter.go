package statistics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "pot2go"
)

// Register adds all collectors to registerer and stops at the first failure
func Register(registerer prometheus.Registerer, collectors ...prometheus.Collector) error {
	for _, collector := range collectors {
		if err := registerer.Register(collector); err != nil {
			return fmt.Errorf("unable to register collector: %w", err)
		}
	}
	return nil
}
