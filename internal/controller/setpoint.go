package controller

import (
	"sync"
	"time"

	"github.com/markusressel/pot2go/internal/actuators"
	"github.com/markusressel/pot2go/internal/buttons"
	"github.com/markusressel/pot2go/internal/encoder"
	"github.com/markusressel/pot2go/internal/persistence"
	"github.com/markusressel/pot2go/internal/ui"
)

// EncoderReader provides the current encoder state
type EncoderReader interface {
	Snapshot() encoder.State
}

// Journal records every latched setpoint
type Journal interface {
	SaveCommit(record persistence.CommitRecord) error
}

type SetpointStatistics struct {
	Committed       int
	HasCommitted    bool
	CommitCount     uint64
	WriteErrorCount uint64
}

// SetpointController latches the pending encoder value and writes it to the
// actuator whenever a commit button press is observed.
type SetpointController struct {
	encoder  EncoderReader
	actuator actuators.Actuator
	journal  Journal

	mu    sync.Mutex
	stats SetpointStatistics
}

// NewSetpointController creates a new controller, journal may be nil
func NewSetpointController(encoder EncoderReader, actuator actuators.Actuator, journal Journal) *SetpointController {
	return &SetpointController{
		encoder:  encoder,
		actuator: actuator,
		journal:  journal,
	}
}

// Handle reacts to a stable button transition and returns true if it
// caused a commit. Every id except commit is ignored.
func (c *SetpointController) Handle(id buttons.ButtonId) bool {
	if id != buttons.Commit {
		return false
	}

	value := c.encoder.Snapshot().Pending

	c.mu.Lock()
	record := persistence.CommitRecord{
		Value:       value,
		Previous:    c.stats.Committed,
		HasPrevious: c.stats.HasCommitted,
		At:          time.Now(),
	}
	c.stats.Committed = value
	c.stats.HasCommitted = true
	c.stats.CommitCount++
	c.mu.Unlock()

	err := c.actuator.SetValue(value)
	if err != nil {
		ui.Error("Error writing setpoint %d to %s: %v", value, c.actuator.GetId(), err)
		record.WriteError = err.Error()
		c.mu.Lock()
		c.stats.WriteErrorCount++
		c.mu.Unlock()
	} else {
		ui.Info("Committed setpoint: %d", value)
	}

	if c.journal != nil {
		if err := c.journal.SaveCommit(record); err != nil {
			ui.Warning("Unable to journal setpoint commit: %v", err)
		}
	}

	return true
}

// Committed returns the last latched value, ok is false until the first commit
func (c *SetpointController) Committed() (value int, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats.Committed, c.stats.HasCommitted
}

func (c *SetpointController) Statistics() SetpointStatistics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
