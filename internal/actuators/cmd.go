package actuators

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/markusressel/pot2go/internal/configuration"
	"github.com/markusressel/pot2go/internal/ui"
	"github.com/markusressel/pot2go/internal/util"
)

var ErrGetValueNotSupported = errors.New("actuator does not support reading its value")

// CmdActuator delegates writing the setpoint to an external executable
type CmdActuator struct {
	Config configuration.ActuatorConfig `json:"config"`
}

func (a *CmdActuator) GetId() string {
	return a.Config.ID
}

func (a *CmdActuator) SetValue(value int) error {
	conf := a.Config.Cmd.SetValue
	args := util.ReplaceValuePlaceholder(conf.Args, value)

	_, err := util.SafeCmdExecution(conf.Exec, args, util.CmdTimeout)
	if err != nil {
		return fmt.Errorf("failed to set value of %s: %w", a.GetId(), err)
	}
	return nil
}

func (a *CmdActuator) GetValue() (int, error) {
	conf := a.Config.Cmd.GetValue
	if conf == nil {
		return 0, ErrGetValueNotSupported
	}

	output, err := util.SafeCmdExecution(conf.Exec, conf.Args, util.CmdTimeout)
	if err != nil {
		return 0, err
	}

	value, err := strconv.ParseFloat(output, 64)
	if err != nil {
		ui.Warning("Unable to read int from command output: %s", conf.Exec)
		return 0, err
	}
	return int(value), nil
}
