package inputs

import (
	"fmt"
	"strconv"

	"github.com/markusressel/pot2go/internal/configuration"
	"github.com/markusressel/pot2go/internal/ui"
	"github.com/markusressel/pot2go/internal/util"
)

type CmdAnalogSource struct {
	Config configuration.InputConfig `json:"config"`
}

func (s *CmdAnalogSource) GetId() string {
	return s.Config.ID
}

func (s *CmdAnalogSource) ReadRawSample() (int, error) {
	exec := s.Config.Cmd.Exec
	args := s.Config.Cmd.Args
	result, err := util.SafeCmdExecution(exec, args, util.CmdTimeout)
	if err != nil {
		return 0, fmt.Errorf("input %s: %w", s.GetId(), err)
	}

	sample, err := strconv.ParseFloat(result, 64)
	if err != nil {
		ui.Warning("input %s: Unable to read int from command output: %s", s.GetId(), exec)
		return 0, err
	}

	return int(sample), nil
}
