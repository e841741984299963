package actuators

import (
	"github.com/markusressel/pot2go/internal/configuration"
	"github.com/markusressel/pot2go/internal/util"
)

// FileActuator writes the setpoint as a plain integer to a file, e.g. a sysfs attribute
type FileActuator struct {
	Config configuration.ActuatorConfig `json:"config"`
}

func (a *FileActuator) GetId() string {
	return a.Config.ID
}

func (a *FileActuator) SetValue(value int) error {
	filePath, err := util.ExpandHome(a.Config.File.Path)
	if err != nil {
		return err
	}
	return util.WriteIntToFileAtomic(value, filePath)
}

func (a *FileActuator) GetValue() (int, error) {
	filePath, err := util.ExpandHome(a.Config.File.Path)
	if err != nil {
		return 0, err
	}
	return util.ReadIntFromFile(filePath)
}
