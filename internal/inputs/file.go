package inputs

import (
	"github.com/markusressel/pot2go/internal/configuration"
	"github.com/markusressel/pot2go/internal/util"
)

// FileAnalogSource reads an integer from a file, e.g. an IIO "in_voltageX_raw" attribute
type FileAnalogSource struct {
	Config configuration.InputConfig `json:"config"`
}

func (s *FileAnalogSource) GetId() string {
	return s.Config.ID
}

func (s *FileAnalogSource) ReadRawSample() (int, error) {
	filePath, err := util.ExpandHome(s.Config.File.Path)
	if err != nil {
		return 0, err
	}
	return util.ReadIntFromFile(filePath)
}
