package actuators

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/markusressel/pot2go/internal/configuration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/spi"
)

func getEchoPath() string {
	// unlikely to fail
	p, _ := exec.LookPath("echo")
	return p
}

type recordingSpiConn struct {
	writes [][]byte
	err    error
}

func (c *recordingSpiConn) String() string {
	return "recording"
}

func (c *recordingSpiConn) Tx(w, r []byte) error {
	if c.err != nil {
		return c.err
	}
	frame := make([]byte, len(w))
	copy(frame, w)
	c.writes = append(c.writes, frame)
	return nil
}

func (c *recordingSpiConn) Duplex() conn.Duplex {
	return conn.Full
}

func (c *recordingSpiConn) TxPackets(p []spi.Packet) error {
	for _, packet := range p {
		if err := c.Tx(packet.W, packet.R); err != nil {
			return err
		}
	}
	return nil
}

func TestNewActuator_NoSubConfig(t *testing.T) {
	// GIVEN
	config := configuration.ActuatorConfig{ID: "pot"}

	// WHEN
	actuator, err := NewActuator(config)

	// THEN
	assert.Error(t, err)
	assert.Nil(t, actuator)
}

func TestFileActuator_SetAndGetValue(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "wiper")
	actuator, err := NewActuator(configuration.ActuatorConfig{
		ID:   "pot",
		File: &configuration.FileActuatorConfig{Path: path},
	})
	require.NoError(t, err)

	// WHEN
	err = actuator.SetValue(200)

	// THEN
	assert.NoError(t, err)
	data, _ := os.ReadFile(path)
	assert.Equal(t, "200", string(data))
	value, err := actuator.GetValue()
	assert.NoError(t, err)
	assert.Equal(t, 200, value)
	assert.Equal(t, "pot", actuator.GetId())
}

func TestFileActuator_GetValueMissingFile(t *testing.T) {
	// GIVEN
	actuator, _ := NewActuator(configuration.ActuatorConfig{
		File: &configuration.FileActuatorConfig{Path: filepath.Join(t.TempDir(), "missing")},
	})

	// WHEN
	_, err := actuator.GetValue()

	// THEN
	assert.Error(t, err)
}

func TestCmdActuator_SetValue(t *testing.T) {
	// GIVEN
	actuator, _ := NewActuator(configuration.ActuatorConfig{
		ID: "pot",
		Cmd: &configuration.CmdActuatorConfig{
			SetValue: &configuration.ExecConfig{Exec: getEchoPath(), Args: []string{"%value%"}},
		},
	})

	// WHEN
	err := actuator.SetValue(42)

	// THEN
	assert.NoError(t, err)
}

func TestCmdActuator_GetValue(t *testing.T) {
	// GIVEN
	actuator, _ := NewActuator(configuration.ActuatorConfig{
		Cmd: &configuration.CmdActuatorConfig{
			SetValue: &configuration.ExecConfig{Exec: getEchoPath()},
			GetValue: &configuration.ExecConfig{Exec: getEchoPath(), Args: []string{"128"}},
		},
	})

	// WHEN
	value, err := actuator.GetValue()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 128, value)
}

func TestCmdActuator_GetValueNotConfigured(t *testing.T) {
	// GIVEN
	actuator, _ := NewActuator(configuration.ActuatorConfig{
		Cmd: &configuration.CmdActuatorConfig{
			SetValue: &configuration.ExecConfig{Exec: getEchoPath()},
		},
	})

	// WHEN
	_, err := actuator.GetValue()

	// THEN
	assert.ErrorIs(t, err, ErrGetValueNotSupported)
}

func TestCmdActuator_SetValueUnknownExecutable(t *testing.T) {
	// GIVEN
	actuator, _ := NewActuator(configuration.ActuatorConfig{
		Cmd: &configuration.CmdActuatorConfig{
			SetValue: &configuration.ExecConfig{Exec: "/does/not/exist"},
		},
	})

	// WHEN
	err := actuator.SetValue(1)

	// THEN
	assert.Error(t, err)
}

func TestSpiActuator_WritesCommandAndValue(t *testing.T) {
	// GIVEN
	conn := &recordingSpiConn{}
	actuator := newSpiActuator(configuration.ActuatorConfig{
		ID:  "pot",
		Spi: &configuration.SpiActuatorConfig{Bus: "SPI0.0"},
	}, conn)

	// WHEN
	err := actuator.SetValue(200)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, [][]byte{{0x11, 200}}, conn.writes)
	value, err := actuator.GetValue()
	assert.NoError(t, err)
	assert.Equal(t, 200, value)
}

func TestSpiActuator_CustomCommand(t *testing.T) {
	// GIVEN
	conn := &recordingSpiConn{}
	actuator := newSpiActuator(configuration.ActuatorConfig{
		Spi: &configuration.SpiActuatorConfig{Bus: "SPI0.0", Command: 0x12},
	}, conn)

	// WHEN
	_ = actuator.SetValue(7)

	// THEN
	assert.Equal(t, [][]byte{{0x12, 7}}, conn.writes)
}

func TestSpiActuator_ValueOutOfRange(t *testing.T) {
	// GIVEN
	conn := &recordingSpiConn{}
	actuator := newSpiActuator(configuration.ActuatorConfig{
		Spi: &configuration.SpiActuatorConfig{Bus: "SPI0.0"},
	}, conn)

	// WHEN
	err := actuator.SetValue(256)

	// THEN
	assert.Error(t, err)
	assert.Empty(t, conn.writes)
	_, err = actuator.GetValue()
	assert.ErrorIs(t, err, ErrGetValueNotSupported)
}

func TestSpiActuator_BusError(t *testing.T) {
	// GIVEN
	conn := &recordingSpiConn{err: errors.New("bus error")}
	actuator := newSpiActuator(configuration.ActuatorConfig{
		Spi: &configuration.SpiActuatorConfig{Bus: "SPI0.0"},
	}, conn)

	// WHEN
	err := actuator.SetValue(10)

	// THEN
	assert.Error(t, err)
	_, err = actuator.GetValue()
	assert.Error(t, err)
}

func TestVirtualActuator(t *testing.T) {
	// GIVEN
	actuator, _ := NewActuator(configuration.ActuatorConfig{
		ID:      "virtual",
		Virtual: &configuration.VirtualActuatorConfig{Value: 3},
	})
	virtual := actuator.(*VirtualActuator)

	// WHEN
	initial, _ := actuator.GetValue()
	_ = actuator.SetValue(200)
	value, _ := actuator.GetValue()

	// THEN
	assert.Equal(t, 3, initial)
	assert.Equal(t, 200, value)
	assert.Equal(t, 1, virtual.Writes())
}
