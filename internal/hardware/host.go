package hardware

import (
	"fmt"
	"sync"

	"github.com/markusressel/pot2go/internal/ui"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

var (
	initOnce sync.Once
	initErr  error

	openPortsMu sync.Mutex
	openPorts   = map[string]spi.PortCloser{}
)

// Init loads the periph.io host drivers. It is safe to call multiple times,
// only the first call does any work.
func Init() error {
	initOnce.Do(func() {
		state, err := host.Init()
		if err != nil {
			initErr = fmt.Errorf("failed to initialize periph.io host: %w", err)
			return
		}
		for _, d := range state.Loaded {
			ui.Debug("Loaded periph driver: %s", d)
		}
		for _, f := range state.Failed {
			ui.Debug("Failed to load periph driver %s: %v", f.D, f.Err)
		}
	})
	return initErr
}

// OpenSpi opens the named SPI port (e.g. "SPI0.0") in mode 0 with 8 bit words.
// The returned closer releases the port.
func OpenSpi(bus string, maxHz int64) (spi.Conn, func() error, error) {
	if err := Init(); err != nil {
		return nil, nil, err
	}
	port, err := spireg.Open(bus)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open SPI bus %s: %w", bus, err)
	}
	conn, err := port.Connect(physic.Frequency(maxHz)*physic.Hertz, spi.Mode0, 8)
	if err != nil {
		_ = port.Close()
		return nil, nil, fmt.Errorf("failed to connect to SPI bus %s: %w", bus, err)
	}
	openPortsMu.Lock()
	openPorts[bus] = port
	openPortsMu.Unlock()

	closer := func() error {
		openPortsMu.Lock()
		defer openPortsMu.Unlock()
		if _, ok := openPorts[bus]; !ok {
			return nil
		}
		delete(openPorts, bus)
		return port.Close()
	}
	return conn, closer, nil
}

// CleanupAtExit closes all SPI ports that are still open.
// It does nothing if no port has been opened.
func CleanupAtExit() {
	openPortsMu.Lock()
	defer openPortsMu.Unlock()
	for bus, port := range openPorts {
		if err := port.Close(); err != nil {
			ui.Warning("Failed to close SPI bus %s: %v", bus, err)
		}
		delete(openPorts, bus)
	}
}

// InputPin looks up a GPIO pin by name and configures it as a pulled up input
// that reports rising edges.
func InputPin(name string) (gpio.PinIO, error) {
	if err := Init(); err != nil {
		return nil, err
	}
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("GPIO pin %s not found", name)
	}
	if err := pin.In(gpio.PullUp, gpio.RisingEdge); err != nil {
		return nil, fmt.Errorf("failed to configure GPIO pin %s: %w", name, err)
	}
	return pin, nil
}
