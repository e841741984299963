package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/markusressel/pot2go/internal/actuators"
	"github.com/markusressel/pot2go/internal/api"
	"github.com/markusressel/pot2go/internal/buttons"
	"github.com/markusressel/pot2go/internal/configuration"
	"github.com/markusressel/pot2go/internal/controller"
	"github.com/markusressel/pot2go/internal/debounce"
	"github.com/markusressel/pot2go/internal/display"
	"github.com/markusressel/pot2go/internal/encoder"
	"github.com/markusressel/pot2go/internal/hardware"
	"github.com/markusressel/pot2go/internal/inputs"
	"github.com/markusressel/pot2go/internal/keylog"
	"github.com/markusressel/pot2go/internal/persistence"
	"github.com/markusressel/pot2go/internal/statistics"
	"github.com/markusressel/pot2go/internal/ui"
	"github.com/markusressel/pot2go/internal/util"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Device holds all components of a running pot2go instance
type Device struct {
	Edges       inputs.EdgeSource
	Accumulator *encoder.Accumulator
	Input       inputs.AnalogSource
	Actuator    actuators.Actuator
	Journal     persistence.Persistence
	Setpoint    *controller.SetpointController
	Loop        *controller.Loop
	Frames      *display.Latest
	Hub         *api.Hub
}

func RunDaemon() {
	config := configuration.CurrentConfig

	if usesHardware(config) && getProcessOwner() != "root" {
		ui.Warning("GPIO and SPI access usually requires root permissions, consider running pot2go as root")
	}

	device, err := InitializeObjects(config)
	if err != nil {
		ui.Fatal("Unable to initialize device: %v", err)
	}

	if config.Statistics.Enabled {
		err = statistics.Register(prometheus.DefaultRegisterer,
			statistics.NewEncoderCollector(device.Accumulator),
			statistics.NewSetpointCollector(device.Setpoint, device.Actuator.GetId()),
			statistics.NewLoopCollector(device.Loop, device.Input.GetId()),
		)
		if err != nil {
			ui.Fatal("%v", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		if config.Statistics.Enabled {
			// === Prometheus Exporter
			port := config.Statistics.Port
			if port <= 0 || port >= 65535 {
				port = 9000
			}
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			server := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}

			g.Add(func() error {
				ui.Info("Serving metrics on port %d", port)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("cannot start prometheus metrics endpoint: %w", err)
				}
				return nil
			}, func(err error) {
				ui.Info("Stopping statistics server...")
				shutdown(server)
			})
		}
	}
	{
		if config.Api.Enabled {
			// === REST API
			rest := api.CreateRestService(&api.Device{
				Frames:  device.Frames,
				Loop:    device.Loop,
				Journal: device.Journal,
				Input:   asVirtualInput(device.Input),
				Edges:   asVirtualEdges(device.Edges),
				Hub:     device.Hub,
			}, prometheus.DefaultRegisterer)
			addr := fmt.Sprintf("%s:%d", config.Api.Host, config.Api.Port)

			g.Add(func() error {
				ui.Info("Serving API on %s", addr)
				if err := rest.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("cannot start API: %w", err)
				}
				return nil
			}, func(err error) {
				ui.Info("Stopping API server...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				if err := rest.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping API server: %v", err)
				}
			})

			// === websocket frame stream
			g.Add(func() error {
				return device.Hub.Run(ctx)
			}, func(err error) {
				cancel()
			})
		}
	}
	{
		// === encoder edges
		g.Add(func() error {
			err := device.Edges.Run(ctx, device.Accumulator)
			ui.Info("Encoder edge source stopped.")
			return err
		}, func(err error) {
			cancel()
		})
	}
	{
		// === control loop
		device.Loop.Start()
		ui.Info("Starting control loop with cycle rate %s", config.ControlCycleRate)

		g.Add(func() error {
			err := device.Loop.Run(ctx)
			var illegalState *controller.IllegalStateError
			if errors.As(err, &illegalState) {
				ui.ErrorAndNotify("ERROR", "%v", err)
			}
			return err
		}, func(err error) {
			cancel()
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case <-sig:
				ui.Info("Received SIGTERM signal, exiting...")
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	err = g.Run()
	// os.Exit skips deferred calls in main
	hardware.CleanupAtExit()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	} else {
		ui.Info("Done.")
		os.Exit(0)
	}
}

// InitializeObjects creates and wires all components described by config
func InitializeObjects(config configuration.Configuration) (*Device, error) {
	edges, err := inputs.NewEdgeSource(config.Encoder)
	if err != nil {
		return nil, fmt.Errorf("encoder: %w", err)
	}

	accumulator, err := encoder.NewAccumulator(encoder.Settings{
		PotMin:  int(config.Hardware.PotMin),
		PotMax:  int(config.Hardware.PotMax),
		Divisor: config.Software.EncoderDivisor,
		Mode:    config.Encoder.EdgeMode,
	}, edges.Lines())
	if err != nil {
		return nil, fmt.Errorf("encoder: %w", err)
	}

	input, err := inputs.NewAnalogSource(config.Input)
	if err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}

	actuator, err := actuators.NewActuator(config.Actuator)
	if err != nil {
		return nil, fmt.Errorf("actuator: %w", err)
	}

	device := &Device{
		Edges:       edges,
		Accumulator: accumulator,
		Input:       input,
		Actuator:    actuator,
		Frames:      &display.Latest{},
	}

	var journal controller.Journal
	if len(config.DbPath) > 0 {
		dbPath, err := util.ExpandHome(config.DbPath)
		if err != nil {
			return nil, err
		}
		pers := persistence.NewPersistence(dbPath)
		if err := pers.Init(); err != nil {
			return nil, fmt.Errorf("commit journal: %w", err)
		}
		device.Journal = pers
		journal = pers
	}
	device.Setpoint = controller.NewSetpointController(accumulator, actuator, journal)

	sinks := display.Multi{device.Frames, &display.LogSink{}}
	if config.Api.Enabled {
		device.Hub = api.NewHub(device.Frames)
		sinks = append(sinks, device.Hub)
	}

	device.Loop = controller.NewLoop(controller.LoopParams{
		Source:     input,
		Classifier: buttons.NewClassifier(configuration.ToRanges(config.Buttons)),
		Filter:     debounce.NewFilter(config.Software.DebounceWindowSize),
		KeyLog:     keylog.New(config.Software.KeyLogSize),
		Encoder:    accumulator,
		Setpoint:   device.Setpoint,
		Sink:       sinks,
		PotMax:     int(config.Hardware.PotMax),
		CycleRate:  config.ControlCycleRate,
	})

	return device, nil
}

func asVirtualInput(source inputs.AnalogSource) *inputs.VirtualAnalogSource {
	virtual, _ := source.(*inputs.VirtualAnalogSource)
	return virtual
}

func asVirtualEdges(source inputs.EdgeSource) *inputs.VirtualEdgeSource {
	virtual, _ := source.(*inputs.VirtualEdgeSource)
	return virtual
}

func usesHardware(config configuration.Configuration) bool {
	return config.Encoder.Gpio != nil || config.Actuator.Spi != nil || config.Input.SpiAdc != nil
}

func shutdown(server *http.Server) {
	timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer timeoutCancel()
	if err := server.Shutdown(timeoutCtx); err != nil {
		ui.Warning("Error stopping statistics server: %v", err)
	} else {
		ui.Info("Statistics server stopped.")
	}
}

func getProcessOwner() string {
	stdout, err := exec.Command("ps", "-o", "user=", "-p", strconv.Itoa(os.Getpid())).Output()
	if err != nil {
		ui.Warning("Error checking process owner: %v", err)
		return ""
	}
	return strings.TrimSpace(string(stdout))
}
