package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/markusressel/pot2go/internal/actuators"
	"github.com/markusressel/pot2go/internal/buttons"
	"github.com/markusressel/pot2go/internal/configuration"
	"github.com/markusressel/pot2go/internal/controller"
	"github.com/markusressel/pot2go/internal/display"
	"github.com/markusressel/pot2go/internal/encoder"
	"github.com/markusressel/pot2go/internal/inputs"
	"github.com/markusressel/pot2go/internal/persistence"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDevice struct {
	device      *Device
	rest        *echo.Echo
	accumulator *encoder.Accumulator
	cancel      context.CancelFunc
}

func newTestDevice(t *testing.T) testDevice {
	edges := inputs.NewVirtualEdgeSource()
	accumulator, err := encoder.NewAccumulator(encoder.Settings{PotMin: 0, PotMax: 255, Divisor: 4}, edges.Lines())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() {
		_ = edges.Run(ctx, accumulator)
	}()
	require.Eventually(t, func() bool {
		return edges.Step(encoder.Clockwise, 0) == nil
	}, time.Second, time.Millisecond)

	journal := persistence.NewPersistence(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, journal.Init())

	input := inputs.NewVirtualAnalogSource("pad", 0)
	latest := &display.Latest{}
	loop := controller.NewLoop(controller.LoopParams{
		Source:   input,
		Encoder:  accumulator,
		Setpoint: controller.NewSetpointController(accumulator, &actuators.VirtualActuator{ID: "pot"}, journal),
		Sink:     latest,
		PotMax:   255,
	})
	loop.Start()

	device := &Device{
		Frames:  latest,
		Loop:    loop,
		Journal: journal,
		Input:   input,
		Edges:   edges,
		Hub:     NewHub(latest),
	}
	return testDevice{
		device:      device,
		rest:        CreateRestService(device, prometheus.NewRegistry()),
		accumulator: accumulator,
		cancel:      cancel,
	}
}

func (d testDevice) request(method string, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if len(body) > 0 {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	d.rest.ServeHTTP(rec, req)
	return rec
}

func (d testDevice) hold(t *testing.T, sample int, cycles int) {
	d.device.Input.SetSample(sample)
	for i := 0; i < cycles; i++ {
		require.NoError(t, d.device.Loop.Step())
	}
}

func TestApi_Alive(t *testing.T) {
	// GIVEN
	d := newTestDevice(t)

	// WHEN
	rec := d.request(http.MethodGet, "/alive", "")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestApi_StateBeforeFirstFrame(t *testing.T) {
	// GIVEN
	d := newTestDevice(t)

	// WHEN
	rec := d.request(http.MethodGet, "/state/", "")

	// THEN
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApi_EncoderStepAndCommit(t *testing.T) {
	// GIVEN
	d := newTestDevice(t)

	// WHEN
	rec := d.request(http.MethodPost, "/encoder/step/", `{"direction": "clockwise", "count": 16}`)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = d.request(http.MethodPut, "/input/", `{"sample": 910}`)
	require.Equal(t, http.StatusNoContent, rec.Code)
	for i := 0; i < 8; i++ {
		require.NoError(t, d.device.Loop.Step())
	}

	// THEN
	rec = d.request(http.MethodGet, "/state/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var frame display.Frame
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &frame))
	assert.Equal(t, 4, frame.Pending)
	assert.True(t, frame.HasCommitted)
	assert.Equal(t, 4, frame.Committed)
	assert.Equal(t, buttons.Commit, frame.Debounced)

	rec = d.request(http.MethodGet, "/history/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var records []persistence.CommitRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	assert.Len(t, records, 1)
	assert.Equal(t, 4, records[0].Value)
}

func TestApi_KeyLog(t *testing.T) {
	// GIVEN
	d := newTestDevice(t)

	// WHEN
	rec := d.request(http.MethodGet, "/keylog/", "")

	// THEN
	var response keyLogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.AwaitingInput)
	assert.Equal(t, "[awaiting input]", response.Text)

	// WHEN
	d.hold(t, 125, 8)
	d.hold(t, 290, 8)
	rec = d.request(http.MethodGet, "/keylog/", "")

	// THEN
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.False(t, response.AwaitingInput)
	assert.Equal(t, []buttons.ButtonId{buttons.Left, buttons.Up}, response.Keys)
	assert.Equal(t, "◄▲", response.Text)
}

func TestApi_InvalidRequests(t *testing.T) {
	// GIVEN
	d := newTestDevice(t)

	// WHEN / THEN
	assert.Equal(t, http.StatusBadRequest, d.request(http.MethodPut, "/input/", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, d.request(http.MethodPost, "/encoder/step/", `{"direction": "sideways", "count": 1}`).Code)
	assert.Equal(t, http.StatusBadRequest, d.request(http.MethodPost, "/encoder/step/", `{"direction": "ccw", "count": 0}`).Code)
	assert.Equal(t, http.StatusBadRequest, d.request(http.MethodGet, "/history/?limit=abc", "").Code)
}

func TestApi_VirtualEndpointsRequireVirtualBackends(t *testing.T) {
	// GIVEN
	d := newTestDevice(t)
	d.device.Input = nil
	d.device.Edges = nil

	// WHEN / THEN
	assert.Equal(t, http.StatusConflict, d.request(http.MethodPut, "/input/", `{"sample": 1}`).Code)
	assert.Equal(t, http.StatusConflict, d.request(http.MethodPost, "/encoder/step/", `{"direction": "cw", "count": 1}`).Code)
}

func TestApi_HistoryDisabled(t *testing.T) {
	// GIVEN
	d := newTestDevice(t)
	d.device.Journal = nil

	// WHEN
	rec := d.request(http.MethodGet, "/history/", "")

	// THEN
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApi_WebsocketStreamsFrames(t *testing.T) {
	// GIVEN
	d := newTestDevice(t)
	d.device.Loop = controller.NewLoop(controller.LoopParams{
		Source:  d.device.Input,
		Encoder: d.accumulator,
		Sink:    display.Multi{d.device.Frames, d.device.Hub},
		PotMax:  255,
	})
	d.device.Loop.Start()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = d.device.Hub.Run(ctx)
	}()
	require.NoError(t, d.device.Loop.Step())

	server := httptest.NewServer(d.rest)
	defer server.Close()

	// WHEN
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/ws/", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool {
		return d.device.Hub.ClientCount() == 1
	}, time.Second, time.Millisecond)
	d.hold(t, 125, 8)

	// THEN
	var greeting map[string]interface{}
	require.NoError(t, conn.ReadJSON(&greeting))
	assert.Equal(t, "frame_init", greeting["type"])

	var update map[string]interface{}
	require.NoError(t, conn.ReadJSON(&update))
	assert.Equal(t, "frame", update["type"])
}

func TestApi_Config(t *testing.T) {
	// GIVEN
	d := newTestDevice(t)
	configuration.CurrentConfig.Hardware.PotMax = 255

	// WHEN
	rec := d.request(http.MethodGet, "/config/", "")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"potMax": 255`)
}
