package debugserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rustyeddy/gwmodule/gateway"
	"github.com/rustyeddy/gwmodule/model"
	"github.com/rustyeddy/gwmodule/queue"
	"github.com/rustyeddy/gwmodule/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	connected bool
	listener  transport.InboundListener
}

func (c *fakeConn) SetInboundListener(fn transport.InboundListener) { c.listener = fn }
func (c *fakeConn) SetLastWill(msg transport.Message) error         { return nil }
func (c *fakeConn) AddSubscriptions(topics []string) error          { return nil }
func (c *fakeConn) RemoveTopicsForDevice(key string)                {}
func (c *fakeConn) Connect(ctx context.Context) error               { c.connected = true; return nil }
func (c *fakeConn) Reconnect(ctx context.Context) error             { return nil }
func (c *fakeConn) Disconnect()                                     { c.connected = false }
func (c *fakeConn) Publish(msg transport.Message) error             { return nil }
func (c *fakeConn) Connected() bool                                 { return c.connected }

func newTestGateway(t *testing.T) (*gateway.Gateway, *fakeConn) {
	conn := &fakeConn{}
	gw, err := gateway.New(gateway.Config{
		ModuleName: "test",
		StatusProvider: func(key string) (model.DeviceStatus, error) {
			return model.Connected, nil
		},
		Queue: queue.NewMemory(),
		Conn:  conn,
	})
	require.NoError(t, err)
	return gw, conn
}

func TestHandleStats(t *testing.T) {
	gw, conn := newTestGateway(t)
	conn.connected = true
	s := New(":0", gw, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var stats gateway.Stats
	require.NoError(t, json.NewDecoder(w.Body).Decode(&stats))
	assert.True(t, stats.Connected)
	assert.Equal(t, 0, stats.DeviceCount)
}

func TestHandleDevices(t *testing.T) {
	gw, _ := newTestGateway(t)
	dev, err := model.NewDevice("d1", "Device One", model.NewDeviceTemplate())
	require.NoError(t, err)
	require.NoError(t, gw.AddDevice(context.Background(), dev))

	s := New(":0", gw, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/devices", nil)
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var devices []map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&devices))
	require.Len(t, devices, 1)
	assert.Equal(t, "d1", devices[0]["key"])
}

func TestHandlePing(t *testing.T) {
	gw, _ := newTestGateway(t)
	s := New(":0", gw, nil)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestEventsFeedStreamsOutboundPublish(t *testing.T) {
	gw, conn := newTestGateway(t)
	conn.connected = true
	s := New(":0", gw, nil)

	ts := httptest.NewServer(s.mux)
	defer ts.Close()

	wsURL := "ws" + ts.URL[len("http"):] + "/api/events"
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer ws.Close()

	require.NoError(t, gw.AddSensorReading("d1", "T", model.IntValue(1), nil))
	require.NoError(t, gw.Publish(""))

	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev gateway.Event
	require.NoError(t, ws.ReadJSON(&ev))
	assert.Equal(t, gateway.Outbound, ev.Direction)
}
