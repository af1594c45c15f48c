package statsd

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/deptdash/internal/observability/metrics"
)

func listenUDP(t *testing.T) *net.UDPConn {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readLine(t *testing.T, conn *net.UDPConn) string {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	buf := make([]byte, 1024)
	n, _, err := conn.ReadFromUDP(buf)
	require.NoError(t, err)
	return string(buf[:n])
}

func TestClient_EmitsAPICallMetrics(t *testing.T) {
	agent := listenUDP(t)
	c, err := NewClient(Config{
		Address:    agent.LocalAddr().String(),
		Prefix:     " deptdash. ",
		GlobalTags: map[string]string{"env": "test"},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	metrics.EmitAPICall(c, metrics.APICallMetric{Operation: "list", Status: 200, Duration: 1500 * time.Microsecond})

	assert.Equal(t, "deptdash.api.call:1|c|#env:test,operation:list,result:success,status:200", readLine(t, agent))
	assert.Equal(t, "deptdash.api.duration:1.5|ms|#env:test,operation:list,result:success", readLine(t, agent))
}

func TestClient_SessionEventTagOverridesGlobal(t *testing.T) {
	agent := listenUDP(t)
	c, err := NewClient(Config{Address: agent.LocalAddr().String(), GlobalTags: map[string]string{"event": "x"}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	metrics.EmitSessionEvent(c, metrics.SessionLogout)
	assert.Equal(t, "session.event:1|c|#event:logout", readLine(t, agent))
}

func TestClient_CloseDropsLaterSamples(t *testing.T) {
	agent := listenUDP(t)
	c, err := NewClient(Config{Address: agent.LocalAddr().String()})
	require.NoError(t, err)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	c.Count("api.call", 1, nil)

	require.NoError(t, agent.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err = agent.ReadFromUDP(make([]byte, 64))
	assert.Error(t, err)
}

func TestNewClient_RequiresAddress(t *testing.T) {
	_, err := NewClient(Config{Address: "  "})
	require.Error(t, err)
}

func TestNilClientIsSafe(t *testing.T) {
	var c *Client
	c.Count("api.call", 1, nil)
	c.Timing("api.duration", time.Second, nil)
	assert.NoError(t, c.Close())
}

func TestNormalizeMetricName(t *testing.T) {
	tests := map[string]string{
		" api/call ": "api_call",
		"api..call":  "api.call",
		"a:b|c":      "a_b_c",
		".session.":  "session",
		"":           "",
	}
	for in, want := range tests {
		assert.Equal(t, want, normalizeMetricName(in), in)
	}
}

func TestFormatTags(t *testing.T) {
	assert.Empty(t, formatTags(nil, nil))
	assert.Equal(t,
		"|#env:stage,flag,result:a_b",
		formatTags(
			map[string]string{" env ": "prod", "": "ignored"},
			map[string]string{"env": "stage", "result": "a,b", "flag": ""},
		))
}
