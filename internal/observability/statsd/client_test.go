package statsd

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_DisabledSwallowsMetrics(t *testing.T) {
	client, err := NewClient(Config{Enabled: false})
	require.NoError(t, err)

	// Must not panic or block without a connection.
	client.Count("http.requests", 1, nil)
	client.Timing("http.request_duration", time.Second, nil)
	assert.NoError(t, client.Close())
}

func TestClient_EmitsStatsdLines(t *testing.T) {
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer conn.Close()

	client, err := NewClient(Config{
		Enabled: true,
		Address: conn.LocalAddr().String(),
		Prefix:  "txn_ui_api",
	})
	require.NoError(t, err)
	defer client.Close()

	client.Count("http.requests", 1, map[string]string{"method": "GET", "status": "200"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	buf := make([]byte, 512)
	n, _, err := conn.ReadFrom(buf)
	require.NoError(t, err)
	assert.Equal(t, "txn_ui_api.http.requests:1|c|#method:GET,status:200", string(buf[:n]))
}

func TestMetricNameNormalization(t *testing.T) {
	client, err := NewClient(Config{Prefix: ".txn_ui_api."})
	require.NoError(t, err)

	assert.Equal(t, "txn_ui_api.http.requests", client.metricName("http.requests"))
	assert.Equal(t, "txn_ui_api.a_b_c", client.metricName("a b/c"))
	assert.Empty(t, client.metricName("  "))
}
