package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	m := New()
	m.ObserveRequest("GET", "/api/aids", 200, 20*time.Millisecond)
	m.ObserveRequest("GET", "/api/aids", 200, 30*time.Millisecond)
	m.ObserveRequest("POST", "/api/aids", 0, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.APIRequestsTotal.WithLabelValues("GET", "/api/aids", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.APIRequestsTotal.WithLabelValues("POST", "/api/aids", "error")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.APIRequestDuration))
}

func TestObserveImportRow(t *testing.T) {
	m := New()
	m.ObserveImportRow("aid", "created")
	m.ObserveImportRow("aid", "created")
	m.ObserveImportRow("aid", "duplicate")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ImportRowsTotal.WithLabelValues("aid", "created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ImportRowsTotal.WithLabelValues("aid", "duplicate")))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.SetListed("resident", 42)

	path := filepath.Join(t.TempDir(), "aidctl.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `aidctl_records_listed{record="resident"} 42`)
}
