package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersAndTextfile(t *testing.T) {
	m := New()
	m.Pages.WithLabelValues(ResultOK).Inc()
	m.Pages.WithLabelValues(ResultOK).Inc()
	m.Pages.WithLabelValues(ResultFetchError).Inc()
	m.RecordsSaved.Set(2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Pages.WithLabelValues(ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Pages.WithLabelValues(ResultFetchError)))

	path := filepath.Join(t.TempDir(), "akandict.prom")
	require.NoError(t, m.WriteTextfile(path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `akandict_pages_total{result="ok"} 2`)
	assert.Contains(t, string(b), "akandict_records_saved 2")
}
