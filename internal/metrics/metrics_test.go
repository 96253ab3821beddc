package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/unitconv/internal/metrics"
	"github.com/aretw0/unitconv/pkg/domain"
	"github.com/aretw0/unitconv/pkg/session"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestHooks_RecordSessionEvents(t *testing.T) {
	m := metrics.New()
	s := session.New(session.WithHooks(m.Hooks()))

	s.OnInputChanged("100")
	s.OnInputChanged("abc")
	s.OnModeSelected(domain.ModeTemperature)
	s.OnModeSelected(domain.Mode("Volume"))

	assert.Equal(t, 2, testutil.CollectAndCount(m.Registry, "unitconv_session_events_total"))
	assert.Equal(t, 3, testutil.CollectAndCount(m.Registry, "unitconv_conversions_total"))

	body := scrape(t, m)
	assert.Contains(t, body, `unitconv_session_events_total{type="input_changed"} 2`)
	assert.Contains(t, body, `unitconv_session_events_total{type="mode_selected"} 2`)
	assert.Contains(t, body, `unitconv_conversions_total{mode="Distance"} 2`)
	assert.Contains(t, body, "unitconv_degraded_inputs_total 3")
}

func TestExposition(t *testing.T) {
	m := metrics.New()
	m.ObserveConversion("12", domain.ModeWeight, 0.00001)
	m.ObserveConversion("x", domain.Mode("Volume"), 0.00001)

	body := scrape(t, m)
	assert.Contains(t, body, `unitconv_conversions_total{mode="Weight"} 1`)
	assert.Contains(t, body, `unitconv_conversions_total{mode="unknown"} 1`)
	assert.Contains(t, body, "unitconv_degraded_inputs_total 1")
}
