package metrics

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestPrometheusExporterWriteMetrics(t *testing.T) {
	c := NewCollector(Labels{"instance": "test"})

	c.ChannelOpened()
	c.RecordBytesIn(1000)
	c.RecordKeyExchangeLatency(100 * time.Millisecond)

	exp := NewPrometheusExporter(c, "sionic")

	var buf bytes.Buffer
	exp.WriteMetrics(&buf)

	output := buf.String()

	expectedMetrics := []string{
		"sionic_channels_active",
		"sionic_channels_total",
		"sionic_bytes_in_total",
		"sionic_keyexchange_duration_milliseconds",
	}

	for _, metric := range expectedMetrics {
		if !strings.Contains(output, metric) {
			t.Errorf("expected metric %q in output", metric)
		}
	}

	if !strings.Contains(output, `instance="test"`) {
		t.Error("expected label instance=\"test\" in output")
	}

	if !strings.Contains(output, "# HELP sionic_channels_active") {
		t.Error("expected HELP line for channels_active")
	}
	if !strings.Contains(output, "# TYPE sionic_channels_active gauge") {
		t.Error("expected TYPE line for channels_active")
	}
}

func TestPrometheusExporterHandler(t *testing.T) {
	c := NewCollector(nil)
	c.ChannelOpened()

	exp := NewPrometheusExporter(c, "test")
	handler := exp.Handler()

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "text/plain") {
		t.Errorf("expected text/plain content type, got %s", contentType)
	}

	body := w.Body.String()
	if !strings.Contains(body, "test_channels_active") {
		t.Error("expected channels_active metric in response")
	}
}

func TestPrometheusExporterHistogram(t *testing.T) {
	c := NewCollector(nil)
	c.RecordKeyExchangeLatency(50 * time.Millisecond)
	c.RecordKeyExchangeLatency(150 * time.Millisecond)

	exp := NewPrometheusExporter(c, "test")

	var buf bytes.Buffer
	exp.WriteMetrics(&buf)

	output := buf.String()

	if !strings.Contains(output, "_bucket{le=") {
		t.Error("expected histogram bucket format")
	}
	if !strings.Contains(output, "_sum") {
		t.Error("expected histogram sum")
	}
	if !strings.Contains(output, "_count") {
		t.Error("expected histogram count")
	}
	if !strings.Contains(output, `le="+Inf"`) {
		t.Error("expected +Inf bucket")
	}
}

func TestPrometheusExporterLabelEscaping(t *testing.T) {
	c := NewCollector(Labels{
		"path":    "/api/v1",
		"message": "hello \"world\"",
		"newline": "line1\nline2",
	})

	exp := NewPrometheusExporter(c, "test")

	var buf bytes.Buffer
	exp.WriteMetrics(&buf)

	output := buf.String()

	if strings.Contains(output, "\n\"") {
		t.Error("newline should be escaped in labels")
	}
	if strings.Contains(output, `"hello "world""`) {
		t.Error("quotes should be escaped in labels")
	}
}

func TestPrometheusExporterAllMetricTypes(t *testing.T) {
	c := NewCollector(nil)

	c.ChannelOpened()
	c.ChannelClosed()
	c.ChannelFailed()
	c.RecordBytesIn(100)
	c.RecordBytesOut(200)
	c.RecordFragmentSealed()
	c.RecordFragmentOpened()
	c.RecordAuthFailure()
	c.RecordCounterExhausted()
	c.RecordSealError()
	c.RecordOpenError()
	c.RecordProtocolError()
	c.RecordKeyExchangeLatency(100 * time.Millisecond)
	c.RecordSealLatency(10 * time.Microsecond)
	c.RecordOpenLatency(15 * time.Microsecond)

	exp := NewPrometheusExporter(c, "quantum")

	var buf bytes.Buffer
	exp.WriteMetrics(&buf)

	output := buf.String()

	expectedMetrics := []string{
		"channels_active",
		"channels_total",
		"channels_failed_total",
		"bytes_in_total",
		"bytes_out_total",
		"fragments_sealed_total",
		"fragments_opened_total",
		"auth_failures_total",
		"counter_exhausted_total",
		"seal_errors_total",
		"open_errors_total",
		"protocol_errors_total",
		"uptime_seconds",
		"keyexchange_duration_milliseconds",
		"seal_duration_microseconds",
		"open_duration_microseconds",
	}

	for _, metric := range expectedMetrics {
		if !strings.Contains(output, "quantum_"+metric) {
			t.Errorf("missing metric: quantum_%s", metric)
		}
	}
}

func TestPrometheusExporterEmptyLabels(t *testing.T) {
	c := NewCollector(nil)
	c.ChannelOpened()

	exp := NewPrometheusExporter(c, "test")

	var buf bytes.Buffer
	exp.WriteMetrics(&buf)

	output := buf.String()

	lines := strings.Split(output, "\n")
	for _, line := range lines {
		if strings.HasPrefix(line, "test_channels_active") {
			if strings.Contains(line, "{") && !strings.Contains(line, "_bucket") {
				t.Errorf("gauge metric should not have labels: %s", line)
			}
		}
	}
}
