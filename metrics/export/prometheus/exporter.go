package prometheus

import (
	"net/http"
	"strconv"
	"strings"

	authapi "github.com/MrEthical07/authapi"
)

type metricsSource interface {
	MetricsSnapshot() authapi.MetricsSnapshot
	AuditDropped() uint64
}

type counterDef struct {
	id   authapi.MetricID
	name string
	help string
}

var counterDefs = []counterDef{
	{id: authapi.MetricRegisterSuccess, name: "authapi_register_success_total", help: "Successful account registrations."},
	{id: authapi.MetricRegisterDuplicate, name: "authapi_register_duplicate_total", help: "Registration attempts rejected as duplicate."},
	{id: authapi.MetricLoginSuccess, name: "authapi_login_success_total", help: "Successful login attempts."},
	{id: authapi.MetricLoginFailure, name: "authapi_login_failure_total", help: "Failed login attempts."},
	{id: authapi.MetricTwoFactorRequired, name: "authapi_twofactor_required_total", help: "Logins halted pending a TOTP code."},
	{id: authapi.MetricTwoFactorFailure, name: "authapi_twofactor_failure_total", help: "Failed TOTP verifications."},
	{id: authapi.MetricTwoFactorSuccess, name: "authapi_twofactor_success_total", help: "Successful TOTP verifications."},
	{id: authapi.MetricTwoFactorEnabled, name: "authapi_twofactor_enabled_total", help: "Second-factor enrollment operations."},
	{id: authapi.MetricTokenIssued, name: "authapi_token_issued_total", help: "Issued access tokens."},
	{id: authapi.MetricTokenRejected, name: "authapi_token_rejected_total", help: "Rejected access tokens."},
}

// PrometheusExporter renders authapi metrics in Prometheus text exposition format.
type PrometheusExporter struct {
	source metricsSource
}

// NewPrometheusExporter creates a Prometheus exporter that reads from the given [authapi.Engine].
func NewPrometheusExporter(engine *authapi.Engine) *PrometheusExporter {
	return &PrometheusExporter{source: engine}
}

// NewPrometheusExporterFromSource creates a Prometheus exporter from a
// custom metrics source.
func NewPrometheusExporterFromSource(source metricsSource) *PrometheusExporter {
	return &PrometheusExporter{source: source}
}

// Handler returns an http.Handler that serves Prometheus metrics.
func (p *PrometheusExporter) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		_, _ = w.Write([]byte(p.Render()))
	})
}

// Render writes the current metrics in Prometheus text exposition format.
func (p *PrometheusExporter) Render() string {
	if p == nil || p.source == nil {
		return ""
	}

	snapshot := p.source.MetricsSnapshot()
	dropped := p.source.AuditDropped()
	if len(snapshot.Counters) == 0 && dropped == 0 {
		return ""
	}

	var b strings.Builder
	b.Grow(4096)

	for _, def := range counterDefs {
		writeCounter(&b, def.name, def.help, snapshot.Counters[def.id])
	}

	writeCounter(&b, "authapi_audit_dropped_total", "Dropped audit events due to dispatcher backpressure.", dropped)

	return b.String()
}

func writeCounter(b *strings.Builder, name, help string, value uint64) {
	b.WriteString("# HELP ")
	b.WriteString(name)
	b.WriteByte(' ')
	b.WriteString(escapeHelp(help))
	b.WriteByte('\n')
	b.WriteString("# TYPE ")
	b.WriteString(name)
	b.WriteString(" counter\n")
	b.WriteString(name)
	b.WriteByte(' ')
	b.WriteString(strconv.FormatUint(value, 10))
	b.WriteByte('\n')
}

func escapeHelp(help string) string {
	help = strings.ReplaceAll(help, "\\", "\\\\")
	help = strings.ReplaceAll(help, "\n", "\\n")
	return help
}
