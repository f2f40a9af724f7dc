package instrumentation

import (
	"fmt"
	"os"
	"slices"
	"strconv"
)

// Exporter names accepted by METRICS_EXPORTER and TRACING_EXPORTER
const (
	ExporterPrometheus = "prometheus"
	ExporterOTLP       = "otlp"
	ExporterStdout     = "stdout"
	ExporterNone       = "none"
)

// Label values shared by several metrics
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusUnknown = "unknown"

	OAuthResultSuccess = "success"
	OAuthResultFailure = "failure"

	ServiceSlides = "slides"
	ServiceDrive  = "drive"
)

var (
	metricsExporters = []string{ExporterPrometheus, ExporterOTLP, ExporterStdout}
	tracingExporters = []string{ExporterOTLP, ExporterStdout, ExporterNone}
)

// Config controls what the Provider exports and where.
type Config struct {
	ServiceName    string
	ServiceVersion string

	// ServiceInstanceID falls back to the hostname, which is the pod name
	// on Kubernetes
	ServiceInstanceID string
	K8sNamespace      string
	K8sPodName        string

	// Enabled turns all metrics and tracing off when false
	Enabled bool

	// MetricsExporter is one of prometheus, otlp or stdout
	MetricsExporter string

	// TracingExporter is one of otlp, stdout or none
	TracingExporter string

	// OTLPEndpoint is host:port without a scheme. Required by the otlp exporters.
	OTLPEndpoint string

	// OTLPInsecure disables TLS towards the collector. Development only.
	OTLPInsecure bool

	// TraceSamplingRate is the ratio of root spans kept, between 0 and 1
	TraceSamplingRate float64

	AuditLogging AuditLoggingConfig
}

// AuditLoggingConfig holds configuration for the navigation audit trail.
type AuditLoggingConfig struct {
	Enabled bool

	// IncludePoints controls whether point gestures are audited.
	// Point gestures never move the deck and classifiers emit them at a high
	// rate, so they are skipped by default.
	IncludePoints bool
}

// DefaultConfig reads the instrumentation settings from the environment.
func DefaultConfig() Config {
	return Config{
		ServiceName:       envString("OTEL_SERVICE_NAME", "gestureslides"),
		ServiceVersion:    "unknown",
		ServiceInstanceID: envString("OTEL_SERVICE_INSTANCE_ID", ""),
		K8sNamespace:      envString("K8S_NAMESPACE", envString("POD_NAMESPACE", "")),
		K8sPodName:        envString("K8S_POD_NAME", envString("HOSTNAME", "")),
		Enabled:           envBoolean("INSTRUMENTATION_ENABLED", true),
		MetricsExporter:   envString("METRICS_EXPORTER", ExporterPrometheus),
		TracingExporter:   envString("TRACING_EXPORTER", ExporterNone),
		OTLPEndpoint:      envString("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPInsecure:      envBoolean("OTEL_EXPORTER_OTLP_INSECURE", false),
		TraceSamplingRate: envFloat("OTEL_TRACES_SAMPLER_ARG", 0.1),
		AuditLogging: AuditLoggingConfig{
			Enabled:       envBoolean("AUDIT_LOGGING_ENABLED", true),
			IncludePoints: envBoolean("AUDIT_LOGGING_INCLUDE_POINTS", false),
		},
	}
}

// Validate rejects unknown exporters, an out of range sampling rate and
// otlp exporters without an endpoint. Empty exporter names are allowed and
// mean the defaults.
func (c *Config) Validate() error {
	if c.TraceSamplingRate < 0 || c.TraceSamplingRate > 1 {
		return fmt.Errorf("trace sampling rate must be between 0.0 and 1.0, got %f", c.TraceSamplingRate)
	}
	if c.MetricsExporter != "" && !slices.Contains(metricsExporters, c.MetricsExporter) {
		return fmt.Errorf("invalid metrics exporter %q, must be one of: %v", c.MetricsExporter, metricsExporters)
	}
	if c.TracingExporter != "" && !slices.Contains(tracingExporters, c.TracingExporter) {
		return fmt.Errorf("invalid tracing exporter %q, must be one of: %v", c.TracingExporter, tracingExporters)
	}
	if c.OTLPEndpoint == "" {
		if c.TracingExporter == ExporterOTLP {
			return fmt.Errorf("OTLP endpoint is required when using OTLP tracing exporter")
		}
		if c.MetricsExporter == ExporterOTLP {
			return fmt.Errorf("OTLP endpoint is required when using OTLP metrics exporter")
		}
	}
	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envBoolean and envFloat ignore values that do not parse
func envBoolean(key string, fallback bool) bool {
	parsed, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return parsed
}

func envFloat(key string, fallback float64) float64 {
	parsed, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return parsed
}
