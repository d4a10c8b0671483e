package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"jobmatch/internal/config"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ObservabilityConfig holds configuration for observability
type ObservabilityConfig struct {
	ServiceName    string
	ServiceVersion string
	Enabled        bool
	ConsoleOutput  bool
	PrettyPrint    bool
	SampleRate     float64
	Prometheus     PrometheusConfig
}

// Metrics holds all custom metrics for Jobmatch
type Metrics struct {
	// Matching pipeline metrics
	PipelineDuration metric.Float64Histogram
	PipelineRequests metric.Int64Counter
	PipelineErrors   metric.Int64Counter
	StageDuration    metric.Float64Histogram

	// Business metrics
	RecommendationsServed metric.Int64Counter
	SkillGapsAnalyzed     metric.Int64Counter
	ResultsReturned       metric.Int64Histogram

	// Infrastructure metrics
	CacheEvents   metric.Int64Counter
	FeedChanges   metric.Int64Counter
	RateLimitHits metric.Int64Counter
}

// ObservabilityManager manages OpenTelemetry setup
type ObservabilityManager struct {
	config           ObservabilityConfig
	fullConfig       *config.Config // Store full config for access to nested settings
	tracerProvider   *trace.TracerProvider
	meterProvider    *sdkmetric.MeterProvider
	metrics          *Metrics
	shutdownFuncs    []func(context.Context) error
	prometheusServer *http.ServeMux
}

// NewObservabilityManager creates a new observability manager
func NewObservabilityManager(obsConfig ObservabilityConfig, fullConfig *config.Config) (*ObservabilityManager, error) {
	if !obsConfig.Enabled {
		return &ObservabilityManager{config: obsConfig, fullConfig: fullConfig}, nil
	}

	om := &ObservabilityManager{
		config:        obsConfig,
		fullConfig:    fullConfig,
		shutdownFuncs: make([]func(context.Context) error, 0),
	}

	if err := om.initTracing(); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if err := om.initMetrics(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	return om, nil
}

// initTracing sets up OpenTelemetry tracing
func (om *ObservabilityManager) initTracing() error {
	var exporter trace.SpanExporter
	var err error

	if om.config.ConsoleOutput {
		// Console exporter for development
		opts := []stdouttrace.Option{}
		if om.config.PrettyPrint {
			opts = append(opts, stdouttrace.WithPrettyPrint())
		}
		exporter, err = stdouttrace.New(opts...)
	} else if om.fullConfig != nil && om.fullConfig.Observability.OTLP.Enabled {
		// OTLP exporter for production
		exporter, err = om.createOTLPExporter()
	} else {
		// No-op exporter when no production exporter is configured
		exporter = &noOpSpanExporter{}
	}

	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := om.createResource()
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
		trace.WithSampler(trace.TraceIDRatioBased(om.config.SampleRate)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	om.tracerProvider = tp
	om.shutdownFuncs = append(om.shutdownFuncs, tp.Shutdown)

	return nil
}

// initMetrics sets up OpenTelemetry metrics
func (om *ObservabilityManager) initMetrics() error {
	readers, err := om.setupMetricReaders()
	if err != nil {
		return err
	}

	res, err := om.createResource()
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	// Create meter provider with all readers
	meterProviderOptions := []sdkmetric.Option{
		sdkmetric.WithResource(res),
	}
	for _, reader := range readers {
		meterProviderOptions = append(meterProviderOptions, sdkmetric.WithReader(reader))
	}

	mp := sdkmetric.NewMeterProvider(meterProviderOptions...)

	otel.SetMeterProvider(mp)
	om.meterProvider = mp
	om.shutdownFuncs = append(om.shutdownFuncs, mp.Shutdown)

	// Initialize custom metrics
	return om.initCustomMetrics()
}

// setupMetricReaders sets up all metric readers based on configuration
func (om *ObservabilityManager) setupMetricReaders() ([]sdkmetric.Reader, error) {
	var readers []sdkmetric.Reader

	// Console exporter for development
	if err := om.setupConsoleReader(&readers); err != nil {
		return nil, err
	}

	// OTLP exporter for production metrics
	if err := om.setupOTLPReader(&readers); err != nil {
		return nil, err
	}

	// Prometheus exporter for scrape-based collection
	if err := om.setupPrometheusReader(&readers); err != nil {
		return nil, err
	}

	// If no readers configured, use manual reader as fallback
	if len(readers) == 0 {
		readers = append(readers, sdkmetric.NewManualReader())
	}

	return readers, nil
}

// setupConsoleReader sets up console metric reader if enabled
func (om *ObservabilityManager) setupConsoleReader(readers *[]sdkmetric.Reader) error {
	if !om.config.ConsoleOutput {
		return nil
	}

	exporter, err := stdoutmetric.New()
	if err != nil {
		return fmt.Errorf("failed to create console metric exporter: %w", err)
	}

	// Use configurable collection interval
	interval := om.getMetricsCollectionInterval()
	*readers = append(*readers, sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval)))
	return nil
}

// setupOTLPReader sets up OTLP metric reader if enabled
func (om *ObservabilityManager) setupOTLPReader(readers *[]sdkmetric.Reader) error {
	if om.fullConfig == nil || !om.fullConfig.Observability.OTLP.Enabled {
		return nil
	}

	otlpReader, err := om.createOTLPMetricsReader()
	if err != nil {
		return fmt.Errorf("failed to create OTLP metrics reader: %w", err)
	}
	if otlpReader != nil {
		*readers = append(*readers, otlpReader)
	}
	return nil
}

// setupPrometheusReader sets up Prometheus metric reader if enabled
func (om *ObservabilityManager) setupPrometheusReader(readers *[]sdkmetric.Reader) error {
	if !om.config.Prometheus.Enabled {
		return nil
	}

	prometheusReader, prometheusMux, err := SetupPrometheusExporter(om.config.Prometheus)
	if err != nil {
		return fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}
	if prometheusReader != nil {
		*readers = append(*readers, prometheusReader)
		om.prometheusServer = prometheusMux

		// Start Prometheus server
		if err := StartPrometheusServer(prometheusMux, om.config.Prometheus.Port); err != nil {
			return fmt.Errorf("failed to start Prometheus server: %w", err)
		}
	}
	return nil
}

// createResource creates the OpenTelemetry resource
func (om *ObservabilityManager) createResource() (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(om.config.ServiceName),
			semconv.ServiceVersion(om.config.ServiceVersion),
			attribute.String("service.instance.id", om.getServiceInstanceID()),
		),
	)
}

// initCustomMetrics creates all custom metrics for Jobmatch
func (om *ObservabilityManager) initCustomMetrics() error {
	meter := om.meterProvider.Meter(om.config.ServiceName)
	om.metrics = &Metrics{}

	if err := om.createPipelineMetrics(meter); err != nil {
		return err
	}

	if err := om.createBusinessMetrics(meter); err != nil {
		return err
	}

	if err := om.createInfrastructureMetrics(meter); err != nil {
		return err
	}

	return nil
}

// createPipelineMetrics creates matching-pipeline metrics
func (om *ObservabilityManager) createPipelineMetrics(meter metric.Meter) error {
	var err error

	om.metrics.PipelineDuration, err = meter.Float64Histogram(
		"jobmatch_pipeline_duration_seconds",
		metric.WithDescription("Time spent running the matching pipeline"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create pipeline duration metric: %w", err)
	}

	om.metrics.PipelineRequests, err = meter.Int64Counter(
		"jobmatch_pipeline_requests_total",
		metric.WithDescription("Total number of matching pipeline runs"),
	)
	if err != nil {
		return fmt.Errorf("failed to create pipeline request count metric: %w", err)
	}

	om.metrics.PipelineErrors, err = meter.Int64Counter(
		"jobmatch_pipeline_errors_total",
		metric.WithDescription("Total number of matching pipeline failures"),
	)
	if err != nil {
		return fmt.Errorf("failed to create pipeline error count metric: %w", err)
	}

	om.metrics.StageDuration, err = meter.Float64Histogram(
		"jobmatch_pipeline_stage_duration_seconds",
		metric.WithDescription("Time spent in individual pipeline stages"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create pipeline stage duration metric: %w", err)
	}

	return nil
}

// createBusinessMetrics creates business-related metrics
func (om *ObservabilityManager) createBusinessMetrics(meter metric.Meter) error {
	var err error

	om.metrics.RecommendationsServed, err = meter.Int64Counter(
		"jobmatch_recommendations_total",
		metric.WithDescription("Total number of recommendation requests served"),
	)
	if err != nil {
		return fmt.Errorf("failed to create recommendations served metric: %w", err)
	}

	om.metrics.SkillGapsAnalyzed, err = meter.Int64Counter(
		"jobmatch_skill_gaps_total",
		metric.WithDescription("Total number of skill gap analyses performed"),
	)
	if err != nil {
		return fmt.Errorf("failed to create skill gaps analyzed metric: %w", err)
	}

	om.metrics.ResultsReturned, err = meter.Int64Histogram(
		"jobmatch_results_returned",
		metric.WithDescription("Number of job matches returned per recommendation"),
	)
	if err != nil {
		return fmt.Errorf("failed to create results returned metric: %w", err)
	}

	return nil
}

// createInfrastructureMetrics creates infrastructure-related metrics
func (om *ObservabilityManager) createInfrastructureMetrics(meter metric.Meter) error {
	var err error

	om.metrics.CacheEvents, err = meter.Int64Counter(
		"jobmatch_model_cache_events_total",
		metric.WithDescription("Total number of model cache hits, misses and writes"),
	)
	if err != nil {
		return fmt.Errorf("failed to create cache events metric: %w", err)
	}

	om.metrics.FeedChanges, err = meter.Int64Counter(
		"jobmatch_feed_changes_total",
		metric.WithDescription("Total number of detected job feed changes on disk"),
	)
	if err != nil {
		return fmt.Errorf("failed to create feed changes metric: %w", err)
	}

	om.metrics.RateLimitHits, err = meter.Int64Counter(
		"jobmatch_rate_limit_hits_total",
		metric.WithDescription("Total number of rate limit hits"),
	)
	if err != nil {
		return fmt.Errorf("failed to create rate limit hits metric: %w", err)
	}

	return nil
}

// GetMetrics returns the metrics instance
func (om *ObservabilityManager) GetMetrics() *Metrics {
	if om.metrics == nil {
		return &Metrics{} // Return empty metrics if not initialized
	}
	return om.metrics
}

// HTTPMiddleware returns HTTP middleware with OpenTelemetry instrumentation
func (om *ObservabilityManager) HTTPMiddleware() func(http.Handler) http.Handler {
	if !om.config.Enabled {
		return func(h http.Handler) http.Handler { return h }
	}

	return otelhttp.NewMiddleware(
		om.config.ServiceName,
		otelhttp.WithTracerProvider(om.tracerProvider),
		otelhttp.WithMeterProvider(om.meterProvider),
	)
}

// Tracer returns a tracer for the service
func (om *ObservabilityManager) Tracer(name string) oteltrace.Tracer {
	if !om.config.Enabled {
		return noop.NewTracerProvider().Tracer(name)
	}
	return otel.Tracer(name)
}

// Shutdown gracefully shuts down all observability components
func (om *ObservabilityManager) Shutdown(ctx context.Context) error {
	for _, shutdown := range om.shutdownFuncs {
		if err := shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}

// StageTiming holds the duration of one pipeline stage
type StageTiming struct {
	Name     string
	Duration time.Duration
}

// PipelineResult holds the result of a matching pipeline run including
// per-stage timings and the embedding model used
type PipelineResult struct {
	Error  error
	Model  string
	Stages []StageTiming
}

// TrackPipelineOperation instruments a matching pipeline run with tracing,
// metrics, and per-stage timings
func (m *Metrics) TrackPipelineOperation(ctx context.Context, operation string, fn func(context.Context) *PipelineResult, om *ObservabilityManager) error {
	if m.PipelineDuration == nil {
		// Metrics not initialized, just run the function
		result := fn(ctx)
		if result != nil {
			return result.Error
		}
		return nil
	}

	// Check if pipeline metrics are enabled
	pipelineMetricsEnabled := m.isPipelineMetricsEnabled(om)

	tracer := otel.Tracer("jobmatch.pipeline")
	ctx, span := tracer.Start(ctx, "pipeline."+operation)
	defer span.End()

	start := time.Now()
	result := fn(ctx)
	duration := time.Since(start).Seconds()

	var err error
	if result != nil {
		err = result.Error
	}

	// Record metrics only if pipeline metrics are enabled
	if pipelineMetricsEnabled {
		m.recordPipelineMetrics(ctx, operation, err, duration, result, om, span)
	}

	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("error", true))
	}

	return err
}

// isPipelineMetricsEnabled checks if pipeline metrics are enabled in the configuration
func (m *Metrics) isPipelineMetricsEnabled(om *ObservabilityManager) bool {
	if om.fullConfig == nil {
		return true
	}
	return om.fullConfig.Observability.CustomMetrics.Pipeline.Enabled
}

// recordPipelineMetrics records all pipeline-related metrics
func (m *Metrics) recordPipelineMetrics(ctx context.Context, operation string, err error, duration float64, result *PipelineResult, om *ObservabilityManager, span oteltrace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("operation", operation),
		attribute.Bool("success", err == nil),
	}

	if om.fullConfig == nil || om.fullConfig.Observability.CustomMetrics.Pipeline.TrackDuration {
		m.PipelineDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
	}

	m.PipelineRequests.Add(ctx, 1, metric.WithAttributes(attrs...))

	m.recordStageTimings(ctx, result, attrs, om, span)
	m.recordModelInfo(result, attrs, om, span)

	if err != nil {
		m.PipelineErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}

	span.SetAttributes(attrs...)
}

// recordStageTimings records per-stage durations if enabled
func (m *Metrics) recordStageTimings(ctx context.Context, result *PipelineResult, attrs []attribute.KeyValue, om *ObservabilityManager, span oteltrace.Span) {
	if result == nil || len(result.Stages) == 0 || m.StageDuration == nil {
		return
	}

	trackStages := om.fullConfig == nil || om.fullConfig.Observability.CustomMetrics.Pipeline.TrackStages
	for _, stage := range result.Stages {
		seconds := stage.Duration.Seconds()
		if trackStages {
			stageAttrs := append(attrs, attribute.String("stage", stage.Name))
			m.StageDuration.Record(ctx, seconds, metric.WithAttributes(stageAttrs...))
		}

		// Stage timings always go on the span for debugging
		span.SetAttributes(attribute.Float64("pipeline.stage."+stage.Name+".seconds", seconds))
	}
}

// recordModelInfo adds the embedding model to metrics attributes and the span
func (m *Metrics) recordModelInfo(result *PipelineResult, attrs []attribute.KeyValue, om *ObservabilityManager, span oteltrace.Span) {
	if result == nil || result.Model == "" {
		return
	}

	if om.fullConfig == nil || om.fullConfig.Observability.CustomMetrics.Pipeline.TrackModelInfo {
		span.SetAttributes(attribute.String("pipeline.model", result.Model))
	}
}

// RecordBusinessMetric records business-specific metrics
func (m *Metrics) RecordBusinessMetric(ctx context.Context, metricType string, success bool, om *ObservabilityManager, attributes ...attribute.KeyValue) {
	// Check if business metrics are enabled
	if om.fullConfig != nil && !om.fullConfig.Observability.CustomMetrics.Business.Enabled {
		return
	}

	attrs := attributes
	if om.fullConfig == nil || om.fullConfig.Observability.CustomMetrics.Business.TrackSuccessRates {
		attrs = append([]attribute.KeyValue{
			attribute.Bool("success", success),
		}, attributes...)
	}

	m.recordMetricByType(ctx, metricType, attrs, om)
}

// recordMetricByType records the appropriate metric based on the metric type
func (m *Metrics) recordMetricByType(ctx context.Context, metricType string, attrs []attribute.KeyValue, om *ObservabilityManager) {
	switch metricType {
	case "recommendation_served":
		m.recordRecommendationServed(ctx, attrs)
	case "skill_gap_analyzed":
		m.recordSkillGapAnalyzed(ctx, attrs)
	case "feed_changed":
		m.recordFeedChanged(ctx, attrs)
	case "cache_event":
		m.recordCacheEvent(ctx, attrs, om)
	case "rate_limit_hit":
		m.recordRateLimitHit(ctx, attrs, om)
	}
}

// recordRecommendationServed records a served recommendation request
func (m *Metrics) recordRecommendationServed(ctx context.Context, attrs []attribute.KeyValue) {
	if m.RecommendationsServed != nil {
		m.RecommendationsServed.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// recordSkillGapAnalyzed records a completed skill gap analysis
func (m *Metrics) recordSkillGapAnalyzed(ctx context.Context, attrs []attribute.KeyValue) {
	if m.SkillGapsAnalyzed != nil {
		m.SkillGapsAnalyzed.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// recordFeedChanged records a detected job feed change
func (m *Metrics) recordFeedChanged(ctx context.Context, attrs []attribute.KeyValue) {
	if m.FeedChanges != nil {
		m.FeedChanges.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// recordCacheEvent records a model cache event
func (m *Metrics) recordCacheEvent(ctx context.Context, attrs []attribute.KeyValue, om *ObservabilityManager) {
	// Cache activity is an infrastructure metric
	if om != nil && om.fullConfig != nil && !om.fullConfig.Observability.CustomMetrics.Infrastructure.TrackCacheEvents {
		return
	}
	if m.CacheEvents != nil {
		m.CacheEvents.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// recordRateLimitHit records rate limit hit metric
func (m *Metrics) recordRateLimitHit(ctx context.Context, attrs []attribute.KeyValue, om *ObservabilityManager) {
	// Rate limiting is an infrastructure metric
	if om != nil && om.fullConfig != nil && !om.fullConfig.Observability.CustomMetrics.Infrastructure.TrackRateLimits {
		return
	}
	if m.RateLimitHits != nil {
		m.RateLimitHits.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordResultCount records how many matches a recommendation returned
func (m *Metrics) RecordResultCount(ctx context.Context, count int, om *ObservabilityManager, attributes ...attribute.KeyValue) {
	if om.fullConfig != nil {
		business := om.fullConfig.Observability.CustomMetrics.Business
		if !business.Enabled || !business.TrackResultCounts {
			return
		}
	}
	if m.ResultsReturned != nil {
		m.ResultsReturned.Record(ctx, int64(count), metric.WithAttributes(attributes...))
	}
}

// No-op exporters for when console output is disabled
type noOpSpanExporter struct{}

func (n *noOpSpanExporter) ExportSpans(ctx context.Context, spans []trace.ReadOnlySpan) error {
	return nil
}

func (n *noOpSpanExporter) Shutdown(ctx context.Context) error {
	return nil
}

// createOTLPExporter creates an OTLP HTTP trace exporter
func (om *ObservabilityManager) createOTLPExporter() (trace.SpanExporter, error) {
	if om.fullConfig == nil {
		return nil, fmt.Errorf("config not available for OTLP configuration")
	}

	otlpConfig := om.fullConfig.Observability.OTLP

	// Prepare OTLP options
	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpointURL(otlpConfig.Endpoint),
	}

	// Configure TLS
	if otlpConfig.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	// Add custom headers if provided
	if len(otlpConfig.Headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(otlpConfig.Headers))
	}

	// Create the OTLP exporter
	exporter, err := otlptracehttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	return exporter, nil
}

// createOTLPMetricsReader creates an OTLP HTTP metrics reader
func (om *ObservabilityManager) createOTLPMetricsReader() (sdkmetric.Reader, error) {
	if om.fullConfig == nil {
		return nil, fmt.Errorf("config not available for OTLP configuration")
	}

	otlpConfig := om.fullConfig.Observability.OTLP

	// Prepare OTLP options
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpointURL(otlpConfig.Endpoint),
	}

	// Configure TLS
	if otlpConfig.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	// Add custom headers if provided
	if len(otlpConfig.Headers) > 0 {
		opts = append(opts, otlpmetrichttp.WithHeaders(otlpConfig.Headers))
	}

	// Create the OTLP metrics exporter
	exporter, err := otlpmetrichttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
	}

	// Use configurable collection interval for OTLP metrics
	interval := om.getMetricsCollectionInterval()
	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))

	return reader, nil
}

// getServiceInstanceID returns the service instance ID from config or generates one
func (om *ObservabilityManager) getServiceInstanceID() string {
	if om.fullConfig != nil && om.fullConfig.Observability.ServiceInstance != "" {
		return om.fullConfig.Observability.ServiceInstance
	}
	// Fallback to default if config not available
	return "jobmatch-1"
}

// getMetricsCollectionInterval returns the configured metrics collection interval
func (om *ObservabilityManager) getMetricsCollectionInterval() time.Duration {
	if om.fullConfig != nil {
		return om.fullConfig.Observability.Metrics.CollectionInterval
	}
	// Fallback to default
	return 15 * time.Second
}
