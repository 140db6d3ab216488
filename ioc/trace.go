package ioc

import (
	"time"

	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/core/elog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// InitZipkinTracer 设置全局的 TracerProvider，GORM 插件从这里拿 tracer
func InitZipkinTracer() *trace.TracerProvider {
	type Config struct {
		ServiceName    string `yaml:"serviceName"`
		ServiceVersion string `yaml:"serviceVersion"`
		Endpoint       string `yaml:"endpoint"`
	}
	cfg := Config{ServiceName: "resale", ServiceVersion: "v0.0.1"}
	// 没有配置的时候使用默认值
	var err error
	if econf.Get("trace.zipkin") != nil {
		err = econf.UnmarshalKey("trace.zipkin", &cfg)
	}
	if err != nil {
		elog.Panic("读取 trace 配置失败", elog.FieldErr(err))
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		elog.Panic("init resource failed", elog.FieldErr(err))
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	exporter, err := zipkin.New(cfg.Endpoint)
	if err != nil {
		elog.Panic("init zipkin exporter failed", elog.FieldErr(err))
	}
	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter, trace.WithBatchTimeout(time.Second)),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	return tp
}
