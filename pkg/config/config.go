// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

type Config struct {
	DataDir             string  `env:"DATA_DIR"              envDefault:"data"   envDocs:"directory holding the flat JSON stores"`
	DrainIntervalSecond int     `env:"DRAIN_INTERVAL_SECOND" envDefault:"15"     envDocs:"seconds between queue drain ticks"`
	QueueTimeoutSecond  int     `env:"QUEUE_TIMEOUT_SECOND"  envDefault:"600"    envDocs:"seconds a player may wait in queue before being evicted"`
	AcceptFailureRate   float64 `env:"ACCEPT_FAILURE_RATE"   envDefault:"0.1"    envDocs:"chance [0..1] a satisfied group is rejected to simulate players not accepting"`
	MetricsAddress      string  `env:"METRICS_ADDRESS"       envDefault:":8080"  envDocs:"listen address for the prometheus metrics endpoint (empty disables it)"`
	ZipkinEndpoint      string  `env:"ZIPKIN_ENDPOINT"       envDefault:""       envDocs:"zipkin collector endpoint for trace export (empty disables export)"`
	LogFormatJSON       bool    `env:"LOG_FORMAT_JSON"       envDefault:"false"  envDocs:"emit logs as JSON instead of text"`
	LogLevel            string  `env:"LOG_LEVEL"             envDefault:"info"   envDocs:"logrus level: debug, info, warn, error"`
}
