package config

import (
	"time"
)

// Config defines the configuration structure.
type Config struct {
	General struct {
		LogLevel int `mapstructure:"log_level"`
	}

	Gateway struct {
		UDPBind      string `mapstructure:"udp_bind"`
		SkipCRCCheck bool   `mapstructure:"skip_crc_check"`
		FakeRxTime   bool   `mapstructure:"fake_rx_time"`
	} `mapstructure:"gateway"`

	Router struct {
		ValidatorURI      string   `mapstructure:"validator_uri"`
		DefaultRouterURIs []string `mapstructure:"default_router_uris"`
		Region            string   `mapstructure:"region"`
		SignerKeyFile     string   `mapstructure:"signer_key_file"`
	} `mapstructure:"router"`

	Metrics struct {
		Prometheus struct {
			EndpointEnabled bool   `mapstructure:"endpoint_enabled"`
			Bind            string `mapstructure:"bind"`
		}
	}

	Tracing struct {
		JaegerAgentAddr string `mapstructure:"jaeger_agent_addr"`
	} `mapstructure:"tracing"`

	MetaData struct {
		Static  map[string]string `mapstructure:"static"`
		Dynamic struct {
			ExecutionInterval    time.Duration     `mapstructure:"execution_interval"`
			MaxExecutionDuration time.Duration     `mapstructure:"max_execution_duration"`
			Commands             map[string]string `mapstructure:"commands"`
		} `mapstructure:"dynamic"`
	} `mapstructure:"meta_data"`
}

// C holds the global configuration.
var C Config
