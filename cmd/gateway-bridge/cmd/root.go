package cmd

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/loraforward/gateway-bridge/internal/config"
)

var cfgFile string
var version string

var rootCmd = &cobra.Command{
	Use:   "gateway-bridge",
	Short: "LoRaWAN packet-forwarder gateway bridge",
	Long: `gateway-bridge bridges one or more Semtech UDP packet-forwarder
concentrators to a cluster of LoRaWAN routers reached over gRPC.`,
	RunE: run,
}

// Execute adds all child commands to the root command and runs it.
func Execute(v string) error {
	version = v
	rootCmd.Version = v
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to configuration file (default looks for gateway-bridge.toml in /etc/gateway-bridge, $HOME/.gateway-bridge, and .)")
	rootCmd.PersistentFlags().Int("log-level", 4, "debug=5, info=4, error=2, fatal=1, panic=0")

	viper.BindPFlag("general.log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	viper.SetDefault("gateway.udp_bind", "0.0.0.0:1700")
	viper.SetDefault("router.region", "EU868")
	viper.SetDefault("metrics.prometheus.endpoint_enabled", false)
	viper.SetDefault("metrics.prometheus.bind", "0.0.0.0:8080")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("gateway-bridge")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.gateway-bridge")
		viper.AddConfigPath("/etc/gateway-bridge")
	}

	viper.SetEnvPrefix("GATEWAY_BRIDGE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "gateway-bridge: read config error: %s\n", err)
			os.Exit(1)
		}
		log.Warning("gateway-bridge: no configuration file found, falling back on defaults and environment")
	}
}

func unmarshalConfig() error {
	decoderHook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
	if err := viper.Unmarshal(&config.C, viper.DecodeHook(decoderHook)); err != nil {
		return errors.Wrap(err, "unmarshal config error")
	}
	return nil
}
