package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/loraforward/gateway-bridge/internal/config"
	"github.com/loraforward/gateway-bridge/internal/forwarder"
	"github.com/loraforward/gateway-bridge/internal/metadata"
	"github.com/loraforward/gateway-bridge/internal/tracing"
)

var fwd *forwarder.Forwarder

func run(cmd *cobra.Command, args []string) error {
	tasks := []func() error{
		unmarshalConfig,
		setLogLevel,
		printStartMessage,
		setupTracing,
		setupMetrics,
		setupMetaData,
		setupForwarder,
	}

	for _, t := range tasks {
		if err := t(); err != nil {
			log.Fatal(err)
		}
	}

	shutdown := make(chan struct{})
	runErrCh := make(chan error, 1)
	go func() {
		runErrCh <- fwd.Run(context.Background(), shutdown)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.WithField("signal", sig).Info("signal received, shutting down")
		close(shutdown)
		<-runErrCh
	case err := <-runErrCh:
		if err != nil {
			log.WithError(err).Error("gateway-bridge: fatal error")
			return err
		}
	}

	if tracing.Closer != nil {
		tracing.Closer.Close()
	}

	return nil
}

func setLogLevel() error {
	log.SetLevel(log.Level(uint8(config.C.General.LogLevel)))
	return nil
}

func printStartMessage() error {
	log.WithField("version", version).Info("starting gateway-bridge")
	return nil
}

func setupTracing() error {
	if err := tracing.Setup("gateway-bridge", config.C.Tracing.JaegerAgentAddr); err != nil {
		return errors.Wrap(err, "setup tracing error")
	}
	return nil
}

func setupMetrics() error {
	if !config.C.Metrics.Prometheus.EndpointEnabled {
		return nil
	}
	log.WithField("bind", config.C.Metrics.Prometheus.Bind).Info("starting prometheus metrics server")
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(config.C.Metrics.Prometheus.Bind, mux); err != nil {
			log.WithError(err).Error("metrics server error")
		}
	}()
	return nil
}

func setupMetaData() error {
	if err := metadata.Setup(config.C); err != nil {
		return errors.Wrap(err, "setup meta-data error")
	}
	return nil
}

func setupForwarder() error {
	f, err := forwarder.Setup(config.C)
	if err != nil {
		return errors.Wrap(err, "setup forwarder error")
	}
	fwd = f
	return nil
}
