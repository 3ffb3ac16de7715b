// Command gwmoduled runs a standalone gateway daemon: it loads host/port/
// module-name from a JSON config file (or flags), registers a built-in
// demo device, connects to the broker, and serves the debug HTTP API
// alongside it.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rustyeddy/gwmodule/debugserver"
	"github.com/rustyeddy/gwmodule/gateway"
	"github.com/rustyeddy/gwmodule/logging"
	"github.com/rustyeddy/gwmodule/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	host       string
	port       int
	moduleName string
	debugAddr  string

	logLevel  string
	logFormat string
	logOutput string
	logFile   string
)

var rootCmd = &cobra.Command{
	Use:           "gwmoduled",
	Short:         "Device-gateway adapter daemon",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gateway daemon",
	RunE:  runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gwmoduled version",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := os.Stdout.WriteString(string(version.JSON()) + "\n")
		return err
	},
}

func init() {
	serveCmd.Flags().StringVar(&configPath, "config", "", "path to a JSON config file (host, port, module_name)")
	serveCmd.Flags().StringVar(&host, "host", "", "broker host (overrides config)")
	serveCmd.Flags().IntVar(&port, "port", 0, "broker port (overrides config)")
	serveCmd.Flags().StringVar(&moduleName, "module-name", "", "MQTT client id (overrides config)")
	serveCmd.Flags().StringVar(&debugAddr, "debug-addr", ":8011", "debug HTTP server address")

	serveCmd.Flags().StringVar(&logLevel, "log-level", logging.DefaultLevel, "log level (debug, info, warn, error)")
	serveCmd.Flags().StringVar(&logFormat, "log-format", logging.DefaultFormat, "log format (text, json)")
	serveCmd.Flags().StringVar(&logOutput, "log-output", logging.DefaultOutput, "log output (stdout, stderr, file, string)")
	serveCmd.Flags().StringVar(&logFile, "log-file", "", "log file path (required when log-output=file)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	if strings.EqualFold(logOutput, "file") && strings.TrimSpace(logFile) == "" {
		return errors.New("log-output=file requires --log-file")
	}
	logService, err := logging.NewService(logging.Config{
		Level:    logLevel,
		Format:   logFormat,
		Output:   logOutput,
		FilePath: logFile,
	})
	if err != nil {
		return err
	}
	log := slog.Default()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	log.Info("loaded config", "host", cfg.Host, "port", cfg.Port, "module_name", cfg.ModuleName)

	sim := newSimulator()
	gw, err := gateway.New(gateway.Config{
		ModuleName:             cfg.ModuleName,
		Host:                   cfg.Host,
		Port:                   cfg.Port,
		StatusProvider:         sim.status,
		ActuationHandler:       sim.actuate,
		ActuatorStatusProvider: sim.actuatorStatus,
		ConfigurationHandler:   sim.setConfiguration,
		ConfigurationProvider:  sim.configuration,
		Log:                    log,
	})
	if err != nil {
		return err
	}

	dev, err := sim.deviceTemplate()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := gw.AddDevice(ctx, dev); err != nil {
		return err
	}
	if err := gw.Connect(ctx); err != nil {
		return err
	}
	defer gw.Disconnect()

	readingsStop := make(chan struct{})
	go sim.runReadings(gw, readingsStop)
	defer close(readingsStop)

	dbg := debugserver.New(debugAddr, gw, log)
	dbg.Handle("/api/log", logService)

	done := make(chan struct{})
	go func() {
		<-ctx.Done()
		close(done)
	}()
	dbg.Start(done)
	return nil
}
