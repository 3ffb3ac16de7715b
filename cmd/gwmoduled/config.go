package main

import (
	"fmt"

	"github.com/spf13/viper"
)

// daemonConfig is the JSON config file shape: host, port and module_name,
// with cobra flags bound on top so any of the three can be overridden on
// the command line without a config file at all.
type daemonConfig struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	ModuleName string `mapstructure:"module_name"`
}

func loadConfig(path string) (daemonConfig, error) {
	v := viper.New()
	v.SetConfigType("json")
	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("port", 1883)
	v.SetDefault("module_name", "gwmodule")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return daemonConfig{}, fmt.Errorf("read config %q: %w", path, err)
		}
	}

	v.BindPFlag("host", serveCmd.Flags().Lookup("host"))
	v.BindPFlag("port", serveCmd.Flags().Lookup("port"))
	v.BindPFlag("module_name", serveCmd.Flags().Lookup("module-name"))

	var cfg daemonConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return daemonConfig{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
