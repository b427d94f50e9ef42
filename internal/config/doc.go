// Package config provides the cfy client's own configuration: where the
// project configuration file lives, whether the project has been
// initialized, whether coloured output is wanted, and the logging section
// that drives logger setup.
//
// # Configuration File
//
// `cfy init` creates .cloudify/config.yaml in the current directory:
//
//	colors: false
//	logging:
//	  filename: /home/me/.local/state/cfy/logs/cli.log
//	  loggers:
//	    cloudify.cli.main: info
//	    cloudify.rest_client.http: info
//
// The same structure may be written as config.toml. Logger names contain
// dots, so the logging section is decoded directly with yaml.v3 or go-toml
// rather than through Viper, which treats dots as key separators.
//
// # Environment
//
// CFY_COLORS and CFY_LOG_FILE override the colors setting and the default
// log file respectively.
package config
