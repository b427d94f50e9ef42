// Package logging configures the cfy client's loggers on top of log/slog.
//
// Loggers are named, as in "cloudify.cli.main". A [Registry] owns them for
// one CLI invocation: it hands out loggers by name, remembers which names
// have been configured, and holds the main logger handle. A [Configuration]
// describes formatters, handlers and loggers; [Registry.Apply] installs one
// atomically.
//
// # Configuring
//
// [Configurator] runs the startup pass: the built-in configuration first,
// so logging works before `cfy init`, then the logging section of the
// project configuration file when there is one.
//
//	reg := logging.NewRegistry(logging.RegistryOptions{})
//	defer reg.Close()
//	if err := logging.NewConfigurator(state, reg).Configure(); err != nil {
//		return err
//	}
//	reg.Main().Info("ready")
//
// # Handlers
//
// Text output goes through [Handler], which lays out records with a
// template such as "{timestamp} [{level}] {logger}: {message}" and colours
// levels when the writer is a terminal. JSON formatters use slog's JSON
// handler. Sensitive attribute values are masked in both.
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
package logging
