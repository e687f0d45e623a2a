// Package utils exposes helpers shared by the command entrypoint and the
// workspace command: the Viper-backed ConfigurationLoader, the zap
// LoggerFactory, and a context accessor carrying the configuration file path.
package utils
