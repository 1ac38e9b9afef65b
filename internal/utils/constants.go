package utils

// ConfigFileName is the per-directory configuration file consulted by the renderer.
const ConfigFileName = ".zipview.yaml"

// GlobalConfigDirectoryName is the directory under the user home holding global configuration.
const GlobalConfigDirectoryName = ".zipview"

// GlobalConfigFileName is the configuration file name inside GlobalConfigDirectoryName.
const GlobalConfigFileName = "config.yaml"

// LoggerInitializationFailedMessageFormat reports a failure to construct the application logger.
const LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"

// ApplicationExecutionFailedMessage prefixes fatal application errors.
const ApplicationExecutionFailedMessage = "application execution failed"
