package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"modecitation.dev/pkg/modecitation/internal/domain"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "modecitation"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	rulesFlagName     = "rules"
	outputFlagName    = "output"
	indentFlagName    = "indent"
	parallelFlagName  = "parallel"
	keepGoingFlagName = "keep-going"
	dryRunFlagName    = "dry-run"
	diffFlagName      = "diff"
	reportsFlagName   = "reports"
	verboseFlagName   = "verbose"
	logFileFlagName   = "log-file"

	rulesConfigKey        = "rules.file"
	containerXPathKey     = "engine.container_xpath"
	formattingTagsKey     = "engine.formatting_tags"
	namespacesKey         = "xpath.namespaces"
	outputIndentKey       = "output.indent"
	outputIndentStringKey = "output.indent_string"
	fetchTimeoutKey       = "fetch.timeout"
	fetchAttemptsKey      = "fetch.attempts"
	fetchDelayKey         = "fetch.delay"
	fetchMaxBytesKey      = "fetch.max_bytes"
	runParallelConfigKey  = "run.parallel"
	runKeepGoingConfigKey = "run.keep_going"
	reportsDirConfigKey   = "reports.dir"

	defaultRulesFile       = ""
	defaultOutput          = "-"
	defaultContainerXPath  = domain.DefaultContainerXPath
	defaultOutputIndent    = "none"
	defaultOutputIndentStr = "  "
	defaultFetchTimeout    = 30 * time.Second
	defaultFetchAttempts   = 3
	defaultFetchDelay      = 500 * time.Millisecond
	defaultFetchMaxBytes   = 64 << 20
	defaultRunParallel     = 1
	defaultRunKeepGoing    = false
	defaultReportsDir      = ""

	envPrefix = "MODECITATION"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".modecitation.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(rulesConfigKey, defaultRulesFile)
	viper.SetDefault(outputFlagName, defaultOutput)
	viper.SetDefault(containerXPathKey, defaultContainerXPath)
	viper.SetDefault(formattingTagsKey, domain.DefaultFormattingTags)
	viper.SetDefault(namespacesKey, map[string]string{})
	viper.SetDefault(outputIndentKey, defaultOutputIndent)
	viper.SetDefault(outputIndentStringKey, defaultOutputIndentStr)
	viper.SetDefault(fetchTimeoutKey, defaultFetchTimeout)
	viper.SetDefault(fetchAttemptsKey, defaultFetchAttempts)
	viper.SetDefault(fetchDelayKey, defaultFetchDelay)
	viper.SetDefault(fetchMaxBytesKey, defaultFetchMaxBytes)
	viper.SetDefault(runParallelConfigKey, defaultRunParallel)
	viper.SetDefault(runKeepGoingConfigKey, defaultRunKeepGoing)
	viper.SetDefault(reportsDirConfigKey, defaultReportsDir)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		slog.Debug("config file not loaded", "error", err)
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// numeric slog levels, e.g. -4 for debug
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger installs the global slog logger, writing to a rotated file.
//
// By default it logs at the configured level; verbose forces Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
