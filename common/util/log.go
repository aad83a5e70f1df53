package util

import (
	"os"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/thetatoken/txverify/common"
)

const defaultLogLevel = "warn"

var (
	logLevels = map[string]string{"*": defaultLogLevel}

	loggersLock sync.Mutex
	loggers     = make(map[string]*log.Entry)
)

func init() {
	customFormatter := new(log.TextFormatter)
	customFormatter.TimestampFormat = "2006-01-02 15:04:05"
	customFormatter.FullTimestamp = true
	log.SetFormatter(customFormatter)
	log.SetOutput(os.Stderr)
}

// InitLog reloads module log levels from config. Must be called after the
// config file has been read. Loggers handed out earlier pick up the new levels.
func InitLog() {
	loggersLock.Lock()
	defer loggersLock.Unlock()

	logLevels = parseLogLevelConfig(viper.GetString(common.CfgLogLevels))
	log.SetLevel(levelForModule("*"))
	for module, entry := range loggers {
		entry.Logger.SetLevel(levelForModule(module))
	}
}

// parseLogLevelConfig parses "module:level" pairs separated by commas. The
// "*" entry is the default level and is always present in the result.
func parseLogLevelConfig(cfg string) map[string]string {
	ret := map[string]string{"*": defaultLogLevel}
	for _, pair := range strings.Split(cfg, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 {
			continue
		}
		ret[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return ret
}

func levelForModule(module string) log.Level {
	levelStr, ok := logLevels[module]
	if !ok {
		levelStr = logLevels["*"]
	}
	level, err := log.ParseLevel(levelStr)
	if err != nil {
		return log.WarnLevel
	}
	return level
}

// GetLoggerForModule returns the logger tagged with the module name, at the
// level configured for that module. There is one logger per module.
func GetLoggerForModule(module string) *log.Entry {
	loggersLock.Lock()
	defer loggersLock.Unlock()

	entry, ok := loggers[module]
	if !ok {
		logger := log.New()
		logger.Formatter = log.StandardLogger().Formatter
		logger.Out = os.Stderr
		entry = logger.WithFields(log.Fields{"prefix": module})
		loggers[module] = entry
	}
	entry.Logger.SetLevel(levelForModule(module))
	return entry
}
