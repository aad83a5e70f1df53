package common

import (
	"time"

	"github.com/spf13/viper"
)

const (
	// CfgConfigPath defines custom config path
	CfgConfigPath = "config.path"

	// CfgRPCTimeout bounds a single request to the remote node. Zero leaves it
	// to the transport's default.
	CfgRPCTimeout = "rpc.timeout"

	// CfgLogLevels sets the log level, e.g. "*:warn,rpc:debug".
	CfgLogLevels = "log.levels"
)

func init() {
	viper.SetDefault(CfgRPCTimeout, time.Duration(0))
	viper.SetDefault(CfgLogLevels, "*:warn")
}
