package cmd

import (
	"fmt"
	"os"
	"path"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/thetatoken/txverify/common"
	"github.com/thetatoken/txverify/common/util"
	"github.com/thetatoken/txverify/rpc"
)

const programName = "txverify"

var cfgPath string

// RootCmd looks up the receipt of a transaction and prints its outcome.
// Example:
//		txverify http://localhost:8545 0x2fe41732b40ca852e9c36f52b278dde78f0fe34f28f9c94083112aa6a0624b8c
//
var RootCmd = &cobra.Command{
	Use:          programName + " <RPC_URL> <TX_HASH>",
	Short:        "Print the outcome of a transaction",
	Long:         `Fetch the receipt of a transaction from a node's JSON-RPC endpoint and print its block, sender, recipient and status.`,
	Example:      programName + ` http://localhost:8545 0x2fe41732b40ca852e9c36f52b278dde78f0fe34f28f9c94083112aa6a0624b8c`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	Run:          runVerify,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", fmt.Sprintf("config path (default is %s)", getDefaultConfigPath()))
	viper.BindPFlag(common.CfgConfigPath, RootCmd.PersistentFlags().Lookup("config"))

	RootCmd.Flags().Duration("timeout", 0, "timeout of the receipt request, 0 for none")
	viper.BindPFlag(common.CfgRPCTimeout, RootCmd.Flags().Lookup("timeout"))
}

// initConfig is called when cmd.Execute() is called. reads in config file and ENV variables if set.
func initConfig() {
	// Search config (without extension).
	viper.SetConfigName("config")

	viper.SetEnvPrefix("TXVERIFY")
	viper.AutomaticEnv() // read in environment variables that match
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfgPath = viper.GetString(common.CfgConfigPath)
	if cfgPath == "" {
		cfgPath = getDefaultConfigPath()
	}

	viper.AddConfigPath(cfgPath)

	// Stdout is reserved for the receipt, so config notices go to the log.
	err := viper.ReadInConfig()

	util.InitLog()
	if err == nil {
		logger.Infof("Using config file: %v", viper.ConfigFileUsed())
	}
}

// getDefaultConfigPath returns the default config path.
func getDefaultConfigPath() string {
	home, err := homedir.Dir()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	return path.Join(home, "."+programName)
}

func runVerify(cmd *cobra.Command, args []string) {
	if code := verify(os.Stdout, args, rpc.NewClient); code != 0 {
		os.Exit(code)
	}
}
