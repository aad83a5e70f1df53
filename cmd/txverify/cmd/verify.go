package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/thetatoken/txverify/common"
	"github.com/thetatoken/txverify/common/util"
	"github.com/thetatoken/txverify/rpc"
)

const (
	exitOK     = 0
	exitFailed = 1
)

var logger = util.GetLoggerForModule("cmd")

type dialFunc func(url string, timeout time.Duration) (rpc.Client, error)

// verify runs one lookup and writes the result to out. It returns the
// process exit code.
func verify(out io.Writer, args []string, dial dialFunc) int {
	if len(args) < 2 || args[0] == "" || args[1] == "" {
		fmt.Fprintf(out, "Usage: %s <RPC_URL> <TX_HASH>\n", programName)
		return exitFailed
	}
	url, hash := args[0], args[1]

	timeout := viper.GetDuration(common.CfgRPCTimeout)

	client, err := dial(url, timeout)
	if err != nil {
		fmt.Fprintf(out, "Failed to connect to %v: %v\n", url, err)
		return exitFailed
	}
	defer client.Close()

	receipt, err := client.TransactionReceipt(context.Background(), hash)
	if errors.Cause(err) == ethereum.NotFound {
		logger.Debugf("No receipt for %v", hash)
		fmt.Fprintln(out, "TX not found")
		return exitFailed
	}
	if err != nil {
		fmt.Fprintf(out, "Failed to get transaction receipt: %v\n", err)
		return exitFailed
	}

	printReceipt(out, receipt)
	return exitOK
}

func printReceipt(out io.Writer, r *rpc.Receipt) {
	status := "FAIL"
	if r.Succeeded() {
		status = "SUCCESS"
	}

	fmt.Fprintln(out, "Block :", r.Block())
	fmt.Fprintln(out, "From  :", r.From)
	fmt.Fprintln(out, "To    :", r.Recipient())
	fmt.Fprintln(out, "Status:", status)
}
