package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/thetatoken/txverify/common"
	"github.com/thetatoken/txverify/rpc"
	"github.com/thetatoken/txverify/rpc/rpctest"
)

const (
	successHash = "0x2fe41732b40ca852e9c36f52b278dde78f0fe34f28f9c94083112aa6a0624b8c"
	failedHash  = "0x5c504ed432cb51138bcf09aa5e8a410dd4a1e204ef84bfed1be16dfba1b22060"
	createHash  = "0x9fc76417374aa880d4449a1f7f31ec597f00b1f6f3dd2d66f4c9c6c445836d8b"
	pendingHash = "0xc6ef2fc5426d6ad6fd9e2a26abeab0aa2411b7ab17f30a99d3cb96aed1d1055b"
	missingHash = "0x88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b"
)

func newTestNode() *rpctest.Node {
	node := rpctest.NewNode()
	node.SetReceipt(successHash, map[string]interface{}{
		"blockNumber": "0x7b",
		"from":        "0xAAA",
		"to":          "0xBBB",
		"status":      "0x1",
	})
	node.SetReceipt(failedHash, map[string]interface{}{
		"blockNumber": "0x7c",
		"from":        "0xAAA",
		"to":          "0xCCC",
		"status":      "0x0",
	})
	node.SetReceipt(createHash, map[string]interface{}{
		"blockNumber": "0x7d",
		"from":        "0xAAA",
		"to":          nil,
		"status":      "0x1",
	})
	node.SetReceipt(pendingHash, map[string]interface{}{
		"blockNumber": nil,
		"from":        "0xAAA",
		"to":          "0xBBB",
		"status":      nil,
	})
	node.Reject("0xzz", "invalid argument 0: json: cannot unmarshal invalid hex string into Go value of type common.Hash")
	return node
}

func runWithArgs(args ...string) (string, int) {
	out := &bytes.Buffer{}
	code := verify(out, args, rpc.NewClient)
	return out.String(), code
}

func TestVerifyUsage(t *testing.T) {
	assert := assert.New(t)

	node := newTestNode()
	defer node.Close()

	usage := "Usage: txverify <RPC_URL> <TX_HASH>\n"
	for _, args := range [][]string{
		{},
		{node.Endpoint()},
		{"", successHash},
		{node.Endpoint(), ""},
	} {
		out, code := runWithArgs(args...)
		assert.Equal(usage, out)
		assert.Equal(1, code)
	}
	assert.Equal(0, node.Calls())
}

func TestVerifySuccess(t *testing.T) {
	assert := assert.New(t)

	node := newTestNode()
	defer node.Close()

	out, code := runWithArgs(node.Endpoint(), successHash)
	assert.Equal("Block : 123\nFrom  : 0xAAA\nTo    : 0xBBB\nStatus: SUCCESS\n", out)
	assert.Equal(0, code)
	assert.Equal(1, node.Calls())
}

func TestVerifyFailedTx(t *testing.T) {
	assert := assert.New(t)

	node := newTestNode()
	defer node.Close()

	out, code := runWithArgs(node.Endpoint(), failedHash)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Equal(4, len(lines))
	assert.Equal("Block : 124", lines[0])
	assert.Equal("Status: FAIL", lines[3])
	assert.Equal(0, code)
}

func TestVerifyContractCreation(t *testing.T) {
	assert := assert.New(t)

	node := newTestNode()
	defer node.Close()

	out, code := runWithArgs(node.Endpoint(), createHash)
	assert.Equal("Block : 125\nFrom  : 0xAAA\nTo    : null\nStatus: SUCCESS\n", out)
	assert.Equal(0, code)
}

func TestVerifyNotFound(t *testing.T) {
	assert := assert.New(t)

	node := newTestNode()
	defer node.Close()

	out, code := runWithArgs(node.Endpoint(), missingHash)
	assert.Equal("TX not found\n", out)
	assert.Equal(1, code)
}

func TestVerifyPending(t *testing.T) {
	assert := assert.New(t)

	node := newTestNode()
	defer node.Close()

	out, code := runWithArgs(node.Endpoint(), pendingHash)
	assert.Equal("TX not found\n", out)
	assert.Equal(1, code)
}

func TestVerifyWebsocket(t *testing.T) {
	assert := assert.New(t)

	node := newTestNode()
	defer node.Close()

	out, code := runWithArgs(node.WSEndpoint(), successHash)
	assert.Equal("Block : 123\nFrom  : 0xAAA\nTo    : 0xBBB\nStatus: SUCCESS\n", out)
	assert.Equal(0, code)
}

func TestVerifyTimeout(t *testing.T) {
	assert := assert.New(t)

	node := newTestNode()
	defer node.Close()
	node.SetDelay(2 * time.Second)

	viper.Set(common.CfgRPCTimeout, 50*time.Millisecond)
	defer viper.Set(common.CfgRPCTimeout, time.Duration(0))

	for _, endpoint := range []string{node.Endpoint(), node.WSEndpoint()} {
		start := time.Now()
		out, code := runWithArgs(endpoint, successHash)
		assert.True(strings.HasPrefix(out, "Failed to get transaction receipt: "), out)
		assert.Equal(1, code)
		assert.True(time.Since(start) < time.Second)
	}
}

func TestVerifyIdempotent(t *testing.T) {
	assert := assert.New(t)

	node := newTestNode()
	defer node.Close()

	out1, code1 := runWithArgs(node.Endpoint(), successHash)
	out2, code2 := runWithArgs(node.Endpoint(), successHash)
	assert.Equal(out1, out2)
	assert.Equal(code1, code2)
	assert.Equal(2, node.Calls())
}

func TestVerifyTransportErrors(t *testing.T) {
	assert := assert.New(t)

	node := newTestNode()

	out, code := runWithArgs(node.Endpoint(), "0xzz")
	assert.True(strings.HasPrefix(out, "Failed to get transaction receipt: "))
	assert.Contains(out, "invalid hex string")
	assert.Equal(1, code)

	// Node unreachable.
	endpoint := node.Endpoint()
	node.Close()
	out, code = runWithArgs(endpoint, successHash)
	assert.True(strings.HasPrefix(out, "Failed to get transaction receipt: "))
	assert.Equal(1, code)

	// IPC endpoints are dialed eagerly.
	out, code = runWithArgs("/nonexistent/geth.ipc", successHash)
	assert.True(strings.HasPrefix(out, "Failed to connect to /nonexistent/geth.ipc: "))
	assert.Equal(1, code)
}
