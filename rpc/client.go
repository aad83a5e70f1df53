package rpc

import (
	"context"
	"net/http"
	"strings"
	"time"

	ethereum "github.com/ethereum/go-ethereum"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
	"github.com/thetatoken/txverify/common/util"
	"github.com/ybbus/jsonrpc"
)

const methodGetTransactionReceipt = "eth_getTransactionReceipt"

var logger = util.GetLoggerForModule("rpc")

// Client looks up transaction receipts on a remote node. TransactionReceipt
// returns ethereum.NotFound if the node has no receipt for the hash, or has
// one that is not yet in a block.
//
// HTTPClient honors the deadline of ctx but cannot abort a request that is
// already in flight when ctx is cancelled without a deadline.
type Client interface {
	TransactionReceipt(ctx context.Context, hash string) (*Receipt, error)
	Close()
}

// NewClient returns a client for the endpoint. HTTP(S) endpoints are served
// lazily by HTTPClient; ws(s) endpoints and IPC paths are dialed right away.
// A zero timeout leaves request deadlines to the transport.
func NewClient(url string, timeout time.Duration) (Client, error) {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return newHTTPClient(url, timeout), nil
	}
	c, err := dialNodeClient(url, timeout)
	if err != nil {
		return nil, err
	}
	return c, nil
}

//
// --------------------- HTTP client -------------------------
//

// HTTPClient talks JSON-RPC over plain HTTP(S).
type HTTPClient struct {
	*jsonrpc.RPCClient
	url     string
	timeout time.Duration
}

func newHTTPClient(url string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		RPCClient: jsonrpc.NewRPCClient(url),
		url:       url,
		timeout:   timeout,
	}
}

// requestTimeout is the shorter of the configured timeout and the time left
// until the deadline of ctx. Zero means no limit.
func (c *HTTPClient) requestTimeout(ctx context.Context) time.Duration {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		left := time.Until(deadline)
		if left <= 0 {
			left = time.Nanosecond
		}
		if timeout == 0 || left < timeout {
			timeout = left
		}
	}
	return timeout
}

func (c *HTTPClient) TransactionReceipt(ctx context.Context, hash string) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The ybbus client takes no context, so deadlines go through http.Client.
	c.RPCClient.SetHTTPClient(&http.Client{Timeout: c.requestTimeout(ctx)})

	logger.Debugf("Calling %v on %v, hash: %v", methodGetTransactionReceipt, c.url, hash)

	res, err := c.RPCClient.Call(methodGetTransactionReceipt, hash)
	if err != nil {
		return nil, errors.Wrapf(err, "%v failed", methodGetTransactionReceipt)
	}
	if res.Error != nil {
		return nil, errors.Wrapf(res.Error, "node rejected %v", methodGetTransactionReceipt)
	}
	if res.Result == nil {
		return nil, ethereum.NotFound
	}

	receipt := &Receipt{}
	if err := res.GetObject(receipt); err != nil {
		return nil, errors.Wrap(err, "failed to parse receipt")
	}
	if !receipt.Mined() {
		logger.Debugf("Receipt for %v is not in a block yet", hash)
		return nil, ethereum.NotFound
	}
	return receipt, nil
}

func (c *HTTPClient) Close() {}

//
// --------------------- Node client -------------------------
//

// NodeClient uses the go-ethereum RPC client, which also covers websocket
// and IPC endpoints.
type NodeClient struct {
	c       *gethrpc.Client
	url     string
	timeout time.Duration
}

func dialNodeClient(url string, timeout time.Duration) (*NodeClient, error) {
	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	c, err := gethrpc.DialContext(ctx, url)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to dial %v", url)
	}
	return &NodeClient{c: c, url: url, timeout: timeout}, nil
}

func (c *NodeClient) TransactionReceipt(ctx context.Context, hash string) (*Receipt, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	logger.Debugf("Calling %v on %v, hash: %v", methodGetTransactionReceipt, c.url, hash)

	var receipt *Receipt
	err := c.c.CallContext(ctx, &receipt, methodGetTransactionReceipt, hash)
	if err != nil {
		return nil, errors.Wrapf(err, "%v failed", methodGetTransactionReceipt)
	}
	if receipt == nil || !receipt.Mined() {
		return nil, ethereum.NotFound
	}
	return receipt, nil
}

func (c *NodeClient) Close() {
	c.c.Close()
}
