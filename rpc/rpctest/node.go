// Package rpctest provides an in-process node serving transaction receipts
// over HTTP and websocket JSON-RPC, for use in tests.
package rpctest

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

// Node answers eth_getTransactionReceipt from an in-memory table. Hashes
// without an entry get a null result.
type Node struct {
	server *httptest.Server
	rpc    *gethrpc.Server

	mu       sync.Mutex
	receipts map[string]map[string]interface{}
	rejected map[string]string
	delay    time.Duration
	calls    int
}

// NewNode starts a node. Callers must Close it.
func NewNode() *Node {
	n := &Node{
		receipts: make(map[string]map[string]interface{}),
		rejected: make(map[string]string),
	}

	n.rpc = gethrpc.NewServer()
	if err := n.rpc.RegisterName("eth", &ethService{node: n}); err != nil {
		panic(err)
	}

	router := mux.NewRouter()
	router.Handle("/rpc", n.rpc).Methods("POST")
	router.Handle("/ws", n.rpc.WebsocketHandler([]string{"*"}))
	n.server = httptest.NewServer(router)
	return n
}

// Endpoint returns the HTTP URL of the RPC handler.
func (n *Node) Endpoint() string {
	return n.server.URL + "/rpc"
}

// WSEndpoint returns the websocket URL of the RPC handler.
func (n *Node) WSEndpoint() string {
	return "ws" + strings.TrimPrefix(n.server.URL, "http") + "/ws"
}

func (n *Node) Close() {
	n.rpc.Stop()
	n.server.Close()
}

// SetReceipt registers the JSON object returned for hash.
func (n *Node) SetReceipt(hash string, receipt map[string]interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.receipts[hash] = receipt
}

// Reject makes the node answer requests for hash with an error carrying msg.
func (n *Node) Reject(hash string, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rejected[hash] = msg
}

// SetDelay holds every answer back for d, or until the request is abandoned.
func (n *Node) SetDelay(d time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.delay = d
}

// Calls returns the number of receipt requests served so far.
func (n *Node) Calls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls
}

type ethService struct {
	node *Node
}

// GetTransactionReceipt serves eth_getTransactionReceipt.
func (s *ethService) GetTransactionReceipt(ctx context.Context, hash string) (map[string]interface{}, error) {
	n := s.node

	n.mu.Lock()
	n.calls++
	delay := n.delay
	receipt, found := n.receipts[hash]
	msg, rejected := n.rejected[hash]
	n.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if rejected {
		return nil, errors.New(msg)
	}
	if !found {
		return nil, nil
	}
	return receipt, nil
}
