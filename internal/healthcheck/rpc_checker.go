package healthcheck

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/TykTechnologies/tyk-rpc-router/headers"
)

// probeBody is a request every Ethereum node answers without state access.
var probeBody = []byte(`{"jsonrpc":"2.0","id":1,"method":"web3_clientVersion","params":[]}`)

// RPCCheck probes a JSON-RPC backend with web3_clientVersion.
type RPCCheck struct {
	name   string
	url    string
	client *http.Client
}

// NewRPCCheck creates a check named name against the backend at url.
func NewRPCCheck(name, url string, client *http.Client) *RPCCheck {
	if client == nil {
		client = http.DefaultClient
	}
	return &RPCCheck{
		name:   name,
		url:    url,
		client: client,
	}
}

// Name returns the name of the check.
func (c *RPCCheck) Name() string {
	return c.name
}

// Result fails when the backend is unreachable, answers with a non-2xx
// status, or returns a JSON-RPC error object.
func (c *RPCCheck) Result(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(probeBody))
	if err != nil {
		return err
	}
	req.Header.Set(headers.ContentType, headers.ApplicationJSON)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if rpcErr := gjson.GetBytes(body, "error"); rpcErr.Exists() && rpcErr.Type != gjson.Null {
		return fmt.Errorf("rpc error: %s", rpcErr.Get("message").String())
	}

	return nil
}
