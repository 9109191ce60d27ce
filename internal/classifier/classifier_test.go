package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TykTechnologies/tyk-rpc-router/internal/jsonrpc"
)

const blockHash = `"0x5a1f0c8e0ab1b84fe7ad4d7eaa8cf4ba0e1f2d3c4b5a69788796a5b4c3d2e1f0"`

func parse(t *testing.T, body string) *jsonrpc.Request {
	t.Helper()
	req, err := jsonrpc.Parse([]byte(body))
	require.NoError(t, err)
	return req
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Destination
	}{
		{
			name: "tracing method",
			body: `{"jsonrpc":"2.0","id":1,"method":"debug_traceTransaction","params":["0xabc"]}`,
			want: Tracer,
		},
		{
			name: "tracing method without params",
			body: `{"jsonrpc":"2.0","id":1,"method":"trace_filter"}`,
			want: Tracer,
		},
		{
			name: "balance at latest",
			body: `{"jsonrpc":"2.0","id":1,"method":"eth_getBalance","params":["0x00","latest"]}`,
			want: Proxy,
		},
		{
			name: "balance at pending",
			body: `{"jsonrpc":"2.0","id":1,"method":"eth_getBalance","params":["0x00","pending"]}`,
			want: Proxy,
		},
		{
			name: "code at earliest",
			body: `{"jsonrpc":"2.0","id":1,"method":"eth_getCode","params":["0x00","earliest"]}`,
			want: Proxy,
		},
		{
			name: "balance at block number",
			body: `{"jsonrpc":"2.0","id":1,"method":"eth_getBalance","params":["0x00","0x10"]}`,
			want: Tracer,
		},
		{
			name: "storage at latest uses third param",
			body: `{"jsonrpc":"2.0","id":1,"method":"eth_getStorageAt","params":["0x00","0x0","latest"]}`,
			want: Proxy,
		},
		{
			name: "storage at block hash",
			body: `{"jsonrpc":"2.0","id":1,"method":"eth_getStorageAt","params":["0x00","0x0",` + blockHash + `]}`,
			want: Tracer,
		},
		{
			name: "storage ignores second param",
			body: `{"jsonrpc":"2.0","id":1,"method":"eth_getStorageAt","params":["0x00","latest","0x5"]}`,
			want: Tracer,
		},
		{
			name: "storage at eip-1898 block number object",
			body: `{"jsonrpc":"2.0","id":1,"method":"eth_getStorageAt","params":["0xabc","0x0",{"blockNumber":"0x1"}]}`,
			want: Tracer,
		},
		{
			name: "call with eip-1898 object",
			body: `{"jsonrpc":"2.0","id":1,"method":"eth_call","params":[{"to":"0x00"},{"blockHash":` + blockHash + `}]}`,
			want: Tracer,
		},
		{
			name: "call at latest",
			body: `{"jsonrpc":"2.0","id":1,"method":"eth_call","params":[{"to":"0x00"},"latest"]}`,
			want: Proxy,
		},
		{
			name: "tag match is case-sensitive",
			body: `{"jsonrpc":"2.0","id":1,"method":"eth_getTransactionCount","params":["0x00","Latest"]}`,
			want: Tracer,
		},
		{
			name: "safe is not predefined",
			body: `{"jsonrpc":"2.0","id":1,"method":"eth_getBalance","params":["0x00","safe"]}`,
			want: Tracer,
		},
		{
			name: "finalized is not predefined",
			body: `{"jsonrpc":"2.0","id":1,"method":"eth_getBalance","params":["0x00","finalized"]}`,
			want: Tracer,
		},
		{
			name: "null tag",
			body: `{"jsonrpc":"2.0","id":1,"method":"eth_getBalance","params":["0x00",null]}`,
			want: Tracer,
		},
		{
			name: "unknown method",
			body: `{"jsonrpc":"2.0","id":1,"method":"eth_blockNumber","params":[]}`,
			want: Proxy,
		},
		{
			name: "method name is case-sensitive",
			body: `{"jsonrpc":"2.0","id":1,"method":"DEBUG_traceTransaction","params":["0xabc"]}`,
			want: Proxy,
		},
		{
			name: "by-name params have no positional tag",
			body: `{"jsonrpc":"2.0","id":1,"method":"eth_getBalance","params":{"address":"0x00","block":"latest"}}`,
			want: Tracer,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(parse(t, tc.body)))
		})
	}
}

func TestClassify_TracingMethodIgnoresParams(t *testing.T) {
	params := map[string]string{
		"absent":    "",
		"empty":     `,"params":[]`,
		"null":      `,"params":null`,
		"by-name":   `,"params":{"block":"latest"}`,
		"latest":    `,"params":["latest"]`,
		"positions": `,"params":["0x1","latest","pending"]`,
	}

	for _, method := range TracingMethods() {
		for name, p := range params {
			t.Run(method+" "+name, func(t *testing.T) {
				req := parse(t, `{"jsonrpc":"2.0","id":1,"method":"`+method+`"`+p+`}`)
				assert.Equal(t, Tracer, Classify(req))
				assert.Equal(t, ReasonTracingMethod, Explain(req).Reason)
			})
		}
	}
}

// Omitting the block reference routes to the tracer even though JSON-RPC
// would default it to "latest".
func TestClassify_MissingBlockReference(t *testing.T) {
	for _, body := range []string{
		`{"jsonrpc":"2.0","id":1,"method":"eth_getBalance","params":["0x00"]}`,
		`{"jsonrpc":"2.0","id":1,"method":"eth_getStorageAt","params":["0x00","0x0"]}`,
		`{"jsonrpc":"2.0","id":1,"method":"eth_call"}`,
	} {
		req := parse(t, body)
		assert.Equal(t, Tracer, Classify(req), body)
		assert.True(t, IsEIP1898(req), body)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	req := parse(t, `{"jsonrpc":"2.0","id":1,"method":"eth_getBalance","params":["0x00","0x10"]}`)
	params := make([]string, len(req.Params))
	for i, p := range req.Params {
		params[i] = string(p)
	}

	first := Explain(req)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Explain(req))
	}

	assert.Equal(t, "eth_getBalance", req.Method)
	for i, p := range req.Params {
		assert.Equal(t, params[i], string(p))
	}
}

func TestExplain(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Decision
	}{
		{
			name: "tracing",
			body: `{"method":"trace_block","params":["0x1"]}`,
			want: Decision{Destination: Tracer, Reason: ReasonTracingMethod, BlockRef: BlockRefNone},
		},
		{
			name: "block number",
			body: `{"method":"eth_getCode","params":["0x00","0x1"]}`,
			want: Decision{Destination: Tracer, Reason: ReasonBlockReference, BlockRef: BlockRefNumber},
		},
		{
			name: "tag",
			body: `{"method":"eth_getCode","params":["0x00","pending"]}`,
			want: Decision{Destination: Proxy, Reason: ReasonDefault, BlockRef: BlockRefTag},
		},
		{
			name: "absent",
			body: `{"method":"eth_getCode","params":["0x00"]}`,
			want: Decision{Destination: Tracer, Reason: ReasonBlockReference, BlockRef: BlockRefAbsent},
		},
		{
			name: "default",
			body: `{"method":"net_version"}`,
			want: Decision{Destination: Proxy, Reason: ReasonDefault, BlockRef: BlockRefNone},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Explain(parse(t, tc.body)))
		})
	}
}

func TestIsEIP1898(t *testing.T) {
	assert.False(t, IsEIP1898(parse(t, `{"method":"eth_chainId"}`)))
	assert.False(t, IsEIP1898(parse(t, `{"method":"trace_block","params":["0x1"]}`)))
	assert.False(t, IsEIP1898(parse(t, `{"method":"eth_getBalance","params":["0x00","latest"]}`)))
	assert.True(t, IsEIP1898(parse(t, `{"method":"eth_getBalance","params":["0x00","0x1"]}`)))
}

func TestIsPredefinedTag(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{`"latest"`, true},
		{`"pending"`, true},
		{`"earliest"`, true},
		{` "latest" `, true},
		{`"LATEST"`, false},
		{`"safe"`, false},
		{`"0x1"`, false},
		{`latest`, false},
		{`1`, false},
		{`null`, false},
		{`{"blockNumber":"latest"}`, false},
		{`""`, false},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, IsPredefinedTag([]byte(tc.raw)))
		})
	}
}

func TestDescribeBlockRef(t *testing.T) {
	tests := []struct {
		raw     string
		present bool
		want    BlockRefKind
	}{
		{"", false, BlockRefAbsent},
		{`"latest"`, true, BlockRefTag},
		{`"safe"`, true, BlockRefOtherTag},
		{`"finalized"`, true, BlockRefOtherTag},
		{`"0x1b4"`, true, BlockRefNumber},
		{blockHash, true, BlockRefHash},
		{`{"blockHash":` + blockHash + `}`, true, BlockRefObject},
		{`{"blockNumber":"0x1"}`, true, BlockRefObject},
		{`"Latest"`, true, BlockRefInvalid},
		{`null`, true, BlockRefInvalid},
		{`17`, true, BlockRefInvalid},
	}

	for _, tc := range tests {
		t.Run(string(tc.want)+" "+tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, DescribeBlockRef([]byte(tc.raw), tc.present))
		})
	}
}

func TestRegistry(t *testing.T) {
	methods := TracingMethods()
	assert.Len(t, methods, 15)
	assert.IsIncreasing(t, methods)
	for _, m := range methods {
		assert.True(t, IsTracingMethod(m))
		_, ok := BlockTagIndex(m)
		assert.False(t, ok, "%s is both tracing and block-tag", m)
	}

	idx := BlockTagMethods()
	assert.Equal(t, map[string]int{
		EthGetStorageAt:        2,
		EthGetBalance:          1,
		EthGetCode:             1,
		EthGetTransactionCount: 1,
		EthCall:                1,
	}, idx)

	idx[EthCall] = 9
	got, _ := BlockTagIndex(EthCall)
	assert.Equal(t, 1, got)

	assert.Equal(t, []string{TagEarliest, TagLatest, TagPending}, PredefinedTags())
}

func TestDestination(t *testing.T) {
	assert.Equal(t, "proxy", Proxy.String())
	assert.Equal(t, "/tracer", Tracer.Path())

	d, err := ParseDestination("tracer")
	require.NoError(t, err)
	assert.Equal(t, Tracer, d)

	_, err = ParseDestination("archive")
	assert.Error(t, err)
}
