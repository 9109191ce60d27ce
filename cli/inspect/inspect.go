// Package inspect adds commands that explain routing decisions offline.
package inspect

import (
	"fmt"
	"io"
	"sort"

	kingpin "github.com/alecthomas/kingpin/v2"
	"github.com/goccy/go-json"
	"github.com/samber/lo"

	"github.com/TykTechnologies/tyk-rpc-router/internal/classifier"
	"github.com/TykTechnologies/tyk-rpc-router/internal/jsonrpc"
)

type inspector struct {
	out io.Writer

	method *string
	params *string
}

type explanation struct {
	Method      string `json:"method"`
	Destination string `json:"destination"`
	Reason      string `json:"reason"`
	BlockRef    string `json:"block_ref,omitempty"`
}

// Classify prints the routing decision for the given method and params.
func (i *inspector) Classify(_ *kingpin.ParseContext) error {
	body, err := json.Marshal(map[string]any{
		"jsonrpc": jsonrpc.Version,
		"id":      1,
		"method":  *i.method,
		"params":  json.RawMessage(*i.params),
	})
	if err != nil {
		return fmt.Errorf("params must be valid JSON: %w", err)
	}

	req, err := jsonrpc.Parse(body)
	if err != nil {
		return err
	}

	decision := classifier.Explain(req)
	return i.print(explanation{
		Method:      req.Method,
		Destination: decision.Destination.String(),
		Reason:      string(decision.Reason),
		BlockRef:    string(decision.BlockRef),
	})
}

// Methods prints the method registries the classifier uses.
func (i *inspector) Methods(_ *kingpin.ParseContext) error {
	blockTag := classifier.BlockTagMethods()
	names := lo.Keys(blockTag)
	sort.Strings(names)

	fmt.Fprintln(i.out, "Tracing methods (always tracer):")
	for _, m := range classifier.TracingMethods() {
		fmt.Fprintf(i.out, "  %s\n", m)
	}

	fmt.Fprintln(i.out, "Block reference methods (param index):")
	for _, m := range names {
		fmt.Fprintf(i.out, "  %s %d\n", m, blockTag[m])
	}

	fmt.Fprintln(i.out, "Predefined tags (proxy):")
	for _, tag := range classifier.PredefinedTags() {
		fmt.Fprintf(i.out, "  %s\n", tag)
	}
	return nil
}

func (i *inspector) print(e explanation) error {
	enc := json.NewEncoder(i.out)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// AddTo adds the classify and methods commands to app. Output goes to out.
func AddTo(app *kingpin.Application, out io.Writer) {
	i := &inspector{out: out}

	classifyCmd := app.Command("classify", "Print the destination of a JSON-RPC call")
	i.method = classifyCmd.Flag("method", "JSON-RPC method name").Short('m').Required().String()
	i.params = classifyCmd.Flag("params", "JSON-RPC params as JSON").Short('p').Default("[]").String()
	classifyCmd.Action(i.Classify)

	methodsCmd := app.Command("methods", "List the method registries")
	methodsCmd.Action(i.Methods)
}
