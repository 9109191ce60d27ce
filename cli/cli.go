// Package cli defines the command line of the router.
package cli

import (
	"io"
	"os"

	kingpin "github.com/alecthomas/kingpin/v2"

	"github.com/TykTechnologies/tyk-rpc-router/cli/inspect"
)

const (
	appName = "tyk-rpc-router"
	appDesc = "JSON-RPC router splitting Ethereum traffic between a proxy and a tracer backend."
)

var (
	// Conf is the configuration file passed with --conf.
	Conf *string
	// Port overrides the configured listen port.
	Port *string
	// Debug forces debug logging.
	Debug *bool

	// DefaultMode is set when the start command was selected.
	DefaultMode bool

	app *kingpin.Application
)

// Init sets all flags and commands.
func Init(version string, out io.Writer) {
	app = kingpin.New(appName, appDesc)
	app.HelpFlag.Short('h')
	app.Version(version)
	app.UsageWriter(out)
	app.ErrorWriter(out)

	startCmd := app.Command("start", "Starts the router").Default()
	Conf = startCmd.Flag("conf", "load a named configuration file").PlaceHolder("tyk-rpc-router.conf").String()
	Port = startCmd.Flag("port", "listen on a port (overrides configuration file)").String()
	Debug = startCmd.Flag("debug", "enable debug mode").Bool()
	startCmd.Action(func(_ *kingpin.ParseContext) error {
		DefaultMode = true
		return nil
	})

	inspect.AddTo(app, out)
}

// Parse parses the command line arguments and runs the selected command.
// It returns the selected command name.
func Parse(args []string) (string, error) {
	return app.Parse(args)
}

// MustParse is Parse for os.Args that exits on errors.
func MustParse() string {
	return kingpin.MustParse(app.Parse(os.Args[1:]))
}
