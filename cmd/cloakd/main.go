// Command cloakd is the cloak identity server daemon.
//
// Startup follows two mutually exclusive paths. The optimized fast path
// (exactly "start --optimized") skips the command dispatcher and runs only a
// lightweight configuration validation before launching the server. Every
// other invocation goes through the full cobra command tree.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/cloak-dev/cloak/cmd/cloakd/commands"
	"github.com/cloak-dev/cloak/cmd/cloakd/daemon"
	"github.com/cloak-dev/cloak/internal/cli"
	"github.com/cloak-dev/cloak/internal/environment"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	env := environment.FromOS()

	cliArgs, err := cli.Preprocess(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.ExitUsage
	}

	if cli.IsFastStart(cliArgs) {
		// The dev profile never gets the optimized path; it belongs to
		// start-dev and the full dispatcher.
		if env.IsDevProfile() {
			perr := &cli.ProfileError{Profile: env.Profile(), Command: cli.StartCommandName}
			fmt.Fprintf(os.Stderr, "Error: %v\n", perr)
			return cli.ExitUsage
		}
		if err := commands.ValidateStartConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return cli.ExitUsage
		}
		return daemon.Start(env)
	}

	commands.SetupCommands(env)
	commands.RootCmd.SetArgs(cliArgs)
	if err := commands.RootCmd.Execute(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			// Failure already logged by the daemon; just propagate the code
			return exitErr.Code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.ExitUsage
	}
	return cli.ExitOK
}
