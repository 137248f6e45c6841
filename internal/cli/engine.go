package cli

import (
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/molviz/molrender/pkg/render/engine"
)

// engineCommand creates the engine command, which reports how the rendering
// engine binary is discovered. Useful for diagnosing ENGINE_NOT_FOUND
// failures.
func (c *CLI) engineCommand() *cobra.Command {
	var explicit string

	cmd := &cobra.Command{
		Use:   "engine",
		Short: "Report how the rendering engine is discovered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if explicit == "" {
				explicit = c.Config.Engine
			}
			return runEngineReport(explicit)
		},
	}

	cmd.Flags().StringVar(&explicit, "engine", "", "explicit engine path to check first")
	return cmd
}

func runEngineReport(explicit string) error {
	printKeyValue("explicit", valueOrDash(explicit))
	printKeyValue("$"+engine.EnvVar, valueOrDash(os.Getenv(engine.EnvVar)))

	pathMatch, _ := exec.LookPath(engine.BinaryName)
	printKeyValue("PATH", valueOrDash(pathMatch))

	found, err := engine.Locate(explicit)
	if err != nil {
		printError("no usable engine found")
		return err
	}

	printSuccess("Using %s (%s)", found, matchedStrategy(found, explicit, pathMatch))
	return nil
}

// matchedStrategy names the discovery strategy that produced the chosen
// path, following the same priority order the locator uses.
func matchedStrategy(found, explicit, pathMatch string) string {
	switch found {
	case explicit:
		return "explicit path"
	case os.Getenv(engine.EnvVar):
		return "environment"
	case pathMatch:
		return "PATH"
	}
	return "unknown"
}

func valueOrDash(v string) string {
	if v == "" {
		return "—"
	}
	return v
}
