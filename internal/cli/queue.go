package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/molviz/molrender/pkg/queue"
)

// queueOpts holds the command-line flags for the queue command.
type queueOpts struct {
	pattern     string // glob pattern for structure files
	sortKey     string // sort key: name, date_modified, date_created, size
	order       string // ascending or descending
	index       int    // index into the sorted list, wraps modulo length
	interactive bool   // open the interactive picker instead of using index
	listOnly    bool   // print the full list instead of one selection
}

// queueCommand creates the queue command for working with folders of
// structure files.
func (c *CLI) queueCommand() *cobra.Command {
	opts := queueOpts{
		pattern: "*.pdb",
		sortKey: queue.SortByName,
		order:   queue.OrderAscending,
	}

	cmd := &cobra.Command{
		Use:   "queue <dir>",
		Short: "Scan a folder of structure files and select one",
		Long: `Scan a folder for structure files matching a glob pattern and select one
by index. The index wraps around the list length, so an incrementing counter
cycles through the folder. Use --interactive for a picker UI, or --list to
print every match.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runQueue(args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.pattern, "pattern", opts.pattern, "glob pattern for structure files")
	cmd.Flags().StringVar(&opts.sortKey, "sort", opts.sortKey, "sort key: name, date_modified, date_created, size")
	cmd.Flags().StringVar(&opts.order, "order", opts.order, "sort order: ascending, descending")
	cmd.Flags().IntVarP(&opts.index, "index", "n", 0, "index into the sorted list (wraps around)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "select interactively")
	cmd.Flags().BoolVarP(&opts.listOnly, "list", "l", false, "print all matching files")

	return cmd
}

func (c *CLI) runQueue(dir string, opts *queueOpts) error {
	files, err := queue.Scan(dir, opts.pattern, opts.sortKey, opts.order)
	if err != nil {
		return err
	}

	if opts.listOnly {
		printInfo("%d files matching %s", len(files), opts.pattern)
		for _, f := range files {
			fmt.Println(f)
		}
		return nil
	}

	var selected string
	if opts.interactive {
		selected, err = pickFile(files)
		if err != nil {
			return err
		}
		if selected == "" {
			printWarning("no file selected")
			return nil
		}
	} else {
		selected, err = queue.Pick(files, opts.index)
		if err != nil {
			return err
		}
	}

	printSuccess("Selected %s", filepath.Base(selected))
	printDetail("%d files matching %s in queue", len(files), opts.pattern)
	fmt.Println(selected)
	return nil
}
