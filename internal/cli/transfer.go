package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/familytower/pkg/errors"
	famio "github.com/matzehuels/familytower/pkg/io"
)

// exportCommand writes the tree as a family file.
func (c *CLI) exportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the tree to a family file",
		Long: `Write every member and relation as a JSON family file. Without -o the
file is written to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, err := c.newRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer r.Close()

			reg := r.Tree.Registry()
			if output == "" {
				return famio.WriteJSON(reg, cmd.OutOrStdout())
			}
			if err := famio.ExportJSON(reg, output); err != nil {
				return err
			}
			printSuccess("Exported %d members", reg.Len())
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

// importCommand replaces the tree with a family file.
func (c *CLI) importCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the tree with a family file",
		Long: `Read a family file written by "export" (or a bare JSON array of members)
and make it the current tree. Positions are laid out from scratch.

An existing tree is only replaced with --force.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := famio.ImportJSON(args[0])
			if err != nil {
				return err
			}

			r, _, err := c.newRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer r.Close()

			if n := r.Tree.Len(); n > 0 && !force {
				return errors.New(errors.ErrCodeRootExists, "tree already has %d members, use --force to replace it", n)
			}
			res, err := r.Import(cmd.Context(), reg)
			if err != nil {
				return err
			}
			printSuccess("Imported %d members", len(res.Graph.Nodes))
			printResult(res)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "replace an existing tree")
	return cmd
}
