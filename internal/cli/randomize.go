package cli

import (
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/matzehuels/avatarkit/pkg/avatar"
	avatario "github.com/matzehuels/avatarkit/pkg/io"
)

// randomizeCommand creates the randomize command.
func (c *CLI) randomizeCommand() *cobra.Command {
	var (
		seed   uint64
		format string
		output string
		save   bool
		render string
	)

	cmd := &cobra.Command{
		Use:   "randomize",
		Short: "Print a random avatar configuration",
		Long: `Sample every slot uniformly from the catalog and print the result as a
config file that render accepts.`,
		Example: `  avatarkit randomize > me.toml
  avatarkit randomize --seed 42 --format json
  avatarkit randomize -o me.toml --render png,svg
  avatarkit randomize --save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := avatario.ParseFormat(format)
			if err != nil {
				return err
			}
			cfg := avatar.Random(newRand(seed))

			if save {
				store, err := currentStore()
				if err != nil {
					return err
				}
				if err := store.Save(cmd.Context(), cfg); err != nil {
					return err
				}
				printSuccess("Saved as current avatar")
				printDetail("%s", store.Path())
				return nil
			}

			if output != "" && output != "-" {
				if err := avatario.ExportConfig(cfg, output); err != nil {
					return err
				}
				printSuccess("Wrote random avatar")
				printFile(output)
			} else if err := avatario.WriteConfig(cmd.OutOrStdout(), cfg, f); err != nil {
				return err
			}

			if render == "" {
				if output != "" && output != "-" {
					printNextStep("Render it", "avatarkit render "+output)
				}
				return nil
			}
			// Artifacts are named after the config file, or "avatar".
			input := output
			if input == "-" {
				input = ""
			}
			return c.runRender(cmd, cfg, input, renderOpts{formats: render, seed: seed})
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 = random)")
	cmd.Flags().StringVar(&format, "format", "toml", "config format: json, toml, yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file (format from its extension)")
	cmd.Flags().BoolVar(&save, "save", false, "store as the current avatar instead of printing")
	cmd.Flags().StringVar(&render, "render", "", "also render to these formats (e.g. png,svg)")
	return cmd
}

// newRand returns a generator for seed, or nil (the global generator) for 0.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(seed, seed))
}
