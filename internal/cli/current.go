package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/avatarkit/pkg/avatar"
	avatario "github.com/matzehuels/avatarkit/pkg/io"
	"github.com/matzehuels/avatarkit/pkg/session"
	"github.com/matzehuels/avatarkit/pkg/studio"
)

// currentCommand manages the avatar persisted between CLI invocations.
func (c *CLI) currentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "current",
		Short: "Show and edit the saved current avatar",
		Long: `The current avatar is stored under $XDG_CONFIG_HOME/avatarkit/sessions and
is shared by the current, sheet and edit commands.`,
	}

	cmd.AddCommand(c.currentShowCommand())
	cmd.AddCommand(c.currentSetCommand())
	cmd.AddCommand(c.currentRandomizeCommand())
	cmd.AddCommand(c.currentResetCommand())
	cmd.AddCommand(c.currentImportCommand())
	cmd.AddCommand(c.currentExportCommand())
	return cmd
}

// openCurrent loads the current avatar into a controller.
func (c *CLI) openCurrent(ctx context.Context, opts ...studio.Option) (*studio.Controller, *session.CurrentStore, error) {
	store, err := currentStore()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := store.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	opts = append([]studio.Option{studio.WithConfig(cfg), studio.WithLogger(c.Logger)}, opts...)
	ctrl, err := studio.New(opts...)
	if err != nil {
		return nil, nil, err
	}
	return ctrl, store, nil
}

// updateCurrent applies edit to the current avatar and saves it.
func (c *CLI) updateCurrent(ctx context.Context, edit func(*studio.Controller) error) (avatar.Config, error) {
	ctrl, store, err := c.openCurrent(ctx)
	if err != nil {
		return avatar.Config{}, err
	}
	if err := edit(ctrl); err != nil {
		return avatar.Config{}, err
	}
	cfg := ctrl.Config()
	return cfg, store.Save(ctx, cfg)
}

func (c *CLI) currentShowCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current avatar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := currentStore()
			if err != nil {
				return err
			}
			cfg, err := store.Load(cmd.Context())
			if err != nil {
				return err
			}
			if format != "" {
				f, err := avatario.ParseFormat(format)
				if err != nil {
					return err
				}
				return avatario.WriteConfig(cmd.OutOrStdout(), cfg, f)
			}
			printAvatar(cfg)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "print as json, toml or yaml instead of a summary")
	return cmd
}

func (c *CLI) currentSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "set slot=value...",
		Short:   "Change slots of the current avatar",
		Example: `  avatarkit current set hair_style=afro hair_color=#ff69b4`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.updateCurrent(cmd.Context(), func(ctrl *studio.Controller) error {
				next, err := applySets(ctrl.Config(), args)
				if err != nil {
					return err
				}
				return ctrl.Load(next)
			})
			if err != nil {
				return err
			}
			printSuccess("Updated %d slot(s)", len(args))
			printDetail("avatar %s", cfg.Fingerprint()[:12])
			return nil
		},
	}
}

func (c *CLI) currentRandomizeCommand() *cobra.Command {
	var seed uint64
	cmd := &cobra.Command{
		Use:   "randomize",
		Short: "Replace the current avatar with a random one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, store, err := c.openCurrent(cmd.Context(), studio.WithRand(newRand(seed)))
			if err != nil {
				return err
			}
			cfg := ctrl.Randomize()
			if err := store.Save(cmd.Context(), cfg); err != nil {
				return err
			}
			printSuccess("Randomized current avatar")
			printAvatar(cfg)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 = random)")
	return cmd
}

func (c *CLI) currentResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default avatar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.updateCurrent(cmd.Context(), func(ctrl *studio.Controller) error {
				ctrl.Reset()
				return nil
			}); err != nil {
				return err
			}
			printSuccess("Reset current avatar")
			return nil
		},
	}
}

func (c *CLI) currentImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <config-file>",
		Short: "Load the current avatar from a config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := avatario.ImportConfig(args[0])
			if err != nil {
				return err
			}
			if _, err := c.updateCurrent(cmd.Context(), func(ctrl *studio.Controller) error {
				return ctrl.Load(cfg)
			}); err != nil {
				return err
			}
			printSuccess("Imported %s", args[0])
			return nil
		},
	}
}

func (c *CLI) currentExportCommand() *cobra.Command {
	var (
		output        string
		width, height int
		scale         float64
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Save the current avatar as PNG",
		Long: `Paint the current avatar and save it as PNG. Without -o the file is named
after the current UTC time, e.g. avatar-2024-03-01T09-30-00.png.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rs := c.settings.Render
			if !cmd.Flags().Changed("width") {
				width = rs.Width
			}
			if !cmd.Flags().Changed("height") {
				height = rs.Height
			}
			if !cmd.Flags().Changed("scale") {
				scale = rs.Scale
			}
			ctrl, _, err := c.openCurrent(cmd.Context(), studio.WithSize(width, height), studio.WithScale(scale))
			if err != nil {
				return err
			}
			if output == "" {
				output = studio.ExportFilename(time.Now())
			}
			if err := exportFrame(cmd.Context(), ctrl, output); err != nil {
				return err
			}
			printSuccess("Exported current avatar")
			printFile(output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (- for stdout)")
	cmd.Flags().IntVar(&width, "width", 0, "canvas width")
	cmd.Flags().IntVar(&height, "height", 0, "canvas height")
	cmd.Flags().Float64Var(&scale, "scale", 0, "pixel ratio")
	return cmd
}

// exportFrame writes ctrl's latest frame to path as PNG.
func exportFrame(ctx context.Context, ctrl *studio.Controller, path string) (err error) {
	w, err := openOutput(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()
	return ctrl.Export(ctx, w)
}

// printAvatar prints one line per slot.
func printAvatar(cfg avatar.Config) {
	for _, s := range avatar.Slots() {
		printKeyValue(s.Label(), cfg.Get(s))
	}
	printKeyValue("Fingerprint", styleDim.Render(cfg.Fingerprint()[:12]))
}
