package cli

import (
	"bytes"
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/avatarkit/pkg/avatar"
	"github.com/matzehuels/avatarkit/pkg/cache"
	avatario "github.com/matzehuels/avatarkit/pkg/io"
	"github.com/matzehuels/avatarkit/pkg/observability"
	"github.com/matzehuels/avatarkit/pkg/pipeline"
	"github.com/matzehuels/avatarkit/pkg/sheet"
)

// sheetCommand renders a contact sheet of one slot's variants.
func (c *CLI) sheetCommand() *cobra.Command {
	var (
		from    string
		output  string
		opts    sheet.Options
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "sheet <slot>",
		Short: "Render every variant of a slot side by side",
		Long: `Render a PNG contact sheet with one labelled cell per variant of a slot.
The other slots come from the current avatar, or from --from.`,
		Example: `  avatarkit sheet hair_style
  avatarkit sheet eye_color --from me.toml --columns 5 -o eyes.png`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			keys := make([]string, 0, len(avatar.Slots()))
			for _, s := range avatar.Slots() {
				keys = append(keys, s.Key())
			}
			return keys, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			slot, err := avatar.ParseSlot(args[0])
			if err != nil {
				return err
			}

			base, err := loadBase(ctx, from)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			if output == "" {
				output = slot.Key() + ".png"
			}
			prog := newProgress(loggerFromContext(ctx))
			data, cached, err := renderSheet(ctx, runner, base, slot, opts)
			if err != nil {
				return err
			}
			prog.done("Rendered " + slot.Key() + " sheet")

			if err := writeArtifact(cmd.OutOrStdout(), output, data); err != nil {
				return err
			}
			if output == "-" {
				return nil
			}
			printSuccess("%s: %d variants", slot.Label(), len(avatar.Variants(slot)))
			printFileSize(output, len(data))
			if cached {
				printDetail("from cache")
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&from, "from", "", "config file for the other slots (default: current avatar)")
	f.StringVarP(&output, "output", "o", "", "output file (default <slot>.png, - for stdout)")
	f.IntVar(&opts.Cell, "cell", sheet.DefaultCell, "cell size in pixels")
	f.IntVar(&opts.Columns, "columns", sheet.DefaultColumns, "cells per row")
	f.Uint64Var(&opts.Seed, "seed", 0, "random seed shared by all cells (0 = random, not cached)")
	f.BoolVar(&noCache, "no-cache", false, "disable the cache")
	return cmd
}

// loadBase reads from, or the current avatar when from is empty.
func loadBase(ctx context.Context, from string) (avatar.Config, error) {
	if from != "" {
		return avatario.ImportConfig(from)
	}
	store, err := currentStore()
	if err != nil {
		return avatar.Config{}, err
	}
	return store.Load(ctx)
}

// renderSheet renders a sheet as PNG. Seeded sheets go through the runner's
// cache.
func renderSheet(ctx context.Context, r *pipeline.Runner, base avatar.Config, slot avatar.Slot, opts sheet.Options) ([]byte, bool, error) {
	var key string
	if opts.Seed != 0 {
		key = r.Keyer.SheetKey(slot.Key(), cache.SheetKeyOpts{
			Base:    base.Fingerprint(),
			Cell:    opts.Cell,
			Columns: opts.Columns,
			Seed:    opts.Seed,
		})
		data, ok, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache read failed", "err", err)
		}
		if ok {
			observability.Cache().OnCacheHit(ctx, "sheet")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "sheet")
	}

	img, err := sheet.Render(ctx, base, slot, opts)
	if err != nil {
		return nil, false, err
	}
	var buf bytes.Buffer
	if err := sheet.Encode(&buf, img); err != nil {
		return nil, false, err
	}

	if key != "" {
		if err := r.Cache.Set(ctx, key, buf.Bytes(), cache.SheetTTL); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "sheet", buf.Len())
		}
	}
	return buf.Bytes(), false, nil
}
