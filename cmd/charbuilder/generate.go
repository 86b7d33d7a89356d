package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
	"github.com/KirkDiggler/rpg-charbuilder/internal/exporters"
	"github.com/KirkDiggler/rpg-charbuilder/internal/orchestrators/builder"
)

var (
	genSets   []string
	genFormat string
	genOut    string
	genSeed   int64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a complete character in one step",
	Long: `Generate presets the fields given with --set, locks them, fills every
other field at random and writes the result.

  charbuilder generate --set race=elf --set class=wizard --set level=5
  charbuilder generate --set "abilities=str=8,int=16" --format statblock --seed 42`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringArrayVar(&genSets, "set", nil, "field=value to preset and lock (repeatable, applied in order)")
	generateCmd.Flags().StringVar(&genFormat, "format", string(exporters.FormatActor), "output format: actor, statblock or summary")
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "", "output file (default stdout)")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "seed for a reproducible character")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	ctrl, err := a.controller(nil)
	if err != nil {
		return err
	}
	unsubscribe := ctrl.Subscribe(logNotification)
	defer unsubscribe()

	if err := applyAssignments(ctx, ctrl, genSets); err != nil {
		return err
	}

	input := &builder.RandomizeInput{}
	if cmd.Flags().Changed("seed") {
		input.Seed = &genSeed
	}
	if _, err := ctrl.Randomize(ctx, input); err != nil {
		return err
	}

	return writeOutput(ctx, cmd.OutOrStdout(), ctrl, genFormat, genOut)
}

// applyAssignments sets each field=value pair in order
func applyAssignments(ctx context.Context, ctrl builder.Controller, assignments []string) error {
	for _, a := range assignments {
		name, raw, ok := strings.Cut(a, "=")
		if !ok {
			return errors.InvalidArgumentf("expected field=value, got %q", a)
		}
		if err := setField(ctx, ctrl, name, raw); err != nil {
			return err
		}
	}
	return nil
}

func setField(ctx context.Context, ctrl builder.Controller, name, raw string) error {
	field, ok := character.ParseField(strings.ToLower(strings.TrimSpace(name)))
	if !ok {
		return errors.InvalidArgumentf("unknown field %q", name).
			WithMeta("fields", character.Fields())
	}

	value, err := builder.ParseValue(field, raw)
	if err != nil {
		return err
	}

	out, err := ctrl.Set(ctx, &builder.SetInput{Field: field, Value: value})
	if err != nil {
		return err
	}
	if len(out.Cleared) > 0 {
		slog.Info("Cleared fields the change made illegal", "field", field, "cleared", out.Cleared)
	}
	return nil
}

// writeOutput renders the draft in format to path, or to w when path is empty
func writeOutput(ctx context.Context, w io.Writer, ctrl builder.Controller, format, path string) error {
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return errors.WrapWithCodef(err, errors.CodeInvalidArgument, "failed to create %s", path)
		}
		defer f.Close()
		w = f
	}

	if strings.EqualFold(strings.TrimSpace(format), formatSummary) {
		cur, err := ctrl.Current(ctx)
		if err != nil {
			return err
		}
		return writeSummary(w, cur.Draft, cur.Snapshot)
	}

	f, ok := exporters.ParseFormat(format)
	if !ok {
		return errors.InvalidArgumentf("unknown format %q", format).
			WithMeta("formats", append(exporters.Formats(), formatSummary))
	}

	out, err := ctrl.Export(ctx, &builder.ExportInput{Format: f})
	if err != nil {
		return err
	}
	if _, err := w.Write(out.Data); err != nil {
		return errors.Wrap(err, "failed to write export")
	}
	if len(out.Data) > 0 && out.Data[len(out.Data)-1] != '\n' {
		fmt.Fprintln(w)
	}

	if path != "" {
		slog.Info("Wrote export", "format", f, "path", path, "bytes", len(out.Data))
	}
	return nil
}

func logNotification(_ context.Context, n *builder.Notification) error {
	slog.Debug("Draft changed",
		"event", n.Type,
		"field", n.Field,
		"revision", n.Revision)
	return nil
}
