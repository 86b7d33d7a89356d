package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
	"github.com/KirkDiggler/rpg-charbuilder/internal/exporters"
	"github.com/KirkDiggler/rpg-charbuilder/internal/orchestrators/builder"
	characterdraft "github.com/KirkDiggler/rpg-charbuilder/internal/repositories/character_draft"
)

var (
	draftSets   []string
	draftSeed   int64
	draftFormat string
	draftOut    string
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Edit the active draft across invocations",
	Long: `The draft commands edit one active draft kept in Redis. Each command
loads it, applies the change and stores it again.`,
}

var draftNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new draft, replacing the active one",
	Args:  cobra.NoArgs,
	RunE:  runDraftNew,
}

var draftSetCmd = &cobra.Command{
	Use:   "set <field> <value>",
	Short: "Set a field and lock it",
	Long: `Set validates the value against the options the draft allows and locks
the field. An empty value clears the field and releases its lock.

  charbuilder draft set race half-elf
  charbuilder draft set abilities 15,14,13,12,10,8
  charbuilder draft set equipment "longsword+1!,shield!"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDraftSet,
}

var draftUnlockCmd = &cobra.Command{
	Use:   "unlock <field>...",
	Short: "Release fields to randomize without changing their values",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDraftUnlock,
}

var draftClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Reset every field and lock",
	Args:  cobra.NoArgs,
	RunE:  runDraftClear,
}

var draftRandomizeCmd = &cobra.Command{
	Use:   "randomize",
	Short: "Fill every unlocked field",
	Args:  cobra.NoArgs,
	RunE:  runDraftRandomize,
}

var draftShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the draft, locked fields marked with *",
	Args:  cobra.NoArgs,
	RunE:  runDraftShow,
}

var draftExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the draft",
	Args:  cobra.NoArgs,
	RunE:  runDraftExport,
}

var draftOptionsCmd = &cobra.Command{
	Use:   "options <field>",
	Short: "List the values the field accepts right now",
	Args:  cobra.ExactArgs(1),
	RunE:  runDraftOptions,
}

func init() {
	draftNewCmd.Flags().StringArrayVar(&draftSets, "set", nil, "field=value to preset and lock (repeatable)")
	draftRandomizeCmd.Flags().Int64Var(&draftSeed, "seed", 0, "seed for a reproducible result")
	draftExportCmd.Flags().StringVar(&draftFormat, "format", string(exporters.FormatActor), "output format: actor, statblock or summary")
	draftExportCmd.Flags().StringVarP(&draftOut, "out", "o", "", "output file (default stdout)")

	draftCmd.AddCommand(draftNewCmd)
	draftCmd.AddCommand(draftSetCmd)
	draftCmd.AddCommand(draftUnlockCmd)
	draftCmd.AddCommand(draftClearCmd)
	draftCmd.AddCommand(draftRandomizeCmd)
	draftCmd.AddCommand(draftShowCmd)
	draftCmd.AddCommand(draftExportCmd)
	draftCmd.AddCommand(draftOptionsCmd)
}

// session is the active draft loaded into a controller
type session struct {
	ctrl  *builder.Orchestrator
	repo  characterdraft.Repository
	close func()
}

func openSession(ctx context.Context) (*session, error) {
	repo, closeFn, err := openDrafts(cfg)
	if err != nil {
		return nil, err
	}

	active, err := repo.GetActive(ctx)
	if err != nil {
		closeFn()
		if errors.IsNotFound(err) {
			return nil, errors.FailedPrecondition("no active draft, run 'charbuilder draft new' first")
		}
		return nil, err
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		closeFn()
		return nil, err
	}
	ctrl, err := a.controller(active.Draft)
	if err != nil {
		closeFn()
		return nil, err
	}
	ctrl.Subscribe(logNotification)

	return &session{ctrl: ctrl, repo: repo, close: closeFn}, nil
}

// save stores the controller's draft as the active draft
func (s *session) save(ctx context.Context) error {
	cur, err := s.ctrl.Current(ctx)
	if err != nil {
		return err
	}
	_, err = s.repo.Update(ctx, characterdraft.UpdateInput{Draft: cur.Draft})
	return err
}

func runDraftNew(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	repo, closeFn, err := openDrafts(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	ctrl, err := a.controller(nil)
	if err != nil {
		return err
	}
	if err := applyAssignments(ctx, ctrl, draftSets); err != nil {
		return err
	}

	cur, err := ctrl.Current(ctx)
	if err != nil {
		return err
	}
	out, err := repo.Create(ctx, characterdraft.CreateInput{Draft: cur.Draft})
	if err != nil {
		return err
	}

	if out.Replaced != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "started %s (replaced %s)\n", cur.Draft.ID, out.Replaced)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "started %s\n", cur.Draft.ID)
	return nil
}

func runDraftSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	field, ok := character.ParseField(strings.ToLower(args[0]))
	if !ok {
		return errors.InvalidArgumentf("unknown field %q", args[0]).
			WithMeta("fields", character.Fields())
	}
	value, err := builder.ParseValue(field, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}

	out, err := s.ctrl.Set(ctx, &builder.SetInput{Field: field, Value: value})
	if err != nil {
		return err
	}
	if err := s.save(ctx); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if value == nil {
		fmt.Fprintf(w, "%s cleared\n", field)
	} else {
		fmt.Fprintf(w, "%s = %s\n", field, builder.FormatValue(out.Draft, field))
	}
	for _, f := range out.Cleared {
		fmt.Fprintf(w, "  %s no longer fits and was cleared\n", f)
	}
	return nil
}

func runDraftUnlock(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	for _, arg := range args {
		field, ok := character.ParseField(strings.ToLower(arg))
		if !ok {
			return errors.InvalidArgumentf("unknown field %q", arg)
		}
		if err := s.ctrl.Unlock(ctx, field); err != nil {
			return err
		}
	}
	return s.save(ctx)
}

func runDraftClear(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.ctrl.Clear(ctx); err != nil {
		return err
	}
	return s.save(ctx)
}

func runDraftRandomize(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	input := &builder.RandomizeInput{}
	if cmd.Flags().Changed("seed") {
		input.Seed = &draftSeed
	}
	out, err := s.ctrl.Randomize(ctx, input)
	if err != nil {
		return err
	}
	if err := s.save(ctx); err != nil {
		return err
	}
	return writeSummary(cmd.OutOrStdout(), out.Draft, out.Snapshot)
}

func runDraftShow(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	cur, err := s.ctrl.Current(ctx)
	if err != nil {
		return err
	}
	return writeSummary(cmd.OutOrStdout(), cur.Draft, cur.Snapshot)
}

func runDraftExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	return writeOutput(ctx, cmd.OutOrStdout(), s.ctrl, draftFormat, draftOut)
}

func runDraftOptions(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	out, err := s.ctrl.Options(ctx, character.Field(strings.ToLower(args[0])))
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if !out.Constrained {
		fmt.Fprintf(w, "%s is free text\n", out.Field)
		return nil
	}
	if out.Limit >= 0 {
		fmt.Fprintf(w, "choose up to %d\n", out.Limit)
	}
	for _, value := range out.Values {
		fmt.Fprintln(w, value)
	}
	return nil
}
