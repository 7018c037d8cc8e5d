package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	advpersistence "github.com/scoutsync/scoutsync/modules/advancement/infrastructure/persistence"
	advscoutbook "github.com/scoutsync/scoutsync/modules/advancement/infrastructure/scoutbook"
	advservices "github.com/scoutsync/scoutsync/modules/advancement/services"
	"github.com/scoutsync/scoutsync/modules/roster/domain/entities/unit"
	"github.com/scoutsync/scoutsync/modules/roster/infrastructure/persistence"
	"github.com/scoutsync/scoutsync/modules/roster/infrastructure/scoutbook"
	"github.com/scoutsync/scoutsync/modules/roster/services"
	"github.com/scoutsync/scoutsync/pkg/configuration"
)

type importFlags struct {
	file            string
	kind            string
	designation     string
	apply           bool
	createUnmatched bool
}

func newImportCmd() *cobra.Command {
	var opts importFlags

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Apply a staged change-set (dry-run by default, --apply to write)",
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, kind, err := readExport(opts.file, opts.kind)
			if err != nil {
				return err
			}

			ctx, pool, err := openPool(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			switch kind {
			case kindRoster:
				return importRoster(ctx, lines, opts)
			case kindAdvancement:
				return importAdvancement(ctx, lines, opts)
			default:
				return withCode(exitUsage, fmt.Errorf("unsupported --kind %q", kind))
			}
		},
	}

	cmd.Flags().StringVar(&opts.file, "file", "", "Export file (required)")
	cmd.Flags().StringVar(&opts.kind, "kind", kindAuto, "Export kind: roster, advancement or auto")
	cmd.Flags().StringVar(&opts.designation, "unit", "", `Unit designation, e.g. "Troop 123 B"`)
	cmd.Flags().BoolVar(&opts.apply, "apply", false, "Apply changes to DB (default is dry-run)")
	cmd.Flags().BoolVar(&opts.createUnmatched, "create-unmatched", false, "Create records for people with no persisted match")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func importRoster(ctx context.Context, lines []string, opts importFlags) error {
	res, err := scoutbook.ParseRoster(lines)
	if err != nil {
		return withCode(exitValidation, err)
	}

	u, err := resolveUnit(ctx, res.Unit, opts.designation)
	if err != nil {
		return err
	}

	members := persistence.NewMemberRepository()
	staged, err := services.NewRosterStagingService(members).Stage(ctx, u.ID, res)
	if err != nil {
		return withCode(exitDB, fmt.Errorf("stage roster: %w", err))
	}

	if !opts.apply {
		return writeJSONLine(map[string]any{
			"kind":    kindRoster,
			"unit":    unitLabel(u.Metadata),
			"dryRun":  true,
			"summary": staged.Summary,
		})
	}

	importCtx, cancel := context.WithTimeout(ctx, configuration.Use().Import.StoreTimeout)
	defer cancel()

	result, err := services.NewRosterImportService(members, persistence.NewPatrolRepository()).
		Import(importCtx, u.ID, staged, services.RosterImportOptions{CreateUnmatched: opts.createUnmatched})
	if err != nil {
		return withCode(exitDBWrite, fmt.Errorf("import roster: %w", err))
	}
	return writeJSONLine(map[string]any{
		"kind":   kindRoster,
		"unit":   unitLabel(u.Metadata),
		"result": result,
	})
}

func importAdvancement(ctx context.Context, lines []string, opts importFlags) error {
	res, err := advscoutbook.ParseAdvancement(lines)
	if err != nil {
		return withCode(exitValidation, err)
	}

	u, err := resolveUnit(ctx, unit.Metadata{}, opts.designation)
	if err != nil {
		return err
	}

	members := persistence.NewMemberRepository()
	svc := advservices.NewStagingService(
		members,
		advpersistence.NewAdvancementRepository(),
		advpersistence.NewCatalogRepository(),
	)
	staged, err := svc.Stage(ctx, u.ID, res)
	if err != nil {
		return withCode(exitDB, fmt.Errorf("stage advancement: %w", err))
	}

	if !opts.apply {
		return writeJSONLine(map[string]any{
			"kind":     kindAdvancement,
			"unit":     unitLabel(u.Metadata),
			"dryRun":   true,
			"counts":   staged.Counts,
			"warnings": staged.Warnings,
		})
	}

	importCtx, cancel := context.WithTimeout(ctx, configuration.Use().Import.StoreTimeout)
	defer cancel()

	result, err := advservices.NewImportService(members, advpersistence.NewAdvancementRepository()).
		Import(importCtx, u.ID, staged, advservices.ImportOptions{CreateUnmatched: opts.createUnmatched})
	if err != nil {
		return withCode(exitDBWrite, fmt.Errorf("import advancement: %w", err))
	}
	return writeJSONLine(map[string]any{
		"kind":   kindAdvancement,
		"unit":   unitLabel(u.Metadata),
		"result": result,
	})
}
