package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	advpersistence "github.com/scoutsync/scoutsync/modules/advancement/infrastructure/persistence"
	advscoutbook "github.com/scoutsync/scoutsync/modules/advancement/infrastructure/scoutbook"
	advservices "github.com/scoutsync/scoutsync/modules/advancement/services"
	"github.com/scoutsync/scoutsync/modules/roster/domain/entities/unit"
	"github.com/scoutsync/scoutsync/modules/roster/infrastructure/persistence"
	"github.com/scoutsync/scoutsync/modules/roster/infrastructure/scoutbook"
	"github.com/scoutsync/scoutsync/modules/roster/services"
)

// resolveUnit turns the export's unit metadata, or the --unit override,
// into a persisted unit row. Creation here is scaffolding, not staged
// member data: staging itself never writes.
func resolveUnit(ctx context.Context, meta unit.Metadata, designation string) (unit.Unit, error) {
	if designation != "" {
		t, number, suffix := unit.ParseDesignation(designation)
		if t == unit.TypeUnknown || number == "" {
			return unit.Unit{}, withCode(exitUsage, fmt.Errorf("invalid --unit %q (expected e.g. \"Troop 123 B\")", designation))
		}
		meta = unit.Metadata{Type: t, Number: number, Suffix: suffix}
	}
	if meta.Type == unit.TypeUnknown || meta.Number == "" {
		return unit.Unit{}, withCode(exitUsage, fmt.Errorf("export carries no unit designation; pass --unit"))
	}

	u, err := persistence.NewUnitRepository().GetOrCreate(ctx, meta)
	if err != nil {
		return unit.Unit{}, withCode(exitDB, fmt.Errorf("resolve unit: %w", err))
	}
	return u, nil
}

func newStageCmd() *cobra.Command {
	var (
		file        string
		kind        string
		designation string
	)

	cmd := &cobra.Command{
		Use:   "stage",
		Short: "Diff an export against persisted state and print the staged change-set",
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, kind, err := readExport(file, kind)
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
				return stageRoster(ctx, lines, designation)
			case kindAdvancement:
				return stageAdvancement(ctx, lines, designation)
			default:
				return withCode(exitUsage, fmt.Errorf("unsupported --kind %q", kind))
			}
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Export file (required)")
	cmd.Flags().StringVar(&kind, "kind", kindAuto, "Export kind: roster, advancement or auto")
	cmd.Flags().StringVar(&designation, "unit", "", `Unit designation, e.g. "Troop 123 B" (required for advancement exports)`)
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func stageRoster(ctx context.Context, lines []string, designation string) error {
	res, err := scoutbook.ParseRoster(lines)
	if err != nil {
		return withCode(exitValidation, err)
	}

	u, err := resolveUnit(ctx, res.Unit, designation)
	if err != nil {
		return err
	}

	staged, err := services.NewRosterStagingService(persistence.NewMemberRepository()).
		Stage(ctx, u.ID, res)
	if err != nil {
		return withCode(exitDB, fmt.Errorf("stage roster: %w", err))
	}
	return writeJSONLine(map[string]any{
		"kind":        kindRoster,
		"unit":        unitLabel(u.Metadata),
		"summary":     staged.Summary,
		"adults":      staged.Adults,
		"scouts":      staged.Scouts,
		"parseErrors": errorStrings(res.Errors),
	})
}

func stageAdvancement(ctx context.Context, lines []string, designation string) error {
	res, err := advscoutbook.ParseAdvancement(lines)
	if err != nil {
		return withCode(exitValidation, err)
	}

	u, err := resolveUnit(ctx, unit.Metadata{}, designation)
	if err != nil {
		return err
	}

	svc := advservices.NewStagingService(
		persistence.NewMemberRepository(),
		advpersistence.NewAdvancementRepository(),
		advpersistence.NewCatalogRepository(),
	)
	staged, err := svc.Stage(ctx, u.ID, res)
	if err != nil {
		return withCode(exitDB, fmt.Errorf("stage advancement: %w", err))
	}
	return writeJSONLine(map[string]any{
		"kind":        kindAdvancement,
		"unit":        unitLabel(u.Metadata),
		"counts":      staged.Counts,
		"outOfScope":  staged.OutOfScope,
		"warnings":    staged.Warnings,
		"scouts":      staged.Scouts,
		"parseErrors": errorStrings(res.Errors),
	})
}

func unitLabel(meta unit.Metadata) string {
	t := string(meta.Type)
	if t != "" {
		t = strings.ToUpper(t[:1]) + t[1:]
	}
	parts := []string{t, meta.Number}
	if meta.Suffix != "" {
		parts = append(parts, meta.Suffix)
	}
	return strings.Join(parts, " ")
}
