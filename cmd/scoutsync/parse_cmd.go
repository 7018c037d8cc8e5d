package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	advscoutbook "github.com/scoutsync/scoutsync/modules/advancement/infrastructure/scoutbook"
	"github.com/scoutsync/scoutsync/modules/roster/infrastructure/scoutbook"
	"github.com/scoutsync/scoutsync/pkg/configuration"
	"github.com/scoutsync/scoutsync/pkg/tabular"
)

const (
	kindAuto        = "auto"
	kindRoster      = "roster"
	kindAdvancement = "advancement"
)

// detectKind looks for the section markers of the two supported export
// shapes. Roster wins when both somehow appear.
func detectKind(lines []string) string {
	advancement := false
	for _, line := range lines {
		if strings.Contains(line, "ADULT MEMBERS") || strings.Contains(line, "YOUTH MEMBERS") {
			return kindRoster
		}
		if strings.Contains(strings.ToLower(line), "advancement type") {
			advancement = true
		}
	}
	if advancement {
		return kindAdvancement
	}
	return ""
}

func readExport(file, kind string) ([]string, string, error) {
	conf := configuration.Use()
	lines, err := tabular.ReadFile(file, conf.Import.MaxFileSize)
	if err != nil {
		return nil, "", withCode(exitValidation, fmt.Errorf("read %s: %w", file, err))
	}
	if kind == kindAuto {
		kind = detectKind(lines)
	}
	if kind == "" {
		return nil, "", withCode(exitValidation, fmt.Errorf("%s is not a recognizable roster or advancement export", file))
	}
	return lines, kind, nil
}

func newParseCmd() *cobra.Command {
	var (
		file string
		kind string
	)

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse a Scoutbook export and report typed records plus per-line errors",
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, kind, err := readExport(file, kind)
			if err != nil {
				return err
			}

			switch kind {
			case kindRoster:
				res, err := scoutbook.ParseRoster(lines)
				if err != nil {
					return withCode(exitValidation, err)
				}
				return writeJSONLine(map[string]any{
					"kind":   kindRoster,
					"unit":   res.Unit,
					"adults": res.Adults,
					"scouts": res.Scouts,
					"errors": errorStrings(res.Errors),
				})
			case kindAdvancement:
				res, err := advscoutbook.ParseAdvancement(lines)
				if err != nil {
					return withCode(exitValidation, err)
				}
				return writeJSONLine(map[string]any{
					"kind":       kindAdvancement,
					"scouts":     res.Scouts,
					"outOfScope": res.OutOfScope,
					"errors":     errorStrings(res.Errors),
				})
			default:
				return withCode(exitUsage, fmt.Errorf("unsupported --kind %q (expected roster|advancement|auto)", kind))
			}
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Export file, .csv/.txt or .xlsx (required)")
	cmd.Flags().StringVar(&kind, "kind", kindAuto, "Export kind: roster, advancement or auto")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func errorStrings(errs []tabular.RowError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Error())
	}
	return out
}
