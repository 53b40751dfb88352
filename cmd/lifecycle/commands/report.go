// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bartekus/lifecycle/cmd/lifecycle/internal/clierr"
	"github.com/bartekus/lifecycle/internal/config"
	"github.com/bartekus/lifecycle/internal/emit"
	"github.com/bartekus/lifecycle/internal/lifecycle"
)

func newReportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a markdown report for one pipeline run",
		Long: `Generate a markdown summary of a skill-lifecycle pipeline run.

Metrics come from flags, from a YAML metrics file (--metrics-file), or both;
flags given on the command line override values from the file.
The report is printed to stdout unless --output names a file.`,
		Example: `  lifecycle report --run-id lifecycle-20260212-143000 \
    --audit-merges 2 --audit-retires 1 --optimized 3 --unchanged 5 --changes 7 \
    --published 4 --repos-created 1 --readmes 4 --logos 2 \
    --total-skills 30 --total-edges 45 \
    --skipped-phases audit,publish \
    --errors "optimize:timeout on skill-foo,publish:git auth failed" \
    -o ~/Downloads/lifecycle-report-20260212.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Config{}
			if path, _ := cmd.Flags().GetString("metrics-file"); path != "" {
				loaded, err := config.Load(path)
				if err != nil {
					return clierr.Usage("report", err)
				}
				cfg = loaded
			}

			values, err := gatherReportFlags(cmd)
			if err != nil {
				return clierr.Usage("report", err)
			}
			config.ApplyFlags(&cfg, values)

			if !cfg.RunIDSet {
				return clierr.New(clierr.CodeUsage, "report: --run-id is required")
			}

			report := lifecycle.BuildReport(cfg.Params, a.now())
			a.logger.Debug("report built",
				zap.String("run_id", cfg.Params.RunID),
				zap.Int("lines", len(report.Lines)))

			render, err := cmd.Flags().GetBool("render")
			if err != nil {
				return clierr.Usage("report", err)
			}
			emitter := emit.New(cmd.OutOrStdout(), a.logger, emit.WithRender(render))
			if _, err := emitter.Emit(cmd.Context(), report.String(), cfg.Output); err != nil {
				return clierr.Failure("report", err)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.String("run-id", "", "unique run identifier (required unless set in --metrics-file)")

	f.Int("audit-merges", 0, "skills merged in audit")
	f.Int("audit-splits", 0, "skills split in audit")
	f.Int("audit-retires", 0, "skills retired in audit")

	f.Int("optimized", 0, "skills optimized")
	f.Int("unchanged", 0, "skills reviewed but unchanged")
	f.Int("changes", 0, "total changes applied")

	f.Int("published", 0, "skills published to GitHub")
	f.Int("repos-created", 0, "new repos created")
	f.Int("readmes", 0, "READMEs generated")
	f.Int("logos", 0, "logos generated")

	f.Int("total-skills", 0, "total skills in catalog")
	f.Int("total-edges", 0, "total relationship edges")

	f.String("skipped-phases", "", "comma-separated phases skipped")
	f.String("errors", "", "phase:message pairs, comma-separated")

	f.StringP("output", "o", "", "output file path (default: stdout)")
	f.String("metrics-file", "", "YAML file with run metrics; flags override its values")
	f.Bool("render", false, "render markdown for the terminal when printing to stdout")

	return cmd
}

// gatherReportFlags collects the report flags that were set explicitly.
func gatherReportFlags(cmd *cobra.Command) (config.FlagValues, error) {
	flags := cmd.Flags()
	var values config.FlagValues

	strs := map[string]*config.StringFlag{
		"run-id":         &values.RunID,
		"skipped-phases": &values.SkippedPhases,
		"errors":         &values.Errors,
		"output":         &values.Output,
	}
	for name, dst := range strs {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetString(name)
		if err != nil {
			return values, fmt.Errorf("parse --%s: %w", name, err)
		}
		*dst = config.StringFlag{Value: v, Set: true}
	}

	ints := map[string]*config.IntFlag{
		"audit-merges":  &values.AuditMerges,
		"audit-splits":  &values.AuditSplits,
		"audit-retires": &values.AuditRetires,
		"optimized":     &values.Optimized,
		"unchanged":     &values.Unchanged,
		"changes":       &values.Changes,
		"published":     &values.Published,
		"repos-created": &values.ReposCreated,
		"readmes":       &values.Readmes,
		"logos":         &values.Logos,
		"total-skills":  &values.TotalSkills,
		"total-edges":   &values.TotalEdges,
	}
	for name, dst := range ints {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetInt(name)
		if err != nil {
			return values, fmt.Errorf("parse --%s: %w", name, err)
		}
		*dst = config.IntFlag{Value: v, Set: true}
	}

	return values, nil
}
