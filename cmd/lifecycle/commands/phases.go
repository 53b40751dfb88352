// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bartekus/lifecycle/internal/lifecycle"
	"github.com/bartekus/lifecycle/internal/projection"
)

func newPhasesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "phases",
		Short: "List pipeline phases with their sub-skills and retry commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, len(lifecycle.Phases()))
			for _, p := range lifecycle.Phases() {
				retry, _ := p.RetryCommand()
				rows = append(rows, []string{p.String(), p.SubSkill(), retry})
			}
			table := projection.Table([]string{"Phase", "Sub-Skill", "Retry Command"}, rows)
			_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(table, "\n"))
			return err
		},
	}
}
