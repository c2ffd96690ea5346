package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anyshake/prisma/internal/section"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the NTP server presets",
	Long: `List the NTP server groups that "preset ntpclient <name>" and the
wizard's preset picker can apply.`,
	Args: cobra.NoArgs,
	RunE: runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func runPresets(cmd *cobra.Command, args []string) error {
	rows := make([][]string, 0, len(section.Presets))
	for _, p := range section.Presets {
		hosts := make([]string, len(p.Servers))
		for i, s := range p.Servers {
			hosts[i] = s.Address
		}
		rows = append(rows, []string{p.Name, p.Description, strings.Join(hosts, "\n")})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"PRESET", "DESCRIPTION", "SERVERS"}, rows))
	return nil
}
