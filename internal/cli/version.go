package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	mirra "github.com/mirra-ai/mirra-go"
	"github.com/mirra-ai/mirra-go/internal/buildconfig"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print CLI and SDK versions",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("mirra %s\nsdk %s\n", buildconfig.String(), mirra.Version)
		},
	}
}
