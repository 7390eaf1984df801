package cli

import (
	"fmt"

	"github.com/glorpus-work/nugetclean/pkg/bytefmt"
	"github.com/glorpus-work/nugetclean/pkg/cache"
	"github.com/spf13/cobra"
)

func newInfoCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache information",
		Long:  "Display the location and size of the NuGet global packages folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := opts.cfg.ResolveCacheDir()
			if err != nil {
				return err
			}

			info, err := cache.Inspect(root)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Cache Directory: %s\n", info.Directory)
			_, _ = fmt.Fprintf(out, "Total Size: %s\n", bytefmt.Format(info.TotalSize))
			_, _ = fmt.Fprintf(out, "Packages: %d (%d tools)\n", info.Packages, info.ToolPackages)
			_, _ = fmt.Fprintf(out, "Versions: %d\n", info.Versions)
			return nil
		},
	}
}
