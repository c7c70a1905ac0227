package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/gumcodegen/internal/cli/output"
	"github.com/leapstack-labs/gumcodegen/internal/codegen"
)

// BuildInfo identifies the running binary. The values are set at link time.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version and build information",
		Long: `Print the gumcodegen version, the commit and date it was built from,
and the runtime libraries generated code can target.`,
		Example: `  gumcodegen version
  gumcodegen version --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContextWithoutEngine(cmd)
			if err != nil {
				return err
			}

			v := output.VersionOutput{
				Version:   info.Version,
				Commit:    info.Commit,
				BuildDate: info.BuildDate,
				Libraries: []string{string(codegen.LibraryGum), string(codegen.LibraryForms)},
			}

			r := cmdCtx.Renderer
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(v)
			}
			r.Printf("gumcodegen v%s\n", v.Version)
			r.KeyValue("Commit", v.Commit)
			r.KeyValue("Built", v.BuildDate)
			r.KeyValue("Libraries", strings.Join(v.Libraries, ", "))
			return nil
		},
	}
}
