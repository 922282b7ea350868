package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aricart/proto-srv-generator/internal/pipeline"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate <schema.proto>",
	Short: "Generate a service project from a proto file",
	Long: `Parse the service declarations in the given proto file and write a service
project under the output directory: <service>_handlers.go seeds for you to
edit, generated <service>_service.go wiring and <service>_client.go clients,
and the tree-level go.mod, Makefile, and buf.gen.yaml.

Re-running over an existing tree requires --force; handler seed files are
backed up to a .bak sibling before being overwritten, everything else is
regenerated in place.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, err := cmd.Flags().GetBool("force")
		if err != nil {
			return err
		}
		watch, err := cmd.Flags().GetBool("watch")
		if err != nil {
			return err
		}

		logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
			With().Timestamp().Logger()

		opts := pipeline.Options{
			SchemaPath: args[0],
			OutDir:     viper.GetString("out"),
			Module:     viper.GetString("module"),
			Force:      force,
			Logger:     logger,
		}

		if err := pipeline.Run(opts); err != nil {
			return err
		}

		if watch {
			return watchSchema(cmd.Context(), opts)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("out", "o", "service", "output directory for the generated project")
	generateCmd.Flags().String("module", "", "module path for the generated go.mod (default example.com/<package>)")
	generateCmd.Flags().BoolP("force", "f", false, "regenerate over an existing output tree")
	generateCmd.Flags().Bool("watch", false, "keep running and regenerate when the schema file changes")

	cobra.CheckErr(viper.BindPFlag("out", generateCmd.Flags().Lookup("out")))
	cobra.CheckErr(viper.BindPFlag("module", generateCmd.Flags().Lookup("module")))
}
