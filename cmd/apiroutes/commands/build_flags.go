package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/apiroutes/internal/app"
)

func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("mode", "m", "", "Bundling mode: development or production (default from config)")
	cmd.Flags().IntP("port", "p", 0, "Dev server port (default from config)")
	cmd.Flags().String("app-dir", "", "Directory containing the API routes (default from config)")
	cmd.Flags().Bool("throw", false, "Fail when any route fails to bundle")
}

func addOutFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("out", "o", "", "Directory the routes are exported to (default from config)")
}

// buildOptions collects the overrides shared by the build commands.
func buildOptions(cmd *cobra.Command) app.BuildOptions {
	configPath, _ := cmd.Flags().GetString("config")
	mode, _ := cmd.Flags().GetString("mode")
	port, _ := cmd.Flags().GetInt("port")
	appDir, _ := cmd.Flags().GetString("app-dir")
	shouldThrow, _ := cmd.Flags().GetBool("throw")
	outDir, _ := cmd.Flags().GetString("out")

	return app.BuildOptions{
		ConfigPath:  configPath,
		Mode:        mode,
		Port:        port,
		AppDir:      appDir,
		OutDir:      outDir,
		ShouldThrow: shouldThrow,
	}
}
