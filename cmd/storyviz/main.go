package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	var configPath string
	root := &cobra.Command{
		Use:           "storyviz",
		Short:         "Turn a children's story PDF into a summary and illustrated scenes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("STORYVIZ_CONFIG"), "path to a YAML config file")

	root.AddCommand(runCmd(&configPath))
	root.AddCommand(serveCmd(&configPath))
	root.AddCommand(stylesCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
