package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fruitsctl",
	Short: "Run and manage the fruits server",
	Long:  `Run the fruits web application and manage its database.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loadDotEnv(".env")
	},
}

// loadDotEnv reads path into the environment without overriding variables
// that are already set. A missing file is ignored.
func loadDotEnv(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load %s: %v\n", path, err)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
