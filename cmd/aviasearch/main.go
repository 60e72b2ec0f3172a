package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

func main() {
	var root = &cobra.Command{
		Use:          "aviasearch",
		Short:        "Flight search against the Aviasales search API",
		SilenceUsage: true,
	}

	root.AddCommand(searchCMD(), serveCMD())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
