package main

import (
	"log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gamebook",
	Short: "Gamebook engine: chapter compiler and Discord bot",
	Long: `gamebook compiles markdown chapters into a JSON data artifact and
serves the compiled adventure as a Discord bot.`,
}

func main() {
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(botCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("command failed: %v", err)
	}
}
