package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/librogame/passomorto/internal/compiler"
)

var (
	compileStoryDir string
	compileOutput   string
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile markdown chapters into the game data artifact",
	RunE: func(cmd *cobra.Command, args []string) error {
		chapters, err := compiler.CompileDir(cmd.Context(), compileStoryDir)
		if err != nil {
			return err
		}

		if err := compiler.WriteArtifact(compileOutput, chapters); err != nil {
			return err
		}

		log.Printf("compiled %d chapters from %s into %s", len(chapters), compileStoryDir, compileOutput)
		return nil
	},
}

func init() {
	compileCmd.Flags().StringVarP(&compileStoryDir, "story", "s", "story", "directory of markdown chapter files")
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "gamedata.json", "output artifact path")
}
