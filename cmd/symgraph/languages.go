package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"symgraph/internal/lang"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages and their file extensions",
	Run:   runLanguages,
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}

func runLanguages(cmd *cobra.Command, args []string) {
	registry := lang.DefaultRegistry()

	byLanguage := map[string][]string{}
	for _, ext := range registry.Extensions() {
		if reg, ok := registry.ByExtension(ext); ok {
			byLanguage[reg.Language] = append(byLanguage[reg.Language], ext)
		}
	}

	for _, language := range registry.Languages() {
		fmt.Printf("%-12s %s\n", language, strings.Join(byLanguage[language], " "))
	}
}
