package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bazabarbershop/baza/backend/internal/model/knowledge"
)

var faqFile string

// faqCmd prints the knowledge table after normalization
var faqCmd = &cobra.Command{
	Use:   "faq",
	Short: "Print the knowledge table",
	Long: `Load and validate the knowledge table, then print it as YAML.

Without --file the KNOWLEDGE_FILE variable is used, falling back to the
built-in table.`,
	RunE: runFAQ,
}

func init() {
	faqCmd.Flags().StringVar(&faqFile, "file", "", "Knowledge file to validate instead of KNOWLEDGE_FILE")
}

func runFAQ(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	path := cfg.Chat.KnowledgeFile
	if faqFile != "" {
		path = faqFile
	}

	table, err := knowledge.Load(path)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(table.Entries())
}
