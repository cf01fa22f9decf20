/*
Copyright © 2026 Yurii Shymko <yurii.shymko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	exportText   string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Assemble and write the translated document",
	Long: `Merge every user's saved translations for a text and write the
assembled document to the output directory. Sentences nobody has
translated yet appear as [UNTRANSLATED: ...] placeholders in txt
output and as [UNTRANSLATED] entries in json output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, log, err := buildApp()
		if err != nil {
			return err
		}
		defer a.Close()
		defer log.Sync()

		path, status, err := a.Export(context.Background(), exportText, exportFormat)
		if err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}

		fmt.Printf("Wrote %s\n", path)
		fmt.Printf("%d/%d sentences translated (%.1f%%)\n",
			status.TranslatedCount, status.TotalSentences, status.CompletionPercentage)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportText, "text", "x", "", "Text id (required)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "txt", "Output format: txt or json")

	exportCmd.MarkFlagRequired("text")
}
