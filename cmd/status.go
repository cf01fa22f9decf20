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
	"fmt"

	"github.com/spf13/cobra"
)

var statusText string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show translation progress for a text",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, log, err := buildApp()
		if err != nil {
			return err
		}
		defer a.Close()
		defer log.Sync()

		status, err := a.Status(statusText)
		if err != nil {
			return fmt.Errorf("failed to compute status: %w", err)
		}

		fmt.Printf("%s\n", status.Title)
		fmt.Printf("  translated: %d/%d (%.1f%%)\n",
			status.TranslatedCount, status.TotalSentences, status.CompletionPercentage)
		fmt.Printf("  remaining:  %d\n", status.RemainingCount)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVarP(&statusText, "text", "x", "", "Text id (required)")

	statusCmd.MarkFlagRequired("text")
}
