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
	assignUser string
	assignText string
)

var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Assign a text to a user",
	Long: `Give a registered text to a registered user for translation.
Each user can hold a text at most once; the daily cycle starts sending
from the first sentence.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, log, err := buildApp()
		if err != nil {
			return err
		}
		defer a.Close()
		defer log.Sync()

		_, text, err := a.Assign(context.Background(), assignUser, assignText)
		if err != nil {
			return fmt.Errorf("failed to assign text: %w", err)
		}

		fmt.Printf("Assigned %q to %s\n", text.Title, assignUser)
		fmt.Printf("%d sentences over %d days at %d/day\n",
			len(text.Sentences), text.TotalDays(), text.SentencesPerDay)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(assignCmd)

	assignCmd.Flags().StringVarP(&assignUser, "user", "u", "", "User id (required)")
	assignCmd.Flags().StringVarP(&assignText, "text", "x", "", "Text id (required)")

	assignCmd.MarkFlagRequired("user")
	assignCmd.MarkFlagRequired("text")
}
