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

var sendUsers []string

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Run one daily delivery cycle",
	Long: `Deliver the next portion of every active assignment. With --users
only the named users are targeted; otherwise all registered users are.

A failed delivery leaves that assignment's position untouched, so the
same sentences go out on the next run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, log, err := buildApp()
		if err != nil {
			return err
		}
		defer a.Close()
		defer log.Sync()

		report, err := a.RunDailyCycle(context.Background(), sendUsers)
		if err != nil {
			return fmt.Errorf("daily cycle failed: %w", err)
		}

		fmt.Printf("Delivered to %d target(s), %d failed\n", report.Delivered(), report.Failed())
		for _, res := range report.Results {
			switch {
			case res.Err != nil:
				fmt.Printf("  %s/%s: error: %v\n", res.UserID, res.TextID, res.Err)
			case res.Completed:
				fmt.Printf("  %s/%s: already complete\n", res.UserID, res.TextID)
			default:
				fmt.Printf("  %s/%s: sent %d sentence(s)\n", res.UserID, res.TextID, res.Sent)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().StringSliceVar(&sendUsers, "users", nil, "Only send to these user ids (comma-separated)")
}
