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
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	replySender  string
	replySubject string
	replyBody    string
)

var replyCmd = &cobra.Command{
	Use:   "reply",
	Short: "Process an inbound translation reply",
	Long: `Feed one reply from a translator into the engine. The sender is
matched against registered contacts (email address or phone number) and
the body is scanned for [N] or N. markers.

The body comes from --body, or from stdin when --body is omitted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		body := replyBody
		if body == "" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read reply body from stdin: %w", err)
			}
			body = string(data)
		}

		a, log, err := buildApp()
		if err != nil {
			return err
		}
		defer a.Close()
		defer log.Sync()

		result, err := a.ProcessReply(context.Background(), replySender, replySubject, body)
		if err != nil {
			return fmt.Errorf("failed to process reply: %w", err)
		}

		if len(result.Saved) == 0 {
			fmt.Println("No translations found in reply")
			return nil
		}
		fmt.Printf("Saved %d translation(s) for %s on %s\n", len(result.Saved), result.UserID, result.TextID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replyCmd)

	replyCmd.Flags().StringVar(&replySender, "sender", "", "Sender email address or phone number (required)")
	replyCmd.Flags().StringVar(&replySubject, "subject", "", "Reply subject line (used to pick the text)")
	replyCmd.Flags().StringVar(&replyBody, "body", "", "Reply body (stdin if empty)")

	replyCmd.MarkFlagRequired("sender")
}
