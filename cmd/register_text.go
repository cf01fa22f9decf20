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

	"github.com/yshymko/peredai/internal/app"
)

var (
	textID     string
	textTitle  string
	textAuthor string
	textFile   string
	textSource string
	textTarget string
	textPerDay int
)

var registerTextCmd = &cobra.Command{
	Use:   "register-text",
	Short: "Register a source text for translation",
	Long: `Register a source text file. The text is segmented into sentences
and stored; assign it to users with "peredai assign".

The file path is resolved relative to the configured data directory
unless absolute. When --id is omitted an id is derived from the title.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, log, err := buildApp()
		if err != nil {
			return err
		}
		defer a.Close()
		defer log.Sync()

		text, err := a.RegisterText(context.Background(), app.RegisterTextParams{
			ID:              textID,
			Title:           textTitle,
			Author:          textAuthor,
			SourceLang:      textSource,
			TargetLang:      textTarget,
			FilePath:        a.ResolveSourcePath(textFile),
			SentencesPerDay: textPerDay,
		})
		if err != nil {
			return fmt.Errorf("failed to register text: %w", err)
		}

		fmt.Printf("Registered %q as %s\n", text.Title, text.ID)
		fmt.Printf("Sentences: %d, days at %d/day: %d\n",
			len(text.Sentences), text.SentencesPerDay, text.TotalDays())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerTextCmd)

	registerTextCmd.Flags().StringVar(&textID, "id", "", "Text id (derived from title if empty)")
	registerTextCmd.Flags().StringVar(&textTitle, "title", "", "Text title (required)")
	registerTextCmd.Flags().StringVar(&textAuthor, "author", "", "Text author")
	registerTextCmd.Flags().StringVarP(&textFile, "file", "f", "", "Path to the source text file (required)")
	registerTextCmd.Flags().StringVarP(&textSource, "source", "s", "en", "Source language code")
	registerTextCmd.Flags().StringVarP(&textTarget, "target", "t", "", "Target language code (required)")
	registerTextCmd.Flags().IntVar(&textPerDay, "per-day", 0, "Sentences per day (configured default if 0)")

	registerTextCmd.MarkFlagRequired("title")
	registerTextCmd.MarkFlagRequired("file")
	registerTextCmd.MarkFlagRequired("target")
}
