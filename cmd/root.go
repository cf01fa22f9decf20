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
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "peredai",
	Short: "Daily human-translation workflow engine",
	Long: `A CLI application that paces literary texts out to human translators
in small daily portions over email or SMS, collects translated sentences
from their replies, and assembles the finished translation.

Typical flow:
  peredai register-text --title "..." --file book.txt --source en --target uk
  peredai register-user --name Anna --email anna@example.com
  peredai assign --user anna_1a2b3c4d --text book_5e6f7a8b
  peredai send                 # or: peredai serve
  peredai reply --sender anna@example.com --body "[1] ..."
  peredai export --text book_5e6f7a8b --format txt`,
	Version: version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ./peredai.yaml or $HOME/.peredai/peredai.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}
