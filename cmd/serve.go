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
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveSchedule string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the daily cycle on a schedule",
	Long: `Run as a daemon that executes the daily delivery cycle on a cron
schedule (default "0 8 * * *", i.e. every morning at 08:00). Stops on
SIGINT or SIGTERM. The schedule from the config file can be overridden
with --schedule.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, log, err := buildApp()
		if err != nil {
			return err
		}
		defer a.Close()
		defer log.Sync()

		schedule := serveSchedule
		if schedule == "" {
			schedule = a.Schedule()
		}

		c := cron.New()
		_, err = c.AddFunc(schedule, func() {
			report, err := a.RunDailyCycle(context.Background(), nil)
			if err != nil {
				log.Error("daily cycle failed", zap.Error(err))
				return
			}
			log.Info("daily cycle finished",
				zap.Int("delivered", report.Delivered()),
				zap.Int("failed", report.Failed()))
		})
		if err != nil {
			return fmt.Errorf("invalid schedule %q: %w", schedule, err)
		}

		c.Start()
		log.Info("scheduler started", zap.String("schedule", schedule))
		fmt.Printf("Running daily cycle on schedule %q, press Ctrl+C to stop\n", schedule)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		ctx := c.Stop()
		<-ctx.Done()
		log.Info("scheduler stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveSchedule, "schedule", "", "Cron schedule (overrides config)")
}
