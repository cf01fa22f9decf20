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
	"github.com/yshymko/peredai/internal/model"
)

var (
	userID     string
	userName   string
	userEmail  string
	userPhone  string
	userMethod string
)

var registerUserCmd = &cobra.Command{
	Use:   "register-user",
	Short: "Register a translator",
	Long: `Register a person who will receive daily portions and send back
translations. At least one contact (--email or --phone) is required.

When --method is omitted it is inferred from the contacts given:
email wins when both are present.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, log, err := buildApp()
		if err != nil {
			return err
		}
		defer a.Close()
		defer log.Sync()

		user, err := a.RegisterUser(context.Background(), app.RegisterUserParams{
			ID:     userID,
			Name:   userName,
			Email:  userEmail,
			Phone:  userPhone,
			Method: model.DeliveryMethod(userMethod),
		})
		if err != nil {
			return fmt.Errorf("failed to register user: %w", err)
		}

		fmt.Printf("Registered %s as %s (delivery: %s)\n", user.Name, user.ID, user.PreferredMethod)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerUserCmd)

	registerUserCmd.Flags().StringVar(&userID, "id", "", "User id (derived from name if empty)")
	registerUserCmd.Flags().StringVar(&userName, "name", "", "User name (required)")
	registerUserCmd.Flags().StringVar(&userEmail, "email", "", "Email address")
	registerUserCmd.Flags().StringVar(&userPhone, "phone", "", "Phone number")
	registerUserCmd.Flags().StringVar(&userMethod, "method", "", "Preferred delivery method: email or sms")

	registerUserCmd.MarkFlagRequired("name")
}
