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

	"go.uber.org/zap"

	"github.com/yshymko/peredai/internal/app"
	"github.com/yshymko/peredai/internal/config"
)

// buildApp loads configuration and constructs the wired application. The
// caller owns both returned resources: Close the app and Sync the logger.
func buildApp() (*app.App, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := buildLogger()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	a, err := app.New(cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, nil, err
	}
	return a, log, nil
}

func buildLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
