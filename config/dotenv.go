// Copyright 2025 Sasi Veeramachaneni
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from .env files.
// Variables already set in the environment are never overwritten.
//
// Search order:
//  1. Explicitly provided paths (if any)
//  2. .env in the current working directory
//  3. .env in the user's home directory
func LoadDotEnv(paths ...string) error {
	if len(paths) > 0 {
		for _, path := range paths {
			if err := loadIfExists(path); err != nil {
				return fmt.Errorf("failed to load env file %s: %w", path, err)
			}
		}
		return nil
	}

	if err := loadIfExists(".env"); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	if home, err := os.UserHomeDir(); err == nil {
		if err := loadIfExists(filepath.Join(home, ".env")); err != nil {
			return fmt.Errorf("failed to load ~/.env: %w", err)
		}
	}

	return nil
}

func loadIfExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	slog.Debug("Loading environment file", "path", path)
	return godotenv.Load(path)
}
