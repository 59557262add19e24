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

package session

import (
	"database/sql"

	"github.com/SasiVeeramachaneni/travelagent-a2a/config"
)

// NewServiceFromConfig creates a session Service for the configured
// storage backend. A nil db (in-memory backend) yields the default
// in-memory service; SQL backends share the given connection.
func NewServiceFromConfig(cfg *config.Config, db *sql.DB) (Service, error) {
	if cfg.Storage.IsInMemory() {
		return InMemoryService(), nil
	}
	return NewSQLService(db, cfg.Storage.Backend)
}
