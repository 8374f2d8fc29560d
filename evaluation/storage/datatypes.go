// Copyright 2025 Google LLC
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

package storage

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// RunPayload is the hierarchical run record serialized as JSON for a
// database column. It implements driver.Valuer and sql.Scanner so the same
// bytes round-trip across dialects, plus the gorm schema hooks that pick a
// native JSON column type where one exists.
type RunPayload json.RawMessage

// Value implements the driver.Valuer interface.
func (p RunPayload) Value() (driver.Value, error) {
	if len(p) == 0 {
		return nil, nil
	}
	return string(p), nil
}

// Scan implements the sql.Scanner interface.
func (p *RunPayload) Scan(value any) error {
	if value == nil {
		*p = RunPayload("null")
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		if len(v) > 0 {
			bytes = make([]byte, len(v))
			copy(bytes, v)
		}
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal JSON value: %T", value)
	}

	*p = RunPayload(bytes)
	return nil
}

// MarshalJSON emits the raw payload rather than base64-encoded bytes.
func (p RunPayload) MarshalJSON() ([]byte, error) {
	return json.RawMessage(p).MarshalJSON()
}

// UnmarshalJSON stores the raw bytes unchanged.
func (p *RunPayload) UnmarshalJSON(b []byte) error {
	raw := json.RawMessage{}
	err := raw.UnmarshalJSON(b)
	*p = RunPayload(raw)
	return err
}

func (p RunPayload) String() string {
	return string(p)
}

// GormDataType reports the generic column type.
func (RunPayload) GormDataType() string {
	return "text"
}

// GormDBDataType picks the dialect-native JSON column type where one exists.
func (RunPayload) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "LONGTEXT"
	case "postgres":
		return "JSONB"
	case "spanner":
		return "STRING(MAX)"
	}
	return ""
}

func (p RunPayload) GormValue(ctx context.Context, db *gorm.DB) clause.Expr {
	if len(p) == 0 {
		return gorm.Expr("NULL")
	}
	data, _ := p.MarshalJSON()
	return gorm.Expr("?", string(data))
}
