/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"
)

//go:embed script.schema.json
var schemaJSON []byte

var schemaLoader = gojsonschema.NewBytesLoader(schemaJSON)

// Parse validates data against the script schema and decodes it. Schema
// violations are returned as a list alongside an error wrapping
// ErrInvalidScript.
func Parse(data []byte) (Script, []Error, error) {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return Script{}, nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if !result.Valid() {
		errs := make([]Error, 0, len(result.Errors()))
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			errs = append(errs, Error{Field: e.Field(), Message: e.Description()})
			msgs = append(msgs, e.String())
		}
		return Script{}, errs, fmt.Errorf("%w: %s", ErrInvalidScript, strings.Join(msgs, "; "))
	}
	var s Script
	if err := json.Unmarshal(data, &s); err != nil {
		return Script{}, nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	return s, nil, nil
}

// Load reads and parses a script file.
func Load(path string) (Script, []Error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, nil, fmt.Errorf("read script: %w", err)
	}
	s, issues, err := Parse(data)
	if err != nil {
		return Script{}, issues, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil, nil
}
