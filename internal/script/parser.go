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
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// ErrInvalidScript is wrapped by every error caused by the script content.
var ErrInvalidScript = errors.New("invalid gesture script")

//go:embed schema.json
var schemaJSON []byte

var schema = gojsonschema.NewBytesLoader(schemaJSON)

// ValidationError lists the schema violations of a script.
type ValidationError struct {
	Errors []Error
}

func (v *ValidationError) Error() string {
	msgs := make([]string, len(v.Errors))
	for i, e := range v.Errors {
		msgs[i] = e.Error()
	}
	return ErrInvalidScript.Error() + ": " + strings.Join(msgs, "; ")
}

func (v *ValidationError) Unwrap() error { return ErrInvalidScript }

// Load reads and parses a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML, validates it against the embedded JSON schema and
// returns the typed script.
func Parse(data []byte) (*Script, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScript, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidScript)
	}
	doc := root.Content[0]

	var generic any
	if err := doc.Decode(&generic); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScript, err)
	}
	res, err := gojsonschema.Validate(schema, gojsonschema.NewGoLoader(generic))
	if err != nil {
		return nil, fmt.Errorf("validate script: %w", err)
	}
	lines := eventLines(doc)
	if !res.Valid() {
		ve := &ValidationError{}
		for _, re := range res.Errors() {
			ve.Errors = append(ve.Errors, Error{
				Line:    lineFor(re.Field(), lines),
				Field:   re.Field(),
				Message: re.Description(),
			})
		}
		return nil, ve
	}

	var s Script
	if err := doc.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScript, err)
	}
	if s.Version == 0 {
		s.Version = 1
	}
	for i := range s.Events {
		if i < len(lines) {
			s.Events[i].Line = lines[i]
		}
	}
	return &s, nil
}

// eventLines returns the source line of every entry of the events sequence.
func eventLines(doc *yaml.Node) []int {
	if doc.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if doc.Content[i].Value != "events" {
			continue
		}
		seq := doc.Content[i+1]
		out := make([]int, len(seq.Content))
		for j, n := range seq.Content {
			out[j] = n.Line
		}
		return out
	}
	return nil
}

// lineFor maps a schema field path such as "events.3.x" to a source line.
func lineFor(field string, lines []int) int {
	parts := strings.Split(field, ".")
	if len(parts) < 2 || parts[0] != "events" {
		return 0
	}
	i, err := strconv.Atoi(parts[1])
	if err != nil || i < 0 || i >= len(lines) {
		return 0
	}
	return lines[i]
}
