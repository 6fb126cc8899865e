// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
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
//
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"gopkg.in/yaml.v3"
)

// Sink receives findings.
type Sink interface {
	Emit(f Finding) error
	// Flush completes the output after the last finding.
	Flush() error
}

// TextSink writes findings in compiler style: "file:line:col: warning: message [check]".
type TextSink struct {
	W io.Writer
}

// Emit implements [Sink].
func (s TextSink) Emit(f Finding) error {
	_, err := fmt.Fprintf(s.W, "%s:%d:%d: %s: %s [%s]\n", f.File, f.Line, f.Column, f.Level, f.Message, f.Check)

	return err
}

// Flush implements [Sink].
func (TextSink) Flush() error { return nil }

// JSONSink writes one JSON object per finding.
type JSONSink struct {
	enc *json.Encoder
}

// NewJSONSink creates a [JSONSink] writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{enc: json.NewEncoder(w)}
}

// Emit implements [Sink].
func (s *JSONSink) Emit(f Finding) error {
	return s.enc.Encode(f)
}

// Flush implements [Sink].
func (*JSONSink) Flush() error { return nil }

// YAMLSink writes findings as a fixes file understood by clang-apply-replacements.
type YAMLSink struct {
	W        io.Writer
	MainFile string

	diagnostics []exportedDiagnostic
}

type exportedFixes struct {
	MainSourceFile string               `yaml:"MainSourceFile"`
	Diagnostics    []exportedDiagnostic `yaml:"Diagnostics"`
}

type exportedDiagnostic struct {
	DiagnosticName    string          `yaml:"DiagnosticName"`
	DiagnosticMessage exportedMessage `yaml:"DiagnosticMessage"`
	Level             string          `yaml:"Level"`
}

type exportedMessage struct {
	Message      string                `yaml:"Message"`
	FilePath     string                `yaml:"FilePath"`
	FileOffset   int                   `yaml:"FileOffset"`
	Replacements []exportedReplacement `yaml:"Replacements"`
}

type exportedReplacement struct {
	FilePath        string `yaml:"FilePath"`
	Offset          int    `yaml:"Offset"`
	Length          int    `yaml:"Length"`
	ReplacementText string `yaml:"ReplacementText"`
}

var levelNames = [...]string{Warning: "Warning", Note: "Remark", Error: "Error"}

// Emit implements [Sink].
func (s *YAMLSink) Emit(f Finding) error {
	replacements := make([]exportedReplacement, 0, len(f.Edits))
	for _, e := range f.Edits {
		replacements = append(replacements, exportedReplacement{
			FilePath: e.File, Offset: e.Offset, Length: e.Length, ReplacementText: e.Text,
		})
	}

	level := "Warning"
	if int(f.Level) < len(levelNames) {
		level = levelNames[f.Level]
	}

	s.diagnostics = append(s.diagnostics, exportedDiagnostic{
		DiagnosticName: f.Check,
		DiagnosticMessage: exportedMessage{
			Message:      f.Message,
			FilePath:     f.File,
			FileOffset:   f.Offset,
			Replacements: replacements,
		},
		Level: level,
	})

	return nil
}

// Flush implements [Sink].
func (s *YAMLSink) Flush() error {
	enc := yaml.NewEncoder(s.W)
	enc.SetIndent(2)

	if err := enc.Encode(exportedFixes{MainSourceFile: s.MainFile, Diagnostics: s.diagnostics}); err != nil {
		return fmt.Errorf("export fixes: %w", err)
	}

	s.diagnostics = nil

	return enc.Close()
}

// Collector keeps findings in memory.
type Collector struct {
	mu       sync.Mutex
	findings []Finding
}

// Emit implements [Sink].
func (c *Collector) Emit(f Finding) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.findings = append(c.findings, f)

	return nil
}

// Flush implements [Sink].
func (*Collector) Flush() error { return nil }

// Findings returns the collected findings in emission order.
func (c *Collector) Findings() []Finding {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]Finding(nil), c.findings...)
}
