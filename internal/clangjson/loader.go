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

// Package clangjson loads clang's JSON AST dump into the [cxx] syntax model.
//
// A dump is produced with
//
//	clang++ -Xclang -ast-dump=json -fsyntax-only file.cc > file.cc.json
//
// Source files referenced by the dump are read to resolve line information
// and source text. Relative file names are resolved against [Loader.Dir].
package clangjson

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"go/token"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/trace"
	"strings"

	"fillmore-labs.com/earlyexit/internal/cxx"
)

// ErrNoTranslationUnit is returned when a dump does not contain a translation unit.
var ErrNoTranslationUnit = errors.New("no translation unit")

// Loader loads JSON AST dumps. The zero value is ready to use.
type Loader struct {
	// Fset receives the source files of all loaded translation units.
	Fset *token.FileSet

	// Dir is the directory relative file names are resolved against.
	// When empty, [Loader.LoadFile] uses the directory of the dump.
	Dir string

	// MainFile overrides the detected main file name.
	MainFile string

	// ReadFile reads source files, defaults to [os.ReadFile].
	ReadFile func(name string) ([]byte, error)

	sources map[string]*cxx.Source
}

// LoadFile loads the JSON AST dump stored in the named file.
func (l *Loader) LoadFile(ctx context.Context, name string) (*cxx.TranslationUnit, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dir := l.Dir
	if dir == "" {
		dir = filepath.Dir(name)
	}

	u, err := l.load(ctx, f, dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return u, nil
}

// Load reads a JSON AST dump from r.
func (l *Loader) Load(ctx context.Context, r io.Reader) (*cxx.TranslationUnit, error) {
	return l.load(ctx, r, l.Dir)
}

func (l *Loader) load(ctx context.Context, r io.Reader, dir string) (*cxx.TranslationUnit, error) {
	defer trace.StartRegion(ctx, "LoadAST").End()

	var root jsonNode
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("can't decode AST dump: %w", err)
	}

	if root.Kind != "TranslationUnitDecl" {
		return nil, fmt.Errorf("%w: root node is %q", ErrNoTranslationUnit, root.Kind)
	}

	if l.Fset == nil {
		l.Fset = token.NewFileSet()
	}

	var res resolver
	res.node(&root)

	main := l.MainFile
	if main == "" {
		main = res.main
	}

	if main == "" {
		return nil, fmt.Errorf("%w: no declarations in main file", ErrNoTranslationUnit)
	}

	files := make(map[string]*cxx.Source, len(res.order))
	sources := make([]*cxx.Source, 0, len(res.order))

	for _, name := range res.order {
		s := l.source(ctx, resolve(dir, name), res.size[name])
		files[name] = s
		sources = append(sources, s)
	}

	b := builder{files: files}
	tree := b.node(&root)

	u := cxx.NewTranslationUnit(resolve(dir, main), l.Fset, tree, sources...)
	resolveRefs(u)

	slog.DebugContext(ctx, "Loaded translation unit",
		slog.String("unit", u.Name),
		slog.Int("files", len(sources)),
		slog.Int("nodes", b.nodes))

	return u, nil
}

// source returns the file at path, reading its content once per loader.
func (l *Loader) source(ctx context.Context, path string, size int) *cxx.Source {
	if s, ok := l.sources[path]; ok && s.File.Size() >= size {
		return s
	}

	var content []byte

	if !strings.HasPrefix(path, "<") {
		readFile := l.ReadFile
		if readFile == nil {
			readFile = os.ReadFile
		}

		var err error
		if content, err = readFile(path); err != nil {
			slog.DebugContext(ctx, "Can't read source file", slog.String("file", path), slog.Any("error", err))

			content = nil
		}
	}

	f := l.Fset.AddFile(path, -1, max(size, len(content)))
	if content != nil {
		f.SetLinesForContent(content)
	}

	s := &cxx.Source{File: f, Content: content}

	if content != nil {
		if l.sources == nil {
			l.sources = make(map[string]*cxx.Source)
		}

		l.sources[path] = s
	}

	return s
}

func resolve(dir, name string) string {
	if strings.HasPrefix(name, "<") || filepath.IsAbs(name) || dir == "" {
		return name
	}

	return filepath.Join(dir, name)
}

// resolveRefs completes member references with the referenced declaration's class and type.
func resolveRefs(u *cxx.TranslationUnit) {
	for n := range u.Root.Preorder() {
		if n.Ref == nil || n.Kind != cxx.MemberExpr {
			continue
		}

		if d := u.Decl(n.Ref.ID); d != nil {
			n.Ref.Class, n.Ref.Type, n.Ref.Desugared = d.Class, d.Type, d.Desugared
		}
	}
}
