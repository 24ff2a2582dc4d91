// Copyright 2025 walteh LLC
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

package log

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/rs/zerolog"
	"github.com/walteh/filemgr/pkg/status"
	"github.com/walteh/filemgr/pkg/walk"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent path entries
	nameWidth   = 35 // Base width for the path
	actionWidth = 12 // Width for the action label
)

// 🎯 Logger renders results on the console and keeps a zerolog logger for
// the engines
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	errs    io.Writer
	quiet   bool
	mu      sync.Mutex
}

// 🏭 New creates a logger printing results to console and failures to errs.
// Structured log lines go to errs as well, at level.
func New(console, errs io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: errs, NoColor: color.NoColor}).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		errs:    errs,
	}
}

// 🤫 SetQuiet stops Result from listing every affected path
func (l *Logger) SetQuiet(quiet bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.quiet = quiet
}

// Zerolog returns the structured logger engines write to
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.zlog
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger, and its zerolog logger, to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	ctx = l.zlog.WithContext(ctx)
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatPath formats one affected path for display
func (l *Logger) formatPath(action, path string) string {
	var symbol rune
	var symbolColor color.Attribute
	switch action {
	case "delete":
		symbol = '✗'
		symbolColor = color.FgRed
	case "move":
		symbol = '⟳'
		symbolColor = color.FgBlue
	case "create", "copy", "compress", "decompress":
		symbol = '✓'
		symbolColor = color.FgGreen
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	return fmt.Sprintf("%s%s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, path),
		color.New(color.Faint).Sprint(fmt.Sprintf("%-*s", actionWidth, action)))
}

// 📋 Result prints a finished result: payload lines first, then affected
// paths, then every error and the summary
func (l *Logger) Result(ctx context.Context, res status.Result) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, line := range res.Output {
		fmt.Fprintln(l.console, line)
	}

	if !l.quiet {
		for _, path := range res.Affected {
			fmt.Fprintln(l.console, l.formatPath(res.Action, path))
		}
	}

	for _, err := range res.Errors {
		fmt.Fprintf(l.errs, "❌ %s\n", color.New(color.FgRed).Sprint(status.FormatError(err)))
	}

	if res.Succeeded {
		fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(res.Message))
	} else {
		fmt.Fprintf(l.errs, "⚠️  %s\n", color.New(color.FgYellow).Sprint(res.Message))
	}

	l.zlog.Debug().
		Str("action", res.Action).
		Bool("succeeded", res.Succeeded).
		Int("affected", len(res.Affected)).
		Int("output", len(res.Output)).
		Int("errors", len(res.Errors)).
		Str("kind", res.Kind().String()).
		Msg("operation finished")
}

// 🌳 Tree draws entries, as returned by walk.Collect, below root
func (l *Logger) Tree(root string, entries []walk.Entry) error {
	list := make(pterm.LeveledList, 0, len(entries))
	for _, e := range entries {
		name := filepath.Base(e.Path)
		if e.IsDir() {
			name += "/"
		}
		list = append(list, pterm.LeveledListItem{Level: e.Depth - 1, Text: name})
	}

	node := putils.TreeFromLeveledList(list)
	node.Text = root

	out, err := pterm.DefaultTree.WithRoot(node).Srender()
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(l.console, out)
	return nil
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("filemgr")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}
