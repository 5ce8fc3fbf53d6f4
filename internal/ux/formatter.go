// Package ux renders command output. Results go to stdout in the chosen
// format; everything else (logs, prompts) stays off stdout.
package ux

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Formatter writes a command result to its output writer.
type Formatter interface {
	Format(data any) error
}

// Options configures a formatter.
type Options struct {
	// Writer defaults to os.Stdout.
	Writer io.Writer
	// NoColor disables styling in text output.
	NoColor bool
}

// NewFormatter creates a formatter for "text", "json", or "yaml".
func NewFormatter(format string, opts *Options) (Formatter, error) {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	switch format {
	case "json":
		return &jsonFormatter{opts: opts}, nil
	case "yaml":
		return &yamlFormatter{opts: opts}, nil
	case "text", "":
		return &textFormatter{opts: opts}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s (supported: text, json, yaml)", format)
	}
}

type jsonFormatter struct {
	opts *Options
}

func (f *jsonFormatter) Format(data any) error {
	encoder := json.NewEncoder(f.opts.Writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

type yamlFormatter struct {
	opts *Options
}

func (f *yamlFormatter) Format(data any) error {
	encoder := yaml.NewEncoder(f.opts.Writer)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(data)
}

type textFormatter struct {
	opts *Options
}

// Format renders strings and Stringers; structured data picks one of the
// renderers in render.go before reaching here.
func (f *textFormatter) Format(data any) error {
	switch v := data.(type) {
	case string:
		_, err := fmt.Fprintln(f.opts.Writer, v)
		return err
	case fmt.Stringer:
		_, err := fmt.Fprintln(f.opts.Writer, v.String())
		return err
	default:
		return fmt.Errorf("text formatter requires a string or fmt.Stringer")
	}
}

var (
	_ Formatter = (*jsonFormatter)(nil)
	_ Formatter = (*yamlFormatter)(nil)
	_ Formatter = (*textFormatter)(nil)
)
