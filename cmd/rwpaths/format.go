package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/jward/rwpaths"
	"gopkg.in/yaml.v3"
)

var validFormats = []string{"json", "text", "yaml"}

func validateFormat(format string) error {
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q: must be one of %s", format, strings.Join(validFormats, ", "))
}

func outputResult(result CLIResult) error {
	switch flagFormat {
	case "text":
		return outputResultText(os.Stdout, result)
	case "yaml":
		return outputResultYAML(os.Stdout, result)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// outputError writes an error in the selected format and returns it so RunE
// can propagate it to Cobra. In json and yaml modes the error is written to
// stdout as a CLIResult envelope. In text mode it goes to stderr.
func outputError(command string, err error) error {
	errorHandled = true
	if flagFormat == "text" {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return err
	}
	result := CLIResult{
		Command: command,
		Error:   err.Error(),
	}
	if flagFormat == "yaml" {
		_ = outputResultYAML(os.Stdout, result)
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(result)
	return err
}

func outputResultYAML(w io.Writer, result CLIResult) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(result); err != nil {
		return err
	}
	return enc.Close()
}

func outputResultText(w io.Writer, result CLIResult) error {
	switch v := result.Results.(type) {
	case string:
		fmt.Fprintln(w, v)
	case rwpaths.Paths:
		formatPathsText(w, v)
	case []CLIPage:
		formatPagesText(w, v)
	case CLICheckReport:
		formatCheckText(w, v)
	case CLIExport:
		formatExportText(w, v)
	case nil:
	default:
		return fmt.Errorf("unsupported result type for text format: %T", v)
	}
	return nil
}

// formatPathsText formats Paths as aligned key/path columns.
func formatPathsText(w io.Writer, paths rwpaths.Paths) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tPATH")
	for _, e := range paths.Entries() {
		fmt.Fprintf(tw, "%s\t%s\n", e.Key, e.Path)
	}
	tw.Flush()
}

// formatPagesText formats CLIPage results as aligned columns.
func formatPagesText(w io.Writer, pages []CLIPage) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CONST\tPATH\tIMPORT")
	for _, p := range pages {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Const, p.Path, p.ImportStatement)
	}
	tw.Flush()
}

func formatCheckText(w io.Writer, r CLICheckReport) {
	fmt.Fprintf(w, "Pages: %d\n", r.Pages)
	if r.OK() {
		fmt.Fprintln(w, "No problems found.")
		return
	}

	if len(r.MissingDefault) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Missing default export:")
		for _, p := range r.MissingDefault {
			fmt.Fprintf(w, "  %s (%s)\n", p.Const, p.Path)
		}
	}
	if len(r.SyntaxErrors) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Syntax errors:")
		for _, p := range r.SyntaxErrors {
			fmt.Fprintf(w, "  %s (%s)\n", p.Const, p.Path)
		}
	}
	if len(r.Duplicates) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Duplicate identifiers:")
		names := make([]string, 0, len(r.Duplicates))
		for name := range r.Duplicates {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "  %s: %s\n", name, strings.Join(r.Duplicates[name], ", "))
		}
	}
}

func formatExportText(w io.Writer, e CLIExport) {
	state := "unchanged"
	if e.Changed {
		state = "updated"
	}
	fmt.Fprintf(w, "%s: %d pages (%s)\n", e.Database, e.Pages, state)
}
