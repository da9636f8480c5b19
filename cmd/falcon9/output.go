package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

type format string

const (
	formatJSON format = "json"
	formatText format = "text"
)

func parseFormat(s string) (format, error) {
	switch f := format(strings.ToLower(strings.TrimSpace(s))); f {
	case formatJSON, formatText:
		return f, nil
	case "":
		return formatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want json|text)", s)
	}
}

// row is one "label: value" line of text output.
type row struct {
	label string
	value string
}

// write renders v as indented JSON, or rows as aligned text.
func write(w io.Writer, f format, v any, rows []row) error {
	if f == formatJSON {
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}
	width := 0
	for _, r := range rows {
		if len(r.label) > width {
			width = len(r.label)
		}
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%-*s  %s\n", width+1, r.label+":", r.value); err != nil {
			return err
		}
	}
	return nil
}
