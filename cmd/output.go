package cmd

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/s0up4200/dnburn/dnb"
	"github.com/s0up4200/dnburn/urlrecord"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// printer renders command results as text trees or JSON documents
type printer struct {
	w    io.Writer
	json bool
}

func (p *printer) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(p.w, string(data))
	return err
}

// Records prints a list of URL records
func (p *printer) Records(urn string, records []*urlrecord.Record) error {
	if p.json {
		if records == nil {
			records = []*urlrecord.Record{}
		}
		return p.printJSON(records)
	}

	if len(records) == 0 {
		_, err := fmt.Fprintf(p.w, "No URLs found for %s\n", urn)
		return err
	}

	var sb strings.Builder

	sb.WriteString("\nURL")
	if len(records) != 1 {
		sb.WriteString("s")
	}
	fmt.Fprintf(&sb, " of %s (%d):\n\n", urn, len(records))

	for i, r := range records {
		isLast := i == len(records)-1
		writeRecord(&sb, r, isLast)

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	_, err := io.WriteString(p.w, sb.String())
	return err
}

// Record prints a single URL record
func (p *printer) Record(r *urlrecord.Record) error {
	if p.json {
		return p.printJSON(r)
	}

	var sb strings.Builder
	writeRecord(&sb, r, true)
	_, err := io.WriteString(p.w, sb.String())
	return err
}

func writeRecord(sb *strings.Builder, r *urlrecord.Record, isLast bool) {
	prefix := "├"
	indent := "│   "
	if isLast {
		prefix = "╰"
		indent = "    "
	}

	fmt.Fprintf(sb, "%s── %s\n", prefix, r.URL())

	var parts []string
	if priority, ok := r.Priority(); ok {
		parts = append(parts, fmt.Sprintf("Priority: %d", priority))
	}
	if r.Owner() != "" {
		parts = append(parts, fmt.Sprintf("Owner: %s", r.Owner()))
	}
	if len(parts) > 0 {
		fmt.Fprintf(sb, "%s%s\n", indent, strings.Join(parts, " | "))
	}

	var dateParts []string
	if r.Created() != "" {
		dateParts = append(dateParts, fmt.Sprintf("Created: %s", r.Created()))
	}
	if r.LastModified() != "" && r.LastModified() != r.Created() {
		dateParts = append(dateParts, fmt.Sprintf("Modified: %s", r.LastModified()))
	}
	if len(dateParts) > 0 {
		fmt.Fprintf(sb, "%s%s\n", indent, strings.Join(dateParts, " | "))
	}
}

// URN prints the details of a URN
func (p *printer) URN(u *dnb.URN) error {
	if p.json {
		return p.printJSON(u)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", u.URN)
	writeField(&sb, "Namespace", u.Namespace)
	writeField(&sb, "Created", u.Created)
	writeField(&sb, "Modified", u.LastModified)
	if u.HasSuccessor() {
		writeField(&sb, "Successor", u.Successor)
	}
	writeField(&sb, "URLs", u.URLs)
	writeField(&sb, "Self", u.Self)

	_, err := io.WriteString(p.w, sb.String())
	return err
}

// Namespace prints the details of a namespace
func (p *printer) Namespace(ns *dnb.Namespace) error {
	if p.json {
		return p.printJSON(ns)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", ns.Name)
	writeField(&sb, "Owner", ns.Owner)
	writeField(&sb, "Created", ns.Created)
	writeField(&sb, "Modified", ns.LastModified)
	if ns.URNCount > 0 {
		writeField(&sb, "URNs", fmt.Sprintf("%d", ns.URNCount))
	}
	writeField(&sb, "Self", ns.Self)

	_, err := io.WriteString(p.w, sb.String())
	return err
}

// Suggestion prints a suggested URN
func (p *printer) Suggestion(s *dnb.URNSuggestion) error {
	if p.json {
		return p.printJSON(s)
	}
	_, err := fmt.Fprintln(p.w, s.SuggestedURN)
	return err
}

type existsEntry struct {
	Name   string `json:"name"`
	Exists bool   `json:"exists"`
	Error  string `json:"error,omitempty"`
}

// Exists prints the outcome of existence checks. It returns the number of
// checks that failed.
func (p *printer) Exists(entries []existsEntry) (int, error) {
	var failed int
	for _, e := range entries {
		if e.Error != "" {
			failed++
		}
	}

	if p.json {
		return failed, p.printJSON(entries)
	}

	for _, e := range entries {
		status := "✓ registered"
		switch {
		case e.Error != "":
			status = "! " + e.Error
		case !e.Exists:
			status = "✗ not registered"
		}
		if _, err := fmt.Fprintf(p.w, "%-60s %s\n", e.Name, status); err != nil {
			return failed, err
		}
	}
	return failed, nil
}

// Done prints the outcome of a write operation
func (p *printer) Done(action, subject string) error {
	if p.json {
		return p.printJSON(map[string]any{"action": action, "subject": subject, "ok": true})
	}
	_, err := fmt.Fprintf(p.w, "✓ %s: %s\n", action, subject)
	return err
}

// Exchange prints the outcome of replacing the own URLs of a URN
func (p *printer) Exchange(urn string, result *dnb.ExchangeResult) error {
	if p.json {
		return p.printJSON(map[string]any{
			"urn":    urn,
			"status": result.StatusCode,
			"urls":   result.URLs,
		})
	}

	if _, err := fmt.Fprintf(p.w, "✓ URLs exchanged (status %d)\n", result.StatusCode); err != nil {
		return err
	}
	if len(result.URLs) == 0 {
		return nil
	}
	return p.Records(urn, result.URLs)
}

func writeField(sb *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(sb, "  %-10s %s\n", name+":", value)
}
