package simdyaml

import (
	"bytes"
	"fmt"
	"strings"
)

// RenderEvent formats a single Event as one oracle line: the per-event line
// a conformance-test harness would diff, distinct from the excluded CLI
// driver that reads fixture directories.
func RenderEvent(ev Event) string {
	var b strings.Builder
	b.WriteString(ev.Kind.String())

	switch ev.Kind {
	case EventSequenceStart, EventMappingStart:
		writeProperties(&b, ev)
		if ev.Flow && ev.Kind == EventMappingStart {
			b.WriteString(" {}")
		} else if ev.Flow {
			b.WriteString(" []")
		}
	case EventScalar:
		writeProperties(&b, ev)
		b.WriteByte(' ')
		b.WriteByte(ev.ScalarKind.tag())
		b.WriteString(escapeValue(ev.Value))
	case EventAlias:
		b.WriteString(" *")
		b.Write(ev.Value)
	case EventDirective:
		b.WriteString(" %")
		b.Write(ev.Value)
	case EventDocumentStart:
		if ev.Explicit {
			b.WriteString(" ---")
		}
	case EventDocumentEnd:
		if ev.Explicit {
			b.WriteString(" ...")
		}
	case EventError:
		if ev.Err != nil {
			fmt.Fprintf(&b, " %s", ev.Err.Error())
		}
	}
	return b.String()
}

func writeProperties(b *strings.Builder, ev Event) {
	if ev.Anchor != nil {
		b.WriteString(" &")
		b.Write(ev.Anchor)
	}
	if ev.Tag != nil {
		b.WriteString(" <")
		b.Write(ev.Tag)
		b.WriteByte('>')
	}
}

// escapeValue renders scalar content the way the event-stream oracle format
// expects: backslash, newline, tab and carriage return are escaped, every
// other byte (including the rest of UTF-8) passes through unchanged.
func escapeValue(v []byte) string {
	var b bytes.Buffer
	for _, c := range v {
		switch c {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// RenderAll renders a full event slice, one line per event, joined with \n.
// Re-rendering the result of parsing that same output is idempotent: the
// renderer has no state that depends on render order.
func RenderAll(events []Event) string {
	lines := make([]string, len(events))
	for i, ev := range events {
		lines[i] = RenderEvent(ev)
	}
	return strings.Join(lines, "\n")
}
