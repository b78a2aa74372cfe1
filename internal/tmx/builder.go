package tmx

import (
	"bufio"
	"strconv"
	"strings"
)

// attrEscaper escapes values for single-quoted attributes.
var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&apos;",
	`"`, "&quot;",
	"\n", "&#xA;",
	"\t", "&#x9;",
)

type attr struct {
	name  string
	value string
}

// element is a tag with attributes kept in insertion order.
type element struct {
	name  string
	attrs []attr
}

func newElement(name string) *element {
	return &element{name: name}
}

func (e *element) str(name, value string) *element {
	e.attrs = append(e.attrs, attr{name: name, value: value})
	return e
}

func (e *element) num(name string, value int) *element {
	return e.str(name, strconv.Itoa(value))
}

// writer accumulates the first error and turns later calls into no-ops.
type writer struct {
	w   *bufio.Writer
	err error
}

func (w *writer) raw(s string) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.WriteString(s)
}

func (w *writer) tag(e *element, selfClosing bool) {
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(e.name)
	for _, a := range e.attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.name)
		sb.WriteString("='")
		sb.WriteString(attrEscaper.Replace(a.value))
		sb.WriteByte('\'')
	}
	if selfClosing {
		sb.WriteString("/>\n")
	} else {
		sb.WriteString(">\n")
	}
	w.raw(sb.String())
}

func (w *writer) open(e *element)  { w.tag(e, false) }
func (w *writer) empty(e *element) { w.tag(e, true) }
func (w *writer) close(name string) {
	w.raw("</" + name + ">\n")
}

// csv writes values comma separated on a single line.
func (w *writer) csv(values []int) {
	buf := make([]byte, 0, 8)
	for i, v := range values {
		if w.err != nil {
			return
		}
		buf = buf[:0]
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendInt(buf, int64(v), 10)
		_, w.err = w.w.Write(buf)
	}
	w.raw("\n")
}

func (w *writer) flush() error {
	if w.err != nil {
		return w.err
	}
	return w.w.Flush()
}
