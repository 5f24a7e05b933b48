// Package registry edits the project's central route registry file.
//
// The registry is a TypeScript file holding an import section and a router
// declaration whose block registers every module's routes:
//
//	import { UserRoutes } from "./modules/User/routes";
//
//	export const router = async (fastify: FastifyInstance) => {
//	    fastify.register(UserRoutes);
//	}
//
// Edits are structural: the text is parsed into a Document, entries are
// inserted into the import list or the registration list, and the document
// is serialized back with every other line left untouched.
package registry

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// RouterDeclaration is the token that opens the registration block.
const RouterDeclaration = "export const router"

// ErrMalformedRegistry indicates the registry has no router block.
var ErrMalformedRegistry = errors.New("malformed route registry")

var registrationRegex = regexp.MustCompile(`^\s*fastify\.register\(\s*([\w$]+)\s*[,)]`)

// importStatement spans one import, possibly over several lines.
type importStatement struct {
	start, end int
}

// Document is a parsed route registry.
type Document struct {
	lines           []string
	trailingNewline bool
	crlf            bool

	imports    []importStatement
	routerLine int
	closeLine  int
}

// Parse builds a Document from registry text.
func Parse(text string) (*Document, error) {
	d := &Document{
		trailingNewline: strings.HasSuffix(text, "\n"),
		crlf:            strings.Contains(text, "\r\n"),
	}

	body := strings.TrimSuffix(text, "\n")
	if body != "" || d.trailingNewline {
		d.lines = strings.Split(body, "\n")
	}

	if err := d.index(); err != nil {
		return nil, err
	}
	return d, nil
}

// index locates the import statements and the router block.
func (d *Document) index() error {
	d.imports = d.imports[:0]
	d.routerLine, d.closeLine = -1, -1

	for i := 0; i < len(d.lines); i++ {
		line := strings.TrimSpace(d.lines[i])

		if strings.Contains(line, RouterDeclaration) {
			d.routerLine = i
			break
		}

		if strings.HasPrefix(line, "import ") {
			end := i
			for !importComplete(d.lines[end]) && end < len(d.lines)-1 {
				end++
			}
			d.imports = append(d.imports, importStatement{start: i, end: end})
			i = end
		}
	}

	if d.routerLine < 0 {
		return fmt.Errorf("%w: %q declaration not found", ErrMalformedRegistry, RouterDeclaration)
	}

	d.closeLine = d.matchingClose()
	switch {
	case d.closeLine < 0:
		return fmt.Errorf("%w: router block is not closed", ErrMalformedRegistry)
	case d.closeLine == d.routerLine:
		return fmt.Errorf("%w: router block must close on its own line", ErrMalformedRegistry)
	}
	return nil
}

// matchingClose returns the line holding the brace that closes the first
// block opened at or after the router declaration, or -1. Braces inside
// string literals and comments are ignored.
func (d *Document) matchingClose() int {
	var sc braceScanner
	first := d.lines[d.routerLine]
	first = first[strings.Index(first, RouterDeclaration):]

	for i := d.routerLine; i < len(d.lines); i++ {
		line := d.lines[i]
		if i == d.routerLine {
			line = first
		}
		if sc.scan(line) {
			return i
		}
	}
	return -1
}

// braceScanner tracks block depth across lines of TypeScript source.
type braceScanner struct {
	depth   int
	opened  bool
	quote   byte // active string delimiter, 0 outside strings
	comment bool // inside a block comment
}

// scan consumes one line and reports whether the outermost block closed on it.
func (s *braceScanner) scan(line string) bool {
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case s.comment:
			if c == '*' && i+1 < len(line) && line[i+1] == '/' {
				s.comment = false
				i++
			}
		case s.quote != 0:
			if c == '\\' {
				i++
			} else if c == s.quote {
				s.quote = 0
			}
		case c == '/' && i+1 < len(line) && line[i+1] == '/':
			return false
		case c == '/' && i+1 < len(line) && line[i+1] == '*':
			s.comment = true
			i++
		case c == '"', c == '\'', c == '`':
			s.quote = c
		case c == '{':
			s.depth++
			s.opened = true
		case c == '}':
			s.depth--
			if s.opened && s.depth == 0 {
				return true
			}
		}
	}
	// Only template literals span lines.
	if s.quote != '`' {
		s.quote = 0
	}
	return false
}

// importComplete reports whether an import statement ends on this line.
func importComplete(line string) bool {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.Contains(trimmed, " from "), strings.Contains(trimmed, "}from"):
		return true
	case strings.HasPrefix(trimmed, `import "`), strings.HasPrefix(trimmed, "import '"):
		return true
	case strings.HasSuffix(trimmed, ";"):
		return true
	default:
		return false
	}
}

// Imports returns the import statements in document order.
func (d *Document) Imports() []string {
	out := make([]string, 0, len(d.imports))
	for _, imp := range d.imports {
		lines := make([]string, 0, imp.end-imp.start+1)
		for _, l := range d.lines[imp.start : imp.end+1] {
			lines = append(lines, strings.TrimRight(l, "\r"))
		}
		out = append(out, strings.Join(lines, "\n"))
	}
	return out
}

// Registrations returns the names registered inside the router block, in order.
func (d *Document) Registrations() []string {
	var names []string
	for i := d.routerLine + 1; i < d.closeLine; i++ {
		if m := registrationRegex.FindStringSubmatch(d.lines[i]); m != nil {
			names = append(names, m[1])
		}
	}
	return names
}

// HasImport reports whether an identical import line is present.
func (d *Document) HasImport(line string) bool {
	for _, l := range d.lines {
		if strings.TrimRight(l, "\r") == line {
			return true
		}
	}
	return false
}

// HasRegistration reports whether name is registered in the router block.
func (d *Document) HasRegistration(name string) bool {
	for _, n := range d.Registrations() {
		if n == name {
			return true
		}
	}
	return false
}

// AddImport inserts line after the last import statement, or at the top of
// the document if there is none. It is a no-op if the line already exists.
func (d *Document) AddImport(line string) bool {
	if d.HasImport(line) {
		return false
	}

	at := 0
	if n := len(d.imports); n > 0 {
		at = d.imports[n-1].end + 1
	}
	d.insert(at, line)
	return true
}

// AddRegistration appends a registration for name as the last statement of
// the router block. A name that is already registered is not added again.
func (d *Document) AddRegistration(name string) bool {
	if d.HasRegistration(name) {
		return false
	}
	d.insert(d.closeLine, registrationStatement(name))
	return true
}

// String serializes the document.
func (d *Document) String() string {
	out := strings.Join(d.lines, "\n")
	if d.trailingNewline {
		out += "\n"
	}
	return out
}

// insert places line at index at and re-indexes the document. Inserted lines
// follow the document's line ending.
func (d *Document) insert(at int, line string) {
	if d.crlf {
		line += "\r"
	}
	d.lines = append(d.lines, "")
	copy(d.lines[at+1:], d.lines[at:])
	d.lines[at] = line

	// Insertion never removes the router block, so indexing cannot fail.
	_ = d.index()
}

func registrationStatement(name string) string {
	return fmt.Sprintf("    fastify.register(%s);", name)
}
