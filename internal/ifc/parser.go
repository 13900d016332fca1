package ifc

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// SyntaxError reports malformed exchange-file content.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("ifc: line %d: %s", e.Line, e.Msg)
}

// Open parses the IFC file at path.
func Open(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Parse(fh)
}

// Parse reads a complete ISO-10303-21 exchange structure.
func Parse(r io.Reader) (*File, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("ifc: read: %w", err)
	}
	p := &parser{buf: buf, line: 1}
	f := newFile()
	if err := p.parse(f); err != nil {
		return nil, err
	}
	return f, nil
}

type parser struct {
	buf  []byte
	pos  int
	line int
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &SyntaxError{Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parse(f *File) error {
	if kw := p.keyword(); kw != "ISO-10303-21" {
		return p.errorf("expected ISO-10303-21, got %q", kw)
	}
	if err := p.expect(';'); err != nil {
		return err
	}
	for {
		kw := p.keyword()
		switch kw {
		case "HEADER":
			if err := p.expect(';'); err != nil {
				return err
			}
			if err := p.headerSection(f); err != nil {
				return err
			}
		case "DATA":
			p.skipSpace()
			if p.peek() == '(' {
				// Section parameters (edition 3) carry nothing the model needs.
				if _, err := p.list(); err != nil {
					return err
				}
			}
			if err := p.expect(';'); err != nil {
				return err
			}
			if err := p.dataSection(f); err != nil {
				return err
			}
		case "END-ISO-10303-21":
			return p.expect(';')
		case "":
			if p.eof() {
				return p.errorf("unexpected end of file, missing END-ISO-10303-21")
			}
			return p.errorf("unexpected character %q", p.peek())
		default:
			return p.errorf("unexpected section %q", kw)
		}
	}
}

func (p *parser) headerSection(f *File) error {
	for {
		name := p.keyword()
		if name == "ENDSEC" {
			return p.expect(';')
		}
		if name == "" {
			return p.errorf("expected header entity or ENDSEC")
		}
		params, err := p.list()
		if err != nil {
			return err
		}
		if err := p.expect(';'); err != nil {
			return err
		}
		f.Header = append(f.Header, Record{Name: name, Params: params.Items})
	}
}

func (p *parser) dataSection(f *File) error {
	for {
		p.skipSpace()
		if p.peek() != '#' {
			if kw := p.keyword(); kw != "ENDSEC" {
				return p.errorf("expected instance or ENDSEC, got %q", kw)
			}
			return p.expect(';')
		}
		line := p.line
		id, err := p.instanceName()
		if err != nil {
			return err
		}
		if err := p.expect('='); err != nil {
			return err
		}
		e := &Entity{ID: id}
		p.skipSpace()
		if p.peek() == '(' {
			// Complex instance: a list of partial records.
			p.pos++
			for {
				p.skipSpace()
				if p.peek() == ')' {
					p.pos++
					break
				}
				part, err := p.value()
				if err != nil {
					return err
				}
				if part.Kind != KindTyped {
					return p.errorf("malformed complex instance #%d", id)
				}
				e.Parts = append(e.Parts, part)
			}
		} else {
			e.Type = p.keyword()
			if e.Type == "" {
				return p.errorf("expected entity type for #%d", id)
			}
			attrs, err := p.list()
			if err != nil {
				return err
			}
			e.Attrs = attrs.Items
		}
		if err := p.expect(';'); err != nil {
			return err
		}
		if err := f.insert(e); err != nil {
			return &SyntaxError{Line: line, Msg: err.Error()}
		}
	}
}

func (p *parser) eof() bool { return p.pos >= len(p.buf) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.buf[p.pos]
}

func (p *parser) skipSpace() {
	for !p.eof() {
		c := p.buf[p.pos]
		switch {
		case c == '\n':
			p.line++
			p.pos++
		case c == ' ' || c == '\t' || c == '\r':
			p.pos++
		case c == '/' && p.pos+1 < len(p.buf) && p.buf[p.pos+1] == '*':
			end := bytes.Index(p.buf[p.pos+2:], []byte("*/"))
			if end < 0 {
				p.pos = len(p.buf)
				return
			}
			comment := p.buf[p.pos : p.pos+2+end+2]
			p.line += bytes.Count(comment, []byte{'\n'})
			p.pos += len(comment)
		default:
			return
		}
	}
}

func (p *parser) expect(c byte) error {
	p.skipSpace()
	if p.peek() != c {
		if p.eof() {
			return p.errorf("expected %q, got end of file", c)
		}
		return p.errorf("expected %q, got %q", c, p.peek())
	}
	p.pos++
	return nil
}

func isKeywordByte(c byte) bool {
	return c == '_' || c == '-' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}

// keyword reads an upper-cased keyword; it returns "" when none starts here.
func (p *parser) keyword() string {
	p.skipSpace()
	start := p.pos
	if c := p.peek(); !(c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')) {
		return ""
	}
	for !p.eof() && isKeywordByte(p.buf[p.pos]) {
		p.pos++
	}
	return strings.ToUpper(string(p.buf[start:p.pos]))
}

func (p *parser) instanceName() (int, error) {
	if err := p.expect('#'); err != nil {
		return 0, err
	}
	start := p.pos
	for !p.eof() && p.buf[p.pos] >= '0' && p.buf[p.pos] <= '9' {
		p.pos++
	}
	id, err := strconv.Atoi(string(p.buf[start:p.pos]))
	if err != nil {
		return 0, p.errorf("invalid instance name %q", string(p.buf[start:p.pos]))
	}
	return id, nil
}

// list parses a parenthesised, comma separated value list.
func (p *parser) list() (Value, error) {
	if err := p.expect('('); err != nil {
		return Value{}, err
	}
	items := []Value{}
	p.skipSpace()
	if p.peek() == ')' {
		p.pos++
		return List(items...), nil
	}
	for {
		v, err := p.value()
		if err != nil {
			return Value{}, err
		}
		items = append(items, v)
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case ')':
			p.pos++
			return List(items...), nil
		default:
			if p.eof() {
				return Value{}, p.errorf("unterminated list")
			}
			return Value{}, p.errorf("expected ',' or ')', got %q", p.peek())
		}
	}
}

func (p *parser) value() (Value, error) {
	p.skipSpace()
	c := p.peek()
	switch {
	case c == '$':
		p.pos++
		return Null(), nil
	case c == '*':
		p.pos++
		return Derived(), nil
	case c == '\'':
		return p.str()
	case c == '.':
		p.pos++
		start := p.pos
		for !p.eof() && p.buf[p.pos] != '.' {
			p.pos++
		}
		if p.eof() {
			return Value{}, p.errorf("unterminated enumeration")
		}
		raw := string(p.buf[start:p.pos])
		p.pos++
		return Value{Kind: KindEnum, Raw: strings.ToUpper(raw)}, nil
	case c == '"':
		p.pos++
		start := p.pos
		for !p.eof() && p.buf[p.pos] != '"' {
			p.pos++
		}
		if p.eof() {
			return Value{}, p.errorf("unterminated binary")
		}
		raw := string(p.buf[start:p.pos])
		p.pos++
		return Value{Kind: KindBinary, Raw: raw}, nil
	case c == '#':
		id, err := p.instanceName()
		if err != nil {
			return Value{}, err
		}
		return RefTo(id), nil
	case c == '(':
		return p.list()
	case c == '-' || c == '+' || (c >= '0' && c <= '9'):
		return p.number()
	case c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z'):
		name := p.keyword()
		args, err := p.list()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindTyped, Type: name, Items: args.Items}, nil
	case p.eof():
		return Value{}, p.errorf("unexpected end of file")
	default:
		return Value{}, p.errorf("unexpected character %q", c)
	}
}

func (p *parser) str() (Value, error) {
	p.pos++
	start, startLine := p.pos, p.line
	for {
		if p.eof() {
			return Value{}, &SyntaxError{Line: startLine, Msg: "unterminated string"}
		}
		c := p.buf[p.pos]
		if c == '\n' {
			p.line++
		}
		if c == '\'' {
			if p.pos+1 < len(p.buf) && p.buf[p.pos+1] == '\'' {
				p.pos += 2
				continue
			}
			raw := string(p.buf[start:p.pos])
			p.pos++
			return Value{Kind: KindString, Raw: raw}, nil
		}
		p.pos++
	}
}

func (p *parser) number() (Value, error) {
	start := p.pos
	isReal := false
	for !p.eof() {
		c := p.buf[p.pos]
		if c == '.' || c == 'E' || c == 'e' {
			isReal = true
		} else if !(c == '-' || c == '+' || (c >= '0' && c <= '9')) {
			break
		}
		p.pos++
	}
	raw := string(p.buf[start:p.pos])
	if isReal {
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return Value{}, p.errorf("invalid real %q", raw)
		}
		return Value{Kind: KindReal, Raw: raw}, nil
	}
	if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
		return Value{}, p.errorf("invalid integer %q", raw)
	}
	return Value{Kind: KindInteger, Raw: raw}, nil
}
