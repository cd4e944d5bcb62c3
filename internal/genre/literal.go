package genre

import (
	"strconv"
	"strings"
)

// parseLiteralList reads a bracketed list of quoted strings or numbers, as
// written by a Python repr: ['pop', "rock", 3]. It fails unless the whole
// input is a single such list.
func parseLiteralList(s string) ([]string, bool) {
	p := &literalParser{src: strings.TrimSpace(s)}
	if !p.consume('[') {
		return nil, false
	}

	items := []string{}
	p.skipSpace()
	if p.consume(']') {
		return items, p.done()
	}
	for {
		p.skipSpace()
		item, ok := p.item()
		if !ok {
			return nil, false
		}
		items = append(items, item)

		p.skipSpace()
		if p.consume(']') {
			return items, p.done()
		}
		if !p.consume(',') {
			return nil, false
		}
		p.skipSpace()
		// trailing comma
		if p.consume(']') {
			return items, p.done()
		}
	}
}

type literalParser struct {
	src string
	pos int
}

func (p *literalParser) done() bool {
	return p.pos == len(p.src)
}

func (p *literalParser) consume(c byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *literalParser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *literalParser) item() (string, bool) {
	if p.pos >= len(p.src) {
		return "", false
	}
	switch q := p.src[p.pos]; q {
	case '\'', '"':
		return p.quoted(q)
	}
	return p.number()
}

func (p *literalParser) quoted(quote byte) (string, bool) {
	p.pos++
	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		p.pos++
		switch c {
		case quote:
			return b.String(), true
		case '\\':
			if p.pos >= len(p.src) {
				return "", false
			}
			b.WriteByte(unescape(p.src[p.pos]))
			p.pos++
		default:
			b.WriteByte(c)
		}
	}
	return "", false
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	}
	return c
}

func (p *literalParser) number() (string, bool) {
	start := p.pos
	for p.pos < len(p.src) && strings.IndexByte("0123456789+-.eE", p.src[p.pos]) >= 0 {
		p.pos++
	}
	text := p.src[start:p.pos]
	if text == "" {
		return "", false
	}
	if _, err := strconv.ParseFloat(text, 64); err != nil {
		return "", false
	}
	return text, true
}
