package interp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/TheServer-lab/ironwood/value"
)

// jsonOf renders a Value as JSON: objects, arrays, strings with \n \t \"
// \\ escapes, numbers (integral form when |x|<1e15, else default float
// format, matching value.ToString's number rule), booleans, and null.
// Class-instance markers are omitted.
func jsonOf(v value.Value) string {
	var b strings.Builder
	writeJSON(&b, v)
	return b.String()
}

func writeJSON(b *strings.Builder, v value.Value) {
	switch x := v.(type) {
	case nil, value.Null:
		b.WriteString("null")
	case bool:
		if x {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case float64:
		b.WriteString(value.ToString(x))
	case string:
		writeJSONString(b, x)
	case *value.List:
		b.WriteByte('[')
		for i, e := range x.Elems {
			if i > 0 {
				b.WriteByte(',')
			}
			writeJSON(b, e)
		}
		b.WriteByte(']')
	case *value.Dict:
		b.WriteByte('{')
		first := true
		for _, k := range x.Keys() {
			if k == value.ClassKey {
				continue
			}
			if !first {
				b.WriteByte(',')
			}
			first = false
			writeJSONString(b, k)
			b.WriteByte(':')
			val, _ := x.Get(k)
			writeJSON(b, val)
		}
		b.WriteByte('}')
	default:
		b.WriteString("null")
	}
}

func writeJSONString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
}

// jsonParser is a small recursive-descent reader for the JSON subset
// `parse json` accepts: objects, arrays, strings, numbers, booleans, null.
type jsonParser struct {
	s string
	i int
}

func parseJSON(s string) (value.Value, error) {
	p := &jsonParser{s: s}
	p.skipWS()
	v, err := p.parseValue()
	if err != nil {
		return value.Nil, err
	}
	return v, nil
}

func (p *jsonParser) skipWS() {
	for p.i < len(p.s) {
		switch p.s[p.i] {
		case ' ', '\t', '\n', '\r':
			p.i++
		default:
			return
		}
	}
}

func (p *jsonParser) parseValue() (value.Value, error) {
	p.skipWS()
	if p.i >= len(p.s) {
		return value.Nil, fmt.Errorf("unexpected end of input")
	}
	switch c := p.s[p.i]; {
	case c == '{':
		return p.parseObject()
	case c == '[':
		return p.parseArray()
	case c == '"':
		return p.parseString()
	case c == 't':
		return p.parseLiteral("true", true)
	case c == 'f':
		return p.parseLiteral("false", false)
	case c == 'n':
		return p.parseLiteral("null", value.Nil)
	default:
		return p.parseNumber()
	}
}

func (p *jsonParser) parseLiteral(lit string, v value.Value) (value.Value, error) {
	if p.i+len(lit) > len(p.s) || p.s[p.i:p.i+len(lit)] != lit {
		return value.Nil, fmt.Errorf("invalid literal at offset %d", p.i)
	}
	p.i += len(lit)
	return v, nil
}

func (p *jsonParser) parseNumber() (value.Value, error) {
	start := p.i
	for p.i < len(p.s) {
		c := p.s[p.i]
		if (c >= '0' && c <= '9') || c == '-' || c == '+' || c == '.' || c == 'e' || c == 'E' {
			p.i++
			continue
		}
		break
	}
	if start == p.i {
		return value.Nil, fmt.Errorf("invalid number at offset %d", p.i)
	}
	f, err := strconv.ParseFloat(p.s[start:p.i], 64)
	if err != nil {
		return value.Nil, err
	}
	return f, nil
}

func (p *jsonParser) parseString() (value.Value, error) {
	if p.s[p.i] != '"' {
		return value.Nil, fmt.Errorf("expected string at offset %d", p.i)
	}
	p.i++
	var b strings.Builder
	for p.i < len(p.s) {
		c := p.s[p.i]
		if c == '"' {
			p.i++
			return b.String(), nil
		}
		if c == '\\' && p.i+1 < len(p.s) {
			p.i++
			switch p.s[p.i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			default:
				b.WriteByte(p.s[p.i])
			}
			p.i++
			continue
		}
		b.WriteByte(c)
		p.i++
	}
	return value.Nil, fmt.Errorf("unterminated string")
}

func (p *jsonParser) parseArray() (value.Value, error) {
	p.i++ // [
	var elems []value.Value
	p.skipWS()
	if p.i < len(p.s) && p.s[p.i] == ']' {
		p.i++
		return value.NewList(elems...), nil
	}
	for {
		v, err := p.parseValue()
		if err != nil {
			return value.Nil, err
		}
		elems = append(elems, v)
		p.skipWS()
		if p.i >= len(p.s) {
			return value.Nil, fmt.Errorf("unterminated array")
		}
		if p.s[p.i] == ',' {
			p.i++
			p.skipWS()
			continue
		}
		if p.s[p.i] == ']' {
			p.i++
			return value.NewList(elems...), nil
		}
		return value.Nil, fmt.Errorf("expected ',' or ']' at offset %d", p.i)
	}
}

func (p *jsonParser) parseObject() (value.Value, error) {
	p.i++ // {
	d := value.NewDict()
	p.skipWS()
	if p.i < len(p.s) && p.s[p.i] == '}' {
		p.i++
		return d, nil
	}
	for {
		p.skipWS()
		keyVal, err := p.parseString()
		if err != nil {
			return value.Nil, err
		}
		key, _ := keyVal.(string)
		p.skipWS()
		if p.i >= len(p.s) || p.s[p.i] != ':' {
			return value.Nil, fmt.Errorf("expected ':' at offset %d", p.i)
		}
		p.i++
		v, err := p.parseValue()
		if err != nil {
			return value.Nil, err
		}
		d.Set(key, v)
		p.skipWS()
		if p.i >= len(p.s) {
			return value.Nil, fmt.Errorf("unterminated object")
		}
		if p.s[p.i] == ',' {
			p.i++
			continue
		}
		if p.s[p.i] == '}' {
			p.i++
			return d, nil
		}
		return value.Nil, fmt.Errorf("expected ',' or '}' at offset %d", p.i)
	}
}
