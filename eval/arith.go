package eval

import (
	"fmt"
	"strconv"
	"strings"
)

// Arith evaluates a purely arithmetic expression: numeric literals,
// + - * /, unary minus, and parentheses. It is a closed recursive-descent
// evaluator; formula evaluation must never reach a general-purpose host
// eval, so this is the only arithmetic entry point.
func Arith(src string) (float64, error) {
	p := &arithParser{src: src}
	v, err := p.sum()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return 0, fmt.Errorf("unexpected %q at offset %d", p.src[p.pos], p.pos)
	}
	return v, nil
}

type arithParser struct {
	src string
	pos int
}

// sum := product (('+' | '-') product)*
func (p *arithParser) sum() (float64, error) {
	v, err := p.product()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpace()
		switch p.peek() {
		case '+':
			p.pos++
			r, err := p.product()
			if err != nil {
				return 0, err
			}
			v += r
		case '-':
			p.pos++
			r, err := p.product()
			if err != nil {
				return 0, err
			}
			v -= r
		default:
			return v, nil
		}
	}
}

// product := factor (('*' | '/') factor)*
func (p *arithParser) product() (float64, error) {
	v, err := p.factor()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpace()
		switch p.peek() {
		case '*':
			p.pos++
			r, err := p.factor()
			if err != nil {
				return 0, err
			}
			v *= r
		case '/':
			p.pos++
			r, err := p.factor()
			if err != nil {
				return 0, err
			}
			v /= r
		default:
			return v, nil
		}
	}
}

// factor := '-' factor | '(' sum ')' | number
func (p *arithParser) factor() (float64, error) {
	p.skipSpace()
	switch {
	case p.peek() == '-':
		p.pos++
		v, err := p.factor()
		return -v, err
	case p.peek() == '(':
		p.pos++
		v, err := p.sum()
		if err != nil {
			return 0, err
		}
		p.skipSpace()
		if p.peek() != ')' {
			return 0, fmt.Errorf("missing closing parenthesis at offset %d", p.pos)
		}
		p.pos++
		return v, nil
	default:
		return p.number()
	}
}

func (p *arithParser) number() (float64, error) {
	start := p.pos
	for p.pos < len(p.src) && (isDigit(p.src[p.pos]) || p.src[p.pos] == '.') {
		p.pos++
	}
	if p.pos == start {
		if p.pos >= len(p.src) {
			return 0, fmt.Errorf("unexpected end of expression")
		}
		return 0, fmt.Errorf("unexpected %q at offset %d", p.src[p.pos], p.pos)
	}
	v, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q", p.src[start:p.pos])
	}
	return v, nil
}

func (p *arithParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *arithParser) skipSpace() {
	for p.pos < len(p.src) && strings.ContainsRune(" \t", rune(p.src[p.pos])) {
		p.pos++
	}
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }
