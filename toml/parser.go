package toml

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser builds a map[string]any tree from a TOML document
// Supported: [table] and [a.b] headers, dotted keys, basic and literal strings, integers, booleans, arrays
type Parser struct {
	lexer     *Lexer
	curToken  Token
	peekToken Token
	root      map[string]any
	current   map[string]any

	// defined tracks explicit table headers to reject redefinition
	defined map[string]bool
}

func NewParser(input []byte) *Parser {
	p := &Parser{
		lexer:   NewLexer(input),
		root:    make(map[string]any),
		defined: make(map[string]bool),
	}
	p.nextToken()
	p.nextToken()
	p.current = p.root
	return p
}

// Parse decodes the whole document
func Parse(input []byte) (map[string]any, error) {
	return NewParser(input).Parse()
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.lexer.NextToken()

	for p.peekToken.Type == TokenComment {
		p.peekToken = p.lexer.NextToken()
	}
}

func (p *Parser) errorf(format string, args ...any) error {
	return &ParseError{Line: p.curToken.Line, Col: p.curToken.Col, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) Parse() (map[string]any, error) {
	for p.curToken.Type != TokenEOF {
		if p.curToken.Type == TokenNewline {
			p.nextToken()
			continue
		}

		if err := p.parseStatement(); err != nil {
			return nil, err
		}

		// One statement per line
		switch p.curToken.Type {
		case TokenNewline, TokenEOF:
		default:
			return nil, p.errorf("expected end of line, got %s", p.curToken)
		}
	}
	return p.root, nil
}

func (p *Parser) parseStatement() error {
	switch p.curToken.Type {
	case TokenLBracket:
		return p.parseTableHeader()
	case TokenIdent, TokenString, TokenInteger, TokenBool:
		return p.parseKeyValue()
	case TokenError:
		return p.errorf("%s", p.curToken.Literal)
	}
	return p.errorf("unexpected token %s", p.curToken)
}

// parseTableHeader handles [key] and [a.b]
func (p *Parser) parseTableHeader() error {
	p.nextToken() // [

	if p.curToken.Type == TokenLBracket {
		return p.errorf("arrays of tables are not supported")
	}

	keys, err := p.parseKey()
	if err != nil {
		return err
	}
	if p.curToken.Type != TokenRBracket {
		return p.errorf("expected ']' after table name, got %s", p.curToken)
	}
	p.nextToken() // ]

	path := strings.Join(keys, ".")
	if p.defined[path] {
		return p.errorf("table [%s] defined twice", path)
	}
	p.defined[path] = true

	table, err := p.descend(p.root, keys)
	if err != nil {
		return err
	}
	p.current = table
	return nil
}

// descend walks keys from m, creating intermediate tables
func (p *Parser) descend(m map[string]any, keys []string) (map[string]any, error) {
	for _, key := range keys {
		next, exists := m[key]
		if !exists {
			child := make(map[string]any)
			m[key] = child
			m = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return nil, p.errorf("key %q is already a value", key)
		}
		m = child
	}
	return m, nil
}

func (p *Parser) parseKeyValue() error {
	keys, err := p.parseKey()
	if err != nil {
		return err
	}

	if p.curToken.Type != TokenEqual {
		return p.errorf("expected '=' after key, got %s", p.curToken)
	}
	p.nextToken() // =

	val, err := p.parseValue()
	if err != nil {
		return err
	}

	table, err := p.descend(p.current, keys[:len(keys)-1])
	if err != nil {
		return err
	}
	last := keys[len(keys)-1]
	if _, exists := table[last]; exists {
		return p.errorf("duplicate key %q", last)
	}
	table[last] = val
	return nil
}

// parseKey reads a possibly dotted key; any bare word or string is a valid segment
func (p *Parser) parseKey() ([]string, error) {
	var keys []string
	for {
		switch p.curToken.Type {
		case TokenIdent, TokenString, TokenInteger, TokenBool:
			keys = append(keys, p.curToken.Literal)
		case TokenError:
			return nil, p.errorf("%s", p.curToken.Literal)
		default:
			return nil, p.errorf("expected key, got %s", p.curToken)
		}
		p.nextToken()

		if p.curToken.Type != TokenDot {
			return keys, nil
		}
		p.nextToken() // .
	}
}

func (p *Parser) parseValue() (any, error) {
	switch p.curToken.Type {
	case TokenString:
		val := p.curToken.Literal
		p.nextToken()
		return val, nil
	case TokenInteger:
		val, err := parseInteger(p.curToken.Literal)
		if err != nil {
			return nil, p.errorf("invalid integer %q", p.curToken.Literal)
		}
		p.nextToken()
		return val, nil
	case TokenBool:
		val := p.curToken.Literal == "true"
		p.nextToken()
		return val, nil
	case TokenLBracket:
		return p.parseArray()
	case TokenError:
		return nil, p.errorf("%s", p.curToken.Literal)
	}
	return nil, p.errorf("unexpected value %s", p.curToken)
}

func parseInteger(lit string) (int, error) {
	clean := strings.ReplaceAll(lit, "_", "")
	base := 10
	if len(clean) > 2 && clean[0] == '0' && strings.ContainsRune("xob", rune(clean[1])) {
		base = 0
	}
	n, err := strconv.ParseInt(clean, base, 64)
	return int(n), err
}

// parseArray reads [v, v, ...]; newlines and a trailing comma are allowed
func (p *Parser) parseArray() ([]any, error) {
	p.nextToken() // [
	arr := make([]any, 0)

	for {
		for p.curToken.Type == TokenNewline {
			p.nextToken()
		}
		if p.curToken.Type == TokenRBracket {
			break
		}

		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)

		for p.curToken.Type == TokenNewline {
			p.nextToken()
		}
		if p.curToken.Type == TokenComma {
			p.nextToken()
			continue
		}
		if p.curToken.Type != TokenRBracket {
			return nil, p.errorf("expected ',' or ']' in array, got %s", p.curToken)
		}
	}
	p.nextToken() // ]
	return arr, nil
}
