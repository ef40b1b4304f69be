package parser

import (
	"github.com/mozaik-cms/mozaik/internal/compiler/ast"
	cerrors "github.com/mozaik-cms/mozaik/internal/compiler/errors"
	"github.com/mozaik-cms/mozaik/internal/compiler/lexer"
)

// Parser transforms a stream of tokens into an Abstract Syntax Tree (AST)
type Parser struct {
	tokens  []lexer.Token
	current int
	errors  []ParseError
	depth   int // open braces of the definition being parsed
}

// New creates a new parser for the given token stream
func New(tokens []lexer.Token) *Parser {
	return &Parser{
		tokens:  tokens,
		current: 0,
		errors:  make([]ParseError, 0),
	}
}

// ParseDocument lexes and parses source in one go. Lexical and syntax
// errors are returned together, in source order per phase.
func ParseDocument(source string) (*ast.Document, cerrors.ErrorList) {
	tokens, lexErrors := lexer.New(source).ScanTokens()
	if len(lexErrors) > 0 {
		list := make(cerrors.ErrorList, 0, len(lexErrors))
		for _, e := range lexErrors {
			list = append(list, cerrors.FromLexError(e))
		}
		return nil, list
	}

	doc, parseErrors := New(tokens).Parse()
	if len(parseErrors) > 0 {
		list := make(cerrors.ErrorList, 0, len(parseErrors))
		for _, e := range parseErrors {
			list = append(list, e.CompilerError())
		}
		return nil, list
	}
	return doc, nil
}

// Parse parses the token stream and returns the AST and any errors
func (p *Parser) Parse() (*ast.Document, []ParseError) {
	doc := &ast.Document{
		Definitions: make([]ast.Definition, 0),
	}

	for !p.isAtEnd() {
		if def := p.parseDefinition(); def != nil {
			doc.Definitions = append(doc.Definitions, def)
		}
	}

	return doc, p.errors
}

// parseDefinition parses one type-system definition with its optional description
func (p *Parser) parseDefinition() ast.Definition {
	start := p.peek()
	description := p.parseDescription()

	keyword := p.peek()
	if keyword.Type != lexer.TOKEN_NAME {
		p.errorAt(cerrors.ErrUnknownDefinition, keyword, "")
		p.synchronize()
		return nil
	}

	var def ast.Definition
	switch keyword.Lexeme {
	case "scalar":
		def = p.parseScalar(start, description)
	case "type":
		def = p.parseObject(start, description)
	case "interface":
		def = p.parseInterface(start, description)
	case "union":
		def = p.parseUnion(start, description)
	case "enum":
		def = p.parseEnum(start, description)
	case "input":
		def = p.parseInput(start, description)
	case "directive":
		def = p.parseDirectiveDefinition(start, description)
	default:
		p.errorAt(cerrors.ErrUnknownDefinition, keyword, "")
	}

	if def == nil {
		p.synchronize()
	}
	return def
}

// parseDescription consumes a leading string literal, if any
func (p *Parser) parseDescription() *ast.StringValue {
	if p.check(lexer.TOKEN_STRING_LITERAL) || p.check(lexer.TOKEN_BLOCK_STRING) {
		return p.stringValue(p.advance())
	}
	return nil
}

// parseScalar parses `scalar Name @directives`
func (p *Parser) parseScalar(start lexer.Token, description *ast.StringValue) ast.Definition {
	p.advance() // scalar

	name := p.parseName("scalar name")
	if name == nil {
		return nil
	}

	directives, ok := p.parseDirectives()
	if !ok {
		return nil
	}

	return &ast.ScalarTypeDefinition{
		Description: description,
		Name:        name,
		Directives:  directives,
		Loc:         ast.TokenLocation(start),
	}
}

// parseObject parses `type Name implements A & B @directives { fields }`
func (p *Parser) parseObject(start lexer.Token, description *ast.StringValue) ast.Definition {
	p.advance() // type

	name := p.parseName("type name")
	if name == nil {
		return nil
	}

	interfaces, ok := p.parseImplements()
	if !ok {
		return nil
	}

	directives, ok := p.parseDirectives()
	if !ok {
		return nil
	}

	fields, ok := p.parseFieldsDefinition()
	if !ok {
		return nil
	}

	return &ast.ObjectTypeDefinition{
		Description: description,
		Name:        name,
		Interfaces:  interfaces,
		Directives:  directives,
		Fields:      fields,
		Loc:         ast.TokenLocation(start),
	}
}

// parseInterface parses `interface Name implements A @directives { fields }`
func (p *Parser) parseInterface(start lexer.Token, description *ast.StringValue) ast.Definition {
	p.advance() // interface

	name := p.parseName("interface name")
	if name == nil {
		return nil
	}

	interfaces, ok := p.parseImplements()
	if !ok {
		return nil
	}

	directives, ok := p.parseDirectives()
	if !ok {
		return nil
	}

	fields, ok := p.parseFieldsDefinition()
	if !ok {
		return nil
	}

	return &ast.InterfaceTypeDefinition{
		Description: description,
		Name:        name,
		Interfaces:  interfaces,
		Directives:  directives,
		Fields:      fields,
		Loc:         ast.TokenLocation(start),
	}
}

// parseUnion parses `union Name @directives = A | B`
func (p *Parser) parseUnion(start lexer.Token, description *ast.StringValue) ast.Definition {
	p.advance() // union

	name := p.parseName("union name")
	if name == nil {
		return nil
	}

	directives, ok := p.parseDirectives()
	if !ok {
		return nil
	}

	union := &ast.UnionTypeDefinition{
		Description: description,
		Name:        name,
		Directives:  directives,
		Types:       make([]*ast.NamedType, 0),
		Loc:         ast.TokenLocation(start),
	}

	if !p.match(lexer.TOKEN_EQUALS) {
		return union
	}

	// Leading pipe is allowed: union U = | A | B
	p.match(lexer.TOKEN_PIPE)
	for {
		member := p.parseNamedType()
		if member == nil {
			return nil
		}
		union.Types = append(union.Types, member)

		if !p.match(lexer.TOKEN_PIPE) {
			break
		}
	}

	return union
}

// parseEnum parses `enum Name @directives { VALUES }`
func (p *Parser) parseEnum(start lexer.Token, description *ast.StringValue) ast.Definition {
	p.advance() // enum

	name := p.parseName("enum name")
	if name == nil {
		return nil
	}

	directives, ok := p.parseDirectives()
	if !ok {
		return nil
	}

	enum := &ast.EnumTypeDefinition{
		Description: description,
		Name:        name,
		Directives:  directives,
		Values:      make([]*ast.EnumValueDefinition, 0),
		Loc:         ast.TokenLocation(start),
	}

	if !p.match(lexer.TOKEN_LBRACE) {
		return enum
	}
	p.depth++

	for !p.check(lexer.TOKEN_RBRACE) {
		if p.isAtEnd() {
			p.errorAt(cerrors.ErrUnexpectedEOF, p.peek(), "enum "+name.Value)
			return nil
		}

		valueStart := p.peek()
		valueDescription := p.parseDescription()

		valueName := p.parseName("enum value")
		if valueName == nil {
			return nil
		}
		switch valueName.Value {
		case "true", "false", "null":
			p.errorAt(cerrors.ErrUnexpectedToken, p.previous(), "enum values")
			return nil
		}

		valueDirectives, ok := p.parseDirectives()
		if !ok {
			return nil
		}

		enum.Values = append(enum.Values, &ast.EnumValueDefinition{
			Description: valueDescription,
			Name:        valueName,
			Directives:  valueDirectives,
			Loc:         ast.TokenLocation(valueStart),
		})
	}
	p.closeBrace()

	return enum
}

// parseInput parses `input Name @directives { fields }`
func (p *Parser) parseInput(start lexer.Token, description *ast.StringValue) ast.Definition {
	p.advance() // input

	name := p.parseName("input name")
	if name == nil {
		return nil
	}

	directives, ok := p.parseDirectives()
	if !ok {
		return nil
	}

	input := &ast.InputObjectTypeDefinition{
		Description: description,
		Name:        name,
		Directives:  directives,
		Fields:      make([]*ast.InputValueDefinition, 0),
		Loc:         ast.TokenLocation(start),
	}

	if !p.check(lexer.TOKEN_LBRACE) {
		return input
	}

	fields, ok := p.parseInputValues(lexer.TOKEN_LBRACE, lexer.TOKEN_RBRACE, "input fields")
	if !ok {
		return nil
	}
	input.Fields = fields
	return input
}

// directiveLocations lists the locations a directive definition may name
var directiveLocations = map[string]bool{
	"QUERY": true, "MUTATION": true, "SUBSCRIPTION": true, "FIELD": true,
	"FRAGMENT_DEFINITION": true, "FRAGMENT_SPREAD": true, "INLINE_FRAGMENT": true,
	"VARIABLE_DEFINITION": true, "SCHEMA": true, "SCALAR": true, "OBJECT": true,
	"FIELD_DEFINITION": true, "ARGUMENT_DEFINITION": true, "INTERFACE": true,
	"UNION": true, "ENUM": true, "ENUM_VALUE": true, "INPUT_OBJECT": true,
	"INPUT_FIELD_DEFINITION": true,
}

// parseDirectiveDefinition parses `directive @name(args) repeatable on A | B`
func (p *Parser) parseDirectiveDefinition(start lexer.Token, description *ast.StringValue) ast.Definition {
	p.advance() // directive

	if !p.expect(lexer.TOKEN_AT, "'@'") {
		return nil
	}

	name := p.parseName("directive name")
	if name == nil {
		return nil
	}

	def := &ast.DirectiveDefinition{
		Description: description,
		Name:        name,
		Arguments:   make([]*ast.InputValueDefinition, 0),
		Locations:   make([]*ast.Name, 0),
		Loc:         ast.TokenLocation(start),
	}

	if p.check(lexer.TOKEN_LPAREN) {
		args, ok := p.parseInputValues(lexer.TOKEN_LPAREN, lexer.TOKEN_RPAREN, "directive arguments")
		if !ok {
			return nil
		}
		def.Arguments = args
	}

	if p.checkKeyword("repeatable") {
		p.advance()
		def.Repeatable = true
	}

	if !p.checkKeyword("on") {
		p.errorExpected(p.peek(), "'on'")
		return nil
	}
	p.advance()

	p.match(lexer.TOKEN_PIPE)
	for {
		tok := p.peek()
		loc := p.parseName("directive location")
		if loc == nil {
			return nil
		}
		if !directiveLocations[loc.Value] {
			p.errorAt(cerrors.ErrInvalidDirectiveLocation, tok, "")
			return nil
		}
		def.Locations = append(def.Locations, loc)

		if !p.match(lexer.TOKEN_PIPE) {
			break
		}
	}

	return def
}

// parseImplements parses an optional `implements A & B` clause
func (p *Parser) parseImplements() ([]*ast.NamedType, bool) {
	interfaces := make([]*ast.NamedType, 0)
	if !p.checkKeyword("implements") {
		return interfaces, true
	}
	p.advance()

	p.match(lexer.TOKEN_AMP)
	for {
		iface := p.parseNamedType()
		if iface == nil {
			return nil, false
		}
		interfaces = append(interfaces, iface)

		if !p.match(lexer.TOKEN_AMP) {
			break
		}
	}
	return interfaces, true
}

// parseFieldsDefinition parses an optional `{ field: Type ... }` block
func (p *Parser) parseFieldsDefinition() ([]*ast.FieldDefinition, bool) {
	fields := make([]*ast.FieldDefinition, 0)
	if !p.match(lexer.TOKEN_LBRACE) {
		return fields, true
	}
	p.depth++

	for !p.check(lexer.TOKEN_RBRACE) {
		if p.isAtEnd() {
			p.errorAt(cerrors.ErrUnexpectedEOF, p.peek(), "fields")
			return nil, false
		}

		field := p.parseField()
		if field == nil {
			return nil, false
		}
		fields = append(fields, field)
	}
	p.closeBrace()

	return fields, true
}

// parseField parses a field declaration
func (p *Parser) parseField() *ast.FieldDefinition {
	start := p.peek()
	description := p.parseDescription()

	name := p.parseName("field name")
	if name == nil {
		return nil
	}

	field := &ast.FieldDefinition{
		Description: description,
		Name:        name,
		Arguments:   make([]*ast.InputValueDefinition, 0),
		Loc:         ast.TokenLocation(start),
	}

	if p.check(lexer.TOKEN_LPAREN) {
		args, ok := p.parseInputValues(lexer.TOKEN_LPAREN, lexer.TOKEN_RPAREN, "field arguments")
		if !ok {
			return nil
		}
		field.Arguments = args
	}

	if !p.expect(lexer.TOKEN_COLON, "':'") {
		return nil
	}

	field.Type = p.parseType()
	if field.Type == nil {
		return nil
	}

	directives, ok := p.parseDirectives()
	if !ok {
		return nil
	}
	field.Directives = directives

	return field
}

// parseInputValues parses a delimited list of `name: Type = default @directives`
func (p *Parser) parseInputValues(open, closing lexer.TokenType, context string) ([]*ast.InputValueDefinition, bool) {
	if !p.expect(open, "'"+open.String()+"'") {
		return nil, false
	}
	if open == lexer.TOKEN_LBRACE {
		p.depth++
	}

	values := make([]*ast.InputValueDefinition, 0)
	for !p.check(closing) {
		if p.isAtEnd() {
			p.errorAt(cerrors.ErrUnexpectedEOF, p.peek(), context)
			return nil, false
		}

		start := p.peek()
		description := p.parseDescription()

		name := p.parseName("argument name")
		if name == nil {
			return nil, false
		}
		if !p.expect(lexer.TOKEN_COLON, "':'") {
			return nil, false
		}

		typ := p.parseType()
		if typ == nil {
			return nil, false
		}

		value := &ast.InputValueDefinition{
			Description: description,
			Name:        name,
			Type:        typ,
			Loc:         ast.TokenLocation(start),
		}

		if p.match(lexer.TOKEN_EQUALS) {
			value.DefaultValue = p.parseValue()
			if value.DefaultValue == nil {
				return nil, false
			}
		}

		directives, ok := p.parseDirectives()
		if !ok {
			return nil, false
		}
		value.Directives = directives

		values = append(values, value)
	}
	if closing == lexer.TOKEN_RBRACE {
		p.closeBrace()
	} else {
		p.advance()
	}

	return values, true
}

// parseType parses a type reference: Name, [Type] or Type!
func (p *Parser) parseType() ast.TypeRef {
	var typ ast.TypeRef

	switch {
	case p.check(lexer.TOKEN_LBRACKET):
		open := p.advance()
		inner := p.parseType()
		if inner == nil {
			return nil
		}
		if !p.expect(lexer.TOKEN_RBRACKET, "']'") {
			return nil
		}
		typ = &ast.ListType{Type: inner, Loc: ast.TokenLocation(open)}
	case p.check(lexer.TOKEN_NAME):
		typ = p.parseNamedType()
	default:
		p.errorAt(cerrors.ErrInvalidTypeReference, p.peek(), "")
		return nil
	}

	if p.check(lexer.TOKEN_BANG) {
		p.advance()
		typ = &ast.NonNullType{Type: typ, Loc: typ.Location()}
	}
	return typ
}

// parseNamedType parses a bare type name
func (p *Parser) parseNamedType() *ast.NamedType {
	name := p.parseName("type name")
	if name == nil {
		return nil
	}
	return &ast.NamedType{Name: name, Loc: name.Loc}
}

// parseDirectives parses zero or more `@name(args)` annotations
func (p *Parser) parseDirectives() ([]*ast.Directive, bool) {
	directives := make([]*ast.Directive, 0)

	for p.check(lexer.TOKEN_AT) {
		at := p.advance()

		name := p.parseName("directive name")
		if name == nil {
			return nil, false
		}

		directive := &ast.Directive{
			Name:      name,
			Arguments: make([]*ast.Argument, 0),
			Loc:       ast.TokenLocation(at),
		}

		if p.match(lexer.TOKEN_LPAREN) {
			for !p.check(lexer.TOKEN_RPAREN) {
				if p.isAtEnd() {
					p.errorAt(cerrors.ErrUnexpectedEOF, p.peek(), "directive arguments")
					return nil, false
				}

				argName := p.parseName("argument name")
				if argName == nil {
					return nil, false
				}
				if !p.expect(lexer.TOKEN_COLON, "':'") {
					return nil, false
				}

				value := p.parseValue()
				if value == nil {
					return nil, false
				}

				directive.Arguments = append(directive.Arguments, &ast.Argument{
					Name:  argName,
					Value: value,
					Loc:   argName.Loc,
				})
			}
			p.advance() // )
		}

		directives = append(directives, directive)
	}

	return directives, true
}

// parseValue parses a constant value literal
func (p *Parser) parseValue() ast.Value {
	tok := p.peek()
	loc := ast.TokenLocation(tok)

	switch tok.Type {
	case lexer.TOKEN_INT_LITERAL:
		p.advance()
		return &ast.IntValue{Raw: tok.Lexeme, Loc: loc}
	case lexer.TOKEN_FLOAT_LITERAL:
		p.advance()
		return &ast.FloatValue{Raw: tok.Lexeme, Loc: loc}
	case lexer.TOKEN_STRING_LITERAL, lexer.TOKEN_BLOCK_STRING:
		p.advance()
		return p.stringValue(tok)
	case lexer.TOKEN_NAME:
		p.advance()
		switch tok.Lexeme {
		case "true":
			return &ast.BooleanValue{Value: true, Loc: loc}
		case "false":
			return &ast.BooleanValue{Value: false, Loc: loc}
		case "null":
			return &ast.NullValue{Loc: loc}
		default:
			return &ast.EnumValue{Value: tok.Lexeme, Loc: loc}
		}
	case lexer.TOKEN_LBRACKET:
		p.advance()
		list := &ast.ListValue{Values: make([]ast.Value, 0), Loc: loc}
		for !p.check(lexer.TOKEN_RBRACKET) {
			if p.isAtEnd() {
				p.errorAt(cerrors.ErrUnexpectedEOF, p.peek(), "list value")
				return nil
			}
			item := p.parseValue()
			if item == nil {
				return nil
			}
			list.Values = append(list.Values, item)
		}
		p.advance() // ]
		return list
	case lexer.TOKEN_LBRACE:
		p.advance()
		p.depth++
		obj := &ast.ObjectValue{Fields: make([]*ast.ObjectField, 0), Loc: loc}
		for !p.check(lexer.TOKEN_RBRACE) {
			if p.isAtEnd() {
				p.errorAt(cerrors.ErrUnexpectedEOF, p.peek(), "object value")
				return nil
			}
			name := p.parseName("object field name")
			if name == nil {
				return nil
			}
			if !p.expect(lexer.TOKEN_COLON, "':'") {
				return nil
			}
			value := p.parseValue()
			if value == nil {
				return nil
			}
			obj.Fields = append(obj.Fields, &ast.ObjectField{Name: name, Value: value, Loc: name.Loc})
		}
		p.closeBrace()
		return obj
	case lexer.TOKEN_EOF:
		p.errorAt(cerrors.ErrUnexpectedEOF, tok, "value")
		return nil
	default:
		// Variables ($x) are not allowed in constant values
		p.errorAt(cerrors.ErrUnexpectedToken, tok, "value")
		return nil
	}
}

// parseName consumes a Name token
func (p *Parser) parseName(what string) *ast.Name {
	tok := p.consume(lexer.TOKEN_NAME, what)
	if tok.Type == lexer.TOKEN_ERROR {
		return nil
	}
	return &ast.Name{Value: tok.Lexeme, Loc: ast.TokenLocation(tok)}
}

func (p *Parser) stringValue(tok lexer.Token) *ast.StringValue {
	value, _ := tok.Literal.(string)
	return &ast.StringValue{
		Value: value,
		Block: tok.Type == lexer.TOKEN_BLOCK_STRING,
		Loc:   ast.TokenLocation(tok),
	}
}

// Token stream navigation

// peek returns the current token without advancing
func (p *Parser) peek() lexer.Token {
	if len(p.tokens) == 0 {
		return lexer.Token{Type: lexer.TOKEN_EOF, Line: 1, Column: 1}
	}
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current]
}

// previous returns the most recently consumed token
func (p *Parser) previous() lexer.Token {
	if len(p.tokens) == 0 || p.current == 0 {
		return lexer.Token{Type: lexer.TOKEN_EOF}
	}
	return p.tokens[p.current-1]
}

// advance consumes the current token and returns it
func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

// check returns true if the current token matches the given type
func (p *Parser) check(tokenType lexer.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == tokenType
}

// checkKeyword returns true if the current token is the given contextual keyword
func (p *Parser) checkKeyword(keyword string) bool {
	return p.check(lexer.TOKEN_NAME) && p.peek().Lexeme == keyword
}

// match consumes the token if it matches any of the given types
func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

// consume advances if the next token matches, otherwise reports an error
func (p *Parser) consume(tokenType lexer.TokenType, what string) lexer.Token {
	if p.check(tokenType) {
		return p.advance()
	}

	p.errorExpected(p.peek(), what)
	return lexer.Token{Type: lexer.TOKEN_ERROR}
}

// closeBrace consumes a } that ends a body opened by this definition
func (p *Parser) closeBrace() {
	p.advance()
	if p.depth > 0 {
		p.depth--
	}
}

// expect is consume for punctuators whose token is not needed
func (p *Parser) expect(tokenType lexer.TokenType, what string) bool {
	return p.consume(tokenType, what).Type != lexer.TOKEN_ERROR
}

// isAtEnd returns true if we've reached the end of the token stream
func (p *Parser) isAtEnd() bool {
	return p.current >= len(p.tokens) || p.tokens[p.current].Type == lexer.TOKEN_EOF
}

// Error handling

// errorAt records a parse error; context is the construct being parsed
func (p *Parser) errorAt(code cerrors.ErrorCode, token lexer.Token, context string) {
	if token.Type == lexer.TOKEN_EOF && code != cerrors.ErrUnexpectedEOF {
		code = cerrors.ErrUnexpectedEOF
	}
	p.errors = append(p.errors, NewParseError(code, context, token))
}

// errorExpected records a missing-token error
func (p *Parser) errorExpected(token lexer.Token, expected string) {
	if token.Type == lexer.TOKEN_EOF {
		p.errorAt(cerrors.ErrUnexpectedEOF, token, expected)
		return
	}
	err := NewParseError(cerrors.ErrExpectedToken, expected, token)
	err.Expected = expected
	p.errors = append(p.errors, err)
}

// definitionKeywords are the names that can start a top-level definition
var definitionKeywords = map[string]bool{
	"scalar": true, "type": true, "interface": true, "union": true,
	"enum": true, "input": true, "directive": true,
}

// synchronize implements panic mode error recovery: skip past the body of
// the failed definition to the next token that can start a definition.
func (p *Parser) synchronize() {
	depth := p.depth
	p.depth = 0
	for !p.isAtEnd() {
		tok := p.peek()
		switch tok.Type {
		case lexer.TOKEN_LBRACE:
			depth++
		case lexer.TOKEN_RBRACE:
			if depth > 0 {
				depth--
			}
			if depth == 0 {
				p.advance()
				return
			}
		case lexer.TOKEN_NAME:
			if depth == 0 && definitionKeywords[tok.Lexeme] && p.current > 0 && p.startsDefinitionAfter(p.previous()) {
				return
			}
		}
		p.advance()
	}
}

// startsDefinitionAfter reports whether a keyword following prev sits at a
// definition boundary rather than in a type position (e.g. `field: type`).
func (p *Parser) startsDefinitionAfter(prev lexer.Token) bool {
	switch prev.Type {
	case lexer.TOKEN_COLON, lexer.TOKEN_AT, lexer.TOKEN_LBRACKET, lexer.TOKEN_EQUALS,
		lexer.TOKEN_PIPE, lexer.TOKEN_AMP:
		return false
	}
	return true
}
