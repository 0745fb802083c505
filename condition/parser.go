package condition

// Parser builds expression trees from condition strings.
//
// A Parser carries only its configuration and is safe for concurrent use.
type Parser struct {
	limits Limits
}

// NewParser creates a parser enforcing the given limits
func NewParser(limits Limits) *Parser {
	return &Parser{limits: limits}
}

// Parse parses a condition using DefaultLimits
func Parse(cond string) (Expression, error) {
	return NewParser(DefaultLimits()).Parse(cond)
}

// MustParse is like Parse but panics on error. It is intended for tests and
// conditions known at compile time.
func MustParse(cond string) Expression {
	expr, err := Parse(cond)
	if err != nil {
		panic(err)
	}
	return expr
}

// node is a token or a bracketed run of nodes
type node struct {
	pos      int
	tok      Token
	children []node
	group    bool
}

// Parse parses a condition into an expression tree.
//
// Column names are resolved once over the whole condition, then the token
// stream is nested by brackets and every level is built left to right.
// There is no precedence between and/or: brackets are the only grouping.
func (p *Parser) Parse(cond string) (Expression, error) {
	if err := p.limits.validateCondition(cond); err != nil {
		return nil, err
	}

	raw, err := tokenize(cond)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, &ParseError{Pos: -1, Err: ErrEmptyCondition}
	}
	if err := p.limits.validateTokens(raw); err != nil {
		return nil, err
	}

	cols := extractColumnNames(raw)
	tokens := make([]Token, len(raw))
	for i, r := range raw {
		tokens[i] = Classify(r, cols)
	}

	nodes, err := p.nest(tokens)
	if err != nil {
		return nil, err
	}

	return p.build(nodes, len(tokens))
}

// nest restructures the flat token stream so that every matched [ ... ] run
// becomes a single group node.
func (p *Parser) nest(tokens []Token) ([]node, error) {
	depth := &depthCounter{maxDepth: p.limits.MaxDepth}

	type frame struct {
		open  int
		nodes []node
	}
	stack := []frame{{open: -1}}

	for i, tok := range tokens {
		switch tok.Type {
		case TokenOpenBracket:
			if err := depth.enter(i); err != nil {
				return nil, err
			}
			stack = append(stack, frame{open: i})
		case TokenCloseBracket:
			if len(stack) == 1 {
				return nil, parseErrorf(i, tok.Value, ErrUnmatchedBracket, "no matching '['")
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			depth.exit()
			parent := &stack[len(stack)-1]
			parent.nodes = append(parent.nodes, node{pos: top.open, children: top.nodes, group: true})
		default:
			top := &stack[len(stack)-1]
			top.nodes = append(top.nodes, node{pos: i, tok: tok})
		}
	}

	if len(stack) > 1 {
		open := stack[len(stack)-1].open
		return nil, parseErrorf(open, "[", ErrUnmatchedBracket, "no matching ']'")
	}
	return stack[0].nodes, nil
}

// build walks one nesting level: clause (logic clause)*
func (p *Parser) build(nodes []node, end int) (Expression, error) {
	left, rest, err := p.clause(nodes, end)
	if err != nil {
		return nil, err
	}

	for len(rest) > 0 {
		op := rest[0]
		if op.group || op.tok.Type != TokenLogic {
			return nil, unexpected(op, "expected 'and' or 'or'")
		}
		right, next, err := p.clause(rest[1:], end)
		if err != nil {
			return nil, err
		}
		left = &Combination{
			Left:  left,
			Op:    logicOperators[op.tok.Value],
			Right: right,
		}
		rest = next
	}

	return left, nil
}

// clause parses `column OP literal` or a bracketed group and returns the
// remaining nodes. end is the token position used when input runs out.
func (p *Parser) clause(nodes []node, end int) (Expression, []node, error) {
	if len(nodes) == 0 {
		return nil, nil, parseErrorf(end, "", ErrUnexpectedToken, "expected column or '[' after operator")
	}

	first := nodes[0]
	if first.group {
		if len(first.children) == 0 {
			return nil, nil, &ParseError{Pos: first.pos, Token: "[", Err: ErrEmptyGroup}
		}
		inner, err := p.build(first.children, first.pos)
		if err != nil {
			return nil, nil, err
		}
		return &Group{Inner: inner}, nodes[1:], nil
	}

	if first.tok.Type != TokenColumn {
		return nil, nil, unexpected(first, "expected column or '['")
	}
	if err := p.limits.validateColumnName(first.pos, first.tok.Value); err != nil {
		return nil, nil, err
	}

	if len(nodes) < 2 || nodes[1].group || nodes[1].tok.Type != TokenComparison {
		return nil, nil, unexpected(first, "expected comparison operator after column")
	}
	op := nodes[1]

	if len(nodes) < 3 {
		return nil, nil, parseErrorf(op.pos, op.tok.Value, ErrMissingLiteral, "")
	}
	value := nodes[2]
	if value.group || value.tok.Type != TokenLiteral {
		desc := "'['"
		if !value.group {
			desc = value.tok.Type.String()
		}
		return nil, nil, parseErrorf(value.pos, value.tok.Value, ErrMissingLiteral, "got %s", desc)
	}

	return &Comparison{
		Column: first.tok.Value,
		Op:     comparisonOperators[op.tok.Value],
		Value:  value.tok.Literal,
	}, nodes[3:], nil
}

func unexpected(n node, msg string) *ParseError {
	if n.group {
		return parseErrorf(n.pos, "[", ErrUnexpectedToken, "%s, got bracket group", msg)
	}
	return parseErrorf(n.pos, n.tok.Value, ErrUnexpectedToken, "%s, got %s", msg, n.tok.Type)
}
