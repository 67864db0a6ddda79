package lexer

import (
	"github.com/leapstack-labs/sqlfmt/pkg/token"
)

// DefaultMatchers returns the ANSI-flavoured lexer matcher list every
// dialect starts from: each token kind is an independent, declaratively
// ordered Matcher rather than a branch in one big switch, so a dialect
// can patch the matcher list to insert/replace/remove entries without
// touching this function.
func DefaultMatchers() []Matcher {
	return []Matcher{
		NewNativeMatcher("whitespace", token.Whitespace, isSpaceByte, matchWhitespace),
		NewNativeMatcher("newline", token.Newline, isNewlineByte, matchNewline),
		NewNativeMatcher("inline_comment", token.InlineComment, func(b byte) bool { return b == '-' }, matchInlineComment),
		NewNativeMatcher("block_comment", token.BlockComment, func(b byte) bool { return b == '/' }, matchBlockComment).
			WithSubdivide(subdivideBlockComment),
		NewNativeMatcher("dollar_quote", token.DollarQuote, func(b byte) bool { return b == '$' }, matchDollarQuote),
		NewNativeMatcher("single_quote", token.SingleQuote, func(b byte) bool { return b == '\'' }, matchSingleQuoteString),
		NewNativeMatcher("double_quote", token.DoubleQuote, func(b byte) bool { return b == '"' }, matchDoubleQuoteIdent),
		NewNativeMatcher("back_quote", token.BackQuote, func(b byte) bool { return b == '`' }, matchBackQuoteIdent),
		NewNativeMatcher("numeric_literal", token.NumericLiteral, isDigitByte, matchNumericLiteral),
		NewMultiStringMatcher("not_equal_diamond", token.NotEqualsOp, "<>"),
		NewMultiStringMatcher("le", token.LessThanOrEqualOp, "<="),
		NewMultiStringMatcher("ge", token.GreaterThanOrEqualOp, ">="),
		NewMultiStringMatcher("ne", token.NotEqualsOp, "!="),
		NewMultiStringMatcher("concat", token.Concat, "||"),
		NewMultiStringMatcher("arrow", token.Arrow, "->"),
		NewStringMatcher("dot", ".", token.Dot),
		NewStringMatcher("comma", ",", token.Comma),
		NewStringMatcher("colon", ":", token.Colon),
		NewStringMatcher("semicolon", ";", token.SemiColon),
		NewStringMatcher("lparen", "(", token.StartBracket),
		NewStringMatcher("rparen", ")", token.EndBracket),
		NewStringMatcher("lbracket", "[", token.StartSquareBracket),
		NewStringMatcher("rbracket", "]", token.EndSquareBracket),
		NewStringMatcher("lbrace", "{", token.StartCurlyBracket),
		NewStringMatcher("rbrace", "}", token.EndCurlyBracket),
		NewStringMatcher("plus", "+", token.Plus),
		NewStringMatcher("minus", "-", token.Minus),
		NewStringMatcher("star", "*", token.Star),
		NewStringMatcher("slash", "/", token.Divide),
		NewStringMatcher("percent", "%", token.Modulo),
		NewStringMatcher("eq", "=", token.EqualsOp),
		NewStringMatcher("lt", "<", token.LessThanOp),
		NewStringMatcher("gt", ">", token.GreaterThanOp),
		NewNativeMatcher("word", token.Word, isWordStartByte, matchWord),
	}
}

func isSpaceByte(b byte) bool  { return b == ' ' || b == '\t' }
func isNewlineByte(b byte) bool { return b == '\n' || b == '\r' }
func isDigitByte(b byte) bool  { return b >= '0' && b <= '9' }
func isWordStartByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
func isWordByte(b byte) bool {
	return isWordStartByte(b) || isDigitByte(b)
}

func matchWhitespace(input string, pos int) (string, bool) {
	c := NewCursor(input, pos)
	start := c.Pos()
	if c.ShiftWhile(isSpaceByte) == 0 {
		return "", false
	}
	return c.Slice(start), true
}

func matchNewline(input string, pos int) (string, bool) {
	if input[pos] == '\n' {
		return "\n", true
	}
	if input[pos] == '\r' {
		if pos+1 < len(input) && input[pos+1] == '\n' {
			return "\r\n", true
		}
		return "\r", true
	}
	return "", false
}

func matchInlineComment(input string, pos int) (string, bool) {
	if pos+1 >= len(input) || input[pos+1] != '-' {
		return "", false
	}
	c := NewCursor(input, pos)
	start := c.Pos()
	c.ShiftWhile(func(b byte) bool { return b != '\n' })
	return c.Slice(start), true
}

// matchBlockComment handles nested /* ... */ comments, depth-tracked per
// 
func matchBlockComment(input string, pos int) (string, bool) {
	if pos+1 >= len(input) || input[pos+1] != '*' {
		return "", false
	}
	c := NewCursor(input, pos)
	start := c.Pos()
	c.Shift()
	c.Shift()
	depth := 1
	for !c.Eof() && depth > 0 {
		switch {
		case c.Peek(0) == '/' && c.Peek(1) == '*':
			depth++
			c.Shift()
			c.Shift()
		case c.Peek(0) == '*' && c.Peek(1) == '/':
			depth--
			c.Shift()
			c.Shift()
		default:
			c.Shift()
		}
	}
	return c.Slice(start), true
}

// subdivideBlockComment splits a block comment along embedded newlines so
// the reflow engine can treat the newline runs inside a multi-line comment
// as real line breaks.
func subdivideBlockComment(raw string, offset int) []Leaf {
	var out []Leaf
	start := 0
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\n' {
			if i > start {
				out = append(out, Leaf{Kind: token.BlockComment, Raw: raw[start:i], Offset: offset + start})
			}
			out = append(out, Leaf{Kind: token.Newline, Raw: "\n", Offset: offset + i})
			start = i + 1
		}
	}
	if start < len(raw) {
		out = append(out, Leaf{Kind: token.BlockComment, Raw: raw[start:], Offset: offset + start})
	}
	if len(out) <= 1 {
		return nil
	}
	return out
}

// matchDollarQuote handles Postgres/Snowflake-style $tag$ ... $tag$ strings.
func matchDollarQuote(input string, pos int) (string, bool) {
	c := NewCursor(input, pos)
	start := c.Pos()
	c.Shift() // opening $
	tagStart := c.Pos()
	c.ShiftWhile(func(b byte) bool { return isWordByte(b) })
	if c.Peek(0) != '$' {
		return "", false
	}
	tag := input[tagStart:c.Pos()]
	c.Shift() // closing $ of open tag
	closer := "$" + tag + "$"
	for !c.Eof() {
		if c.Pos()+len(closer) <= len(input) && input[c.Pos():c.Pos()+len(closer)] == closer {
			for range closer {
				c.Shift()
			}
			return c.Slice(start), true
		}
		c.Shift()
	}
	return c.Slice(start), true // unterminated: consume to EOF rather than fail
}

// matchSingleQuoteString reads 'literal' with doubled-quote escaping.
func matchSingleQuoteString(input string, pos int) (string, bool) {
	c := NewCursor(input, pos)
	start := c.Pos()
	c.Shift()
	for !c.Eof() {
		if c.Peek(0) == '\'' {
			if c.Peek(1) == '\'' {
				c.Shift()
				c.Shift()
				continue
			}
			c.Shift()
			return c.Slice(start), true
		}
		c.Shift()
	}
	return c.Slice(start), true
}

func matchDoubleQuoteIdent(input string, pos int) (string, bool) {
	return matchQuoted(input, pos, '"')
}

func matchBackQuoteIdent(input string, pos int) (string, bool) {
	return matchQuoted(input, pos, '`')
}

func matchQuoted(input string, pos int, quote byte) (string, bool) {
	c := NewCursor(input, pos)
	start := c.Pos()
	c.Shift()
	for !c.Eof() {
		if c.Peek(0) == quote {
			if c.Peek(1) == quote {
				c.Shift()
				c.Shift()
				continue
			}
			c.Shift()
			return c.Slice(start), true
		}
		c.Shift()
	}
	return c.Slice(start), true
}

// matchNumericLiteral reads an integer/decimal/exponent literal and guards
// against identifier adjacency: when a letter or underscore directly follows,
// any exponent is dropped and only the digits (and fraction) are returned, so
// "1ecol" lexes as "1" followed by a word.
func matchNumericLiteral(input string, pos int) (string, bool) {
	c := NewCursor(input, pos)
	start := c.Pos()
	c.ShiftWhile(isDigitByte)
	if c.Peek(0) == '.' && isDigitByte(c.Peek(1)) {
		c.Shift()
		c.ShiftWhile(isDigitByte)
	}
	mantissaEnd := c.Pos()
	if c.Peek(0) == 'e' || c.Peek(0) == 'E' {
		save := c.Pos()
		c.Shift()
		if c.Peek(0) == '+' || c.Peek(0) == '-' {
			c.Shift()
		}
		if isDigitByte(c.Peek(0)) {
			c.ShiftWhile(isDigitByte)
		} else {
			c.pos = save
		}
	}
	if isWordStartByte(c.Peek(0)) {
		c.pos = mantissaEnd // adjacency guard: an exponent running into a word isn't part of the number
	}
	return c.Slice(start), true
}

func matchWord(input string, pos int) (string, bool) {
	c := NewCursor(input, pos)
	start := c.Pos()
	c.ShiftWhile(isWordByte)
	return c.Slice(start), true
}
