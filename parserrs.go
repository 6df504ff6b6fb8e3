package calcengine

import "strconv"

// InputError is an error with position information. Every error resulting
// from invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the token that caused the error.
	Pos() Position
}

// UnexpectedTokenError indicates a token that cannot start or continue an
// expression where it appeared.
type UnexpectedTokenError struct {
	// At is the position of the offending token.
	At Position
	// Token is the token's text; empty at end of input.
	Token string
}

func (err *UnexpectedTokenError) Error() string {
	if err.Token == "" {
		return errpos(err.At, "unexpected end of input")
	}
	return errpos(err.At, "unexpected token "+strconv.Quote(err.Token))
}

func (err *UnexpectedTokenError) Pos() Position { return err.At }

// BracketError indicates a missing closing parenthesis.
type BracketError struct {
	// At is the position where the parenthesis should have closed.
	At Position
	// Got is the token found instead; empty at end of input.
	Got string
}

func (err *BracketError) Error() string {
	if err.Got == "" {
		return errpos(err.At, "missing closing parenthesis")
	}
	return errpos(err.At, "expected closing parenthesis, found "+strconv.Quote(err.Got))
}

func (err *BracketError) Pos() Position { return err.At }

// ArenaLimitError indicates that the expression needs more AST nodes than
// the arena holds.
type ArenaLimitError struct {
	// At is the position of the construct that exhausted the arena.
	At Position
	// Cap is the arena capacity.
	Cap int
}

func (err *ArenaLimitError) Error() string {
	return errpos(err.At, "expression too large: more than "+strconv.Itoa(err.Cap)+" nodes")
}

func (err *ArenaLimitError) Pos() Position { return err.At }

func errpos(pos Position, msg string) string {
	return strconv.Itoa(pos.Line) + ":" + strconv.Itoa(pos.Col) + ": " + msg
}

var (
	_ InputError = (*UnexpectedTokenError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*ArenaLimitError)(nil)
)
