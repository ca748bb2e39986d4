package regroup

import (
	"github.com/pkg/errors"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

const (
	TOKEN_FIELD = iota
	TOKEN_SEP
	TOKEN_DOT
)

var lexer *lexmachine.Lexer

func init() {
	lexer = lexmachine.NewLexer()
	lexer.Add([]byte(`[a-zA-Z0-9]+`), getToken(TOKEN_FIELD))
	lexer.Add([]byte(`_`), getToken(TOKEN_SEP))
	lexer.Add([]byte(`\.`), getToken(TOKEN_DOT))
}

func getToken(tokenType int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(tokenType, string(m.Bytes), m), nil
	}
}

// parseFields splits the base name (everything before the first dot) into
// underscore separated fields. Names outside the convention alphabet or
// with empty fields fail.
func parseFields(name string) ([]string, error) {
	scanner, err := lexer.Scanner([]byte(name))
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to create lexer scanner")
	}

	fields := make([]string, 0, 8)
	expectField := true
scan:
	for Itok, err, eos := scanner.Next(); !eos; Itok, err, eos = scanner.Next() {
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to parse name %q", name)
		}
		tok := Itok.(*lexmachine.Token)

		switch tok.Type {
		case TOKEN_FIELD:
			fields = append(fields, string(tok.Lexeme))
			expectField = false
		case TOKEN_SEP:
			if expectField {
				return nil, errors.Errorf("Empty field in name %q", name)
			}
			expectField = true
		case TOKEN_DOT:
			// numeric suffix like ".001", not part of the convention
			break scan
		}
	}

	if expectField {
		return nil, errors.Errorf("Name %q has no fields or ends with a separator", name)
	}
	return fields, nil
}
