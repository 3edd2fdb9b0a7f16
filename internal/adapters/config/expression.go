package config

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"go.trai.ch/ormwire/internal/core/domain"
	"go.trai.ch/zerr"
)

const iteratorPrefix = "!tagged_iterator"

// argumentExpr is a service argument written as a string: "@id", "@?id",
// "%name%" or "!tagged_iterator tag".
type argumentExpr struct {
	Reference *referenceExpr `parser:"  @@"`
	Iterator  *iteratorExpr  `parser:"| @@"`
	Parameter *parameterExpr `parser:"| @@"`
}

type referenceExpr struct {
	Optional bool   `parser:"'@' @'?'?"`
	ID       string `parser:"@Ident"`
}

type iteratorExpr struct {
	Tag string `parser:"Iterator @Ident"`
}

type parameterExpr struct {
	Name string `parser:"'%' @Ident '%'"`
}

var argumentParser = participle.MustBuild[argumentExpr](
	participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Iterator", Pattern: iteratorPrefix},
		{Name: "Ident", Pattern: `[\w\\][\w.\\-]*`},
		{Name: "Punct", Pattern: `[@?%]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})),
	participle.Elide("Whitespace"),
)

// parseArgument converts a string argument into a reference, parameter or
// tagged iterator. Strings that are none of these stay literals.
func parseArgument(s string) (any, error) {
	if strings.HasPrefix(s, "@@") {
		return s[1:], nil
	}

	_, isParam := domain.ParameterName(s)
	if !isParam && !strings.HasPrefix(s, "@") && !strings.HasPrefix(s, iteratorPrefix) {
		return s, nil
	}

	expr, err := argumentParser.ParseString("", s)
	if err != nil {
		err = zerr.Wrap(err, domain.ErrInvalidArgumentExpression.Error())
		return nil, zerr.With(err, "expression", s)
	}

	switch {
	case expr.Reference != nil:
		return domain.Reference{ID: expr.Reference.ID, Optional: expr.Reference.Optional}, nil
	case expr.Iterator != nil:
		return domain.TaggedIterator{Tag: expr.Iterator.Tag}, nil
	default:
		return domain.Param(expr.Parameter.Name), nil
	}
}
