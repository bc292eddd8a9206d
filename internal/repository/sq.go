package repository

import (
	"errors"

	"github.com/Masterminds/squirrel"
)

// SqBuilder builds postgres statements with $n placeholders.
var SqBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var ErrBadQuery = errors.New("bad query")
