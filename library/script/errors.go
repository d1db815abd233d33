package script

import (
	"errors"
)

// ErrSyntax is returned by Parse for lines that do not form a valid statement.
var ErrSyntax = errors.New("script syntax error")
