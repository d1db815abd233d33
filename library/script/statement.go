package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

// Operation names.
const (
	OpAcquire    = "acquire"
	OpSell       = "sell"
	OpRegister   = "register"
	OpDeregister = "deregister"
	OpBegin      = "begin"
	OpRenew      = "renew"
	OpTerminate  = "terminate"
	OpPlace      = "place"
	OpUse        = "use"
	OpCancel     = "cancel"
	OpCatalog    = "catalog"
	OpBook       = "book"
	OpMembers    = "members"
	OpMember     = "member"
	OpQueue      = "queue"
	OpLoans      = "loans"
)

const (
	fieldSeparator = "|"
	commentPrefix  = "#"
	aliasPrefix    = "$"
	sortPrefix     = "sort="
)

type operation struct {
	usage     string
	minArgs   int
	maxArgs   int
	canCreate bool
}

var operations = map[string]operation{
	OpAcquire:    {usage: "acquire [$alias] | title | author", minArgs: 2, maxArgs: 2, canCreate: true},
	OpSell:       {usage: "sell | book", minArgs: 1, maxArgs: 1},
	OpRegister:   {usage: "register [$alias] | name | phone | loan limit", minArgs: 3, maxArgs: 3, canCreate: true},
	OpDeregister: {usage: "deregister | member", minArgs: 1, maxArgs: 1},
	OpBegin:      {usage: "begin [$alias] | book | member", minArgs: 2, maxArgs: 2, canCreate: true},
	OpRenew:      {usage: "renew | loan | member", minArgs: 2, maxArgs: 2},
	OpTerminate:  {usage: "terminate | loan | member", minArgs: 2, maxArgs: 2},
	OpPlace:      {usage: "place [$alias] | book | member", minArgs: 2, maxArgs: 2, canCreate: true},
	OpUse:        {usage: "use [$alias] | reservation", minArgs: 1, maxArgs: 1, canCreate: true},
	OpCancel:     {usage: "cancel | reservation", minArgs: 1, maxArgs: 1},
	OpCatalog:    {usage: "catalog [| title fragment or sort=<field>]", minArgs: 0, maxArgs: 1},
	OpBook:       {usage: "book | book", minArgs: 1, maxArgs: 1},
	OpMembers:    {usage: "members [| name fragment or sort=<field>]", minArgs: 0, maxArgs: 1},
	OpMember:     {usage: "member | member", minArgs: 1, maxArgs: 1},
	OpQueue:      {usage: "queue | book", minArgs: 1, maxArgs: 1},
	OpLoans:      {usage: "loans | member", minArgs: 1, maxArgs: 1},
}

// Usage lists the syntax of every operation, sorted by operation name.
func Usage() []string {
	usages := make([]string, 0, len(operations))
	for _, name := range slices.Sorted(maps.Keys(operations)) {
		usages = append(usages, operations[name].usage)
	}

	return usages
}

// Statement is one parsed script line.
type Statement struct {
	Line  int
	Op    string
	Alias string
	Args  []string
}

// Parse reads a whole script. All syntax errors are collected and returned together,
// wrapped with ErrSyntax, so that a script with a typo does not run partially.
func Parse(r io.Reader) ([]Statement, error) {
	statements := make([]Statement, 0)
	var syntaxErrors []error

	scanner := bufio.NewScanner(r)
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}

		statement, err := parseLine(lineNumber, line)
		if err != nil {
			syntaxErrors = append(syntaxErrors, err)
			continue
		}

		statements = append(statements, statement)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(syntaxErrors) > 0 {
		return nil, errors.Join(syntaxErrors...)
	}

	return statements, nil
}

func parseLine(lineNumber int, line string) (Statement, error) {
	fields := strings.Split(line, fieldSeparator)
	head := strings.Fields(fields[0])

	if len(head) == 0 || len(head) > 2 {
		return Statement{}, fmt.Errorf("%w: line %d: expected an operation and an optional alias before the first %q",
			ErrSyntax, lineNumber, fieldSeparator)
	}

	statement := Statement{
		Line: lineNumber,
		Op:   strings.ToLower(head[0]),
		Args: make([]string, 0, len(fields)-1),
	}

	op, known := operations[statement.Op]
	if !known {
		return Statement{}, fmt.Errorf("%w: line %d: unknown operation %q", ErrSyntax, lineNumber, head[0])
	}

	if len(head) == 2 {
		alias := head[1]

		switch {
		case !op.canCreate:
			return Statement{}, fmt.Errorf("%w: line %d: %s does not create anything to bind %s to",
				ErrSyntax, lineNumber, statement.Op, alias)
		case !strings.HasPrefix(alias, aliasPrefix) || len(alias) == len(aliasPrefix):
			return Statement{}, fmt.Errorf("%w: line %d: alias %q must start with %q",
				ErrSyntax, lineNumber, alias, aliasPrefix)
		}

		statement.Alias = alias
	}

	for _, field := range fields[1:] {
		statement.Args = append(statement.Args, strings.TrimSpace(field))
	}

	if len(statement.Args) < op.minArgs || len(statement.Args) > op.maxArgs {
		return Statement{}, fmt.Errorf("%w: line %d: usage: %s", ErrSyntax, lineNumber, op.usage)
	}

	return statement, nil
}
