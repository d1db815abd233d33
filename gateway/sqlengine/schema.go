package sqlengine

import (
	"context"
	"embed"
	"errors"
	"strings"
	"time"

	"github.com/AntonStoeckl/library-lending-go/gateway"
)

//go:embed schema/*.sql
var schemaFiles embed.FS

const schemaPrefixPlaceholder = "{{prefix}}"

// CreateSchema creates all tables and indexes if they do not exist yet.
// It is safe to call on every start, it never alters existing tables.
func (s Store) CreateSchema(ctx context.Context) error {
	statements, err := s.schemaStatements()
	if err != nil {
		s.logError(ctx, logMsgSchemaFailed, err, logAttrDialect, s.dialectName)
		return errors.Join(gateway.ErrStoreFailure, err)
	}

	start := time.Now()

	for _, statement := range statements {
		if _, execErr := s.db.Exec(ctx, statement); execErr != nil {
			execErr = s.classifyError(ctx, operationCreateSchema, "", execErr)
			s.logError(ctx, logMsgSchemaFailed, execErr, logAttrQuery, statement)

			return execErr
		}
	}

	s.logOperation(ctx, operationCreateSchema, logAttrDialect, s.dialectName, logAttrDurationMS, toMilliseconds(time.Since(start)))

	return nil
}

// schemaStatements returns the DDL of the store's dialect, one statement per element.
func (s Store) schemaStatements() ([]string, error) {
	file := "schema/postgres.sql"
	if s.dialectName == dialectSQLite {
		file = "schema/sqlite.sql"
	}

	content, err := schemaFiles.ReadFile(file)
	if err != nil {
		return nil, err
	}

	ddl := strings.ReplaceAll(string(content), schemaPrefixPlaceholder, s.tablePrefix)
	statements := make([]string, 0)

	for _, statement := range strings.Split(ddl, ";") {
		if statement = strings.TrimSpace(statement); statement != "" {
			statements = append(statements, statement)
		}
	}

	return statements, nil
}
