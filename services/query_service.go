package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidQuery        = errors.New("invalid query")
	ErrOperationNotAllowed = errors.New("operation not allowed")
)

var allowedFirstWords = map[string]struct{}{
	"SELECT": {},
	"INSERT": {},
	"UPDATE": {},
	"DELETE": {},
	"WITH":   {},
}

// blockedPatterns matches anywhere in the text, so a DML statement cannot
// smuggle DDL after a semicolon. String literals are not exempt.
var blockedPatterns = regexp.MustCompile(`(?i)\b(DROP\s+TABLE|DROP\s+SCHEMA|DROP\s+DATABASE|ALTER\s+TABLE\s+.*DROP|TRUNCATE|GRANT|REVOKE|CREATE\s+ROLE|CREATE\s+DATABASE|DROP\s+ROLE)\b`)

// QueryRunner executes parameterized SQL
type QueryRunner interface {
	Query(ctx context.Context, query string, params []any) ([]map[string]any, error)
}

// QueryService screens and forwards SQL from the browser client
type QueryService struct {
	runner QueryRunner
}

// NewQueryService creates a new query service instance
func NewQueryService(runner QueryRunner) *QueryService {
	return &QueryService{runner: runner}
}

// ValidateQuery applies the keyword allow-list and the DDL deny-list
func ValidateQuery(query string) error {
	if query == "" {
		return ErrInvalidQuery
	}

	firstWord := ""
	if fields := strings.Fields(query); len(fields) > 0 {
		firstWord = strings.ToUpper(fields[0])
	}
	if _, ok := allowedFirstWords[firstWord]; !ok {
		return ErrOperationNotAllowed
	}
	if blockedPatterns.MatchString(query) {
		return ErrOperationNotAllowed
	}
	return nil
}

// Execute validates and runs query. Rows are never nil.
func (s *QueryService) Execute(ctx context.Context, query string, params []any) ([]map[string]any, error) {
	if err := ValidateQuery(query); err != nil {
		return nil, err
	}
	if params == nil {
		params = []any{}
	}

	rows, err := s.runner.Query(ctx, query, params)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []map[string]any{}
	}
	return rows, nil
}
