package services

import (
	"context"
	"fmt"
	"strings"
)

// QueryResult is the answer to a keyword query: a one-line summary plus the
// supporting rows.
type QueryResult struct {
	Answer  string `json:"answer"`
	Matched bool   `json:"matched"`
	Rows    any    `json:"rows,omitempty"`
}

// QueryServiceProvider defines the interface for keyword queries.
type QueryServiceProvider interface {
	Answer(ctx context.Context, query string) (QueryResult, error)
}

// QueryService resolves free-text questions against a fixed set of keyword
// rules. There is no language model behind this; it is string matching over
// the phrases the dashboard advertises.
type QueryService struct {
	maintenance MaintenanceServiceProvider
	incidents   IncidentServiceProvider
}

// NewQueryService creates a new QueryService.
func NewQueryService(m MaintenanceServiceProvider, i IncidentServiceProvider) *QueryService {
	return &QueryService{maintenance: m, incidents: i}
}

// Answer dispatches the query to the first matching rule.
func (s *QueryService) Answer(ctx context.Context, query string) (QueryResult, error) {
	q := strings.ToLower(query)

	switch {
	case strings.Contains(q, "total maintenance hours"):
		maint, err := s.maintenance.GetAllMaintenance(ctx)
		if err != nil {
			return QueryResult{}, err
		}
		var total float64
		for _, m := range maint {
			total += m.HoursSpent
		}
		return QueryResult{
			Answer:  fmt.Sprintf("Total maintenance hours: %.1f", total),
			Matched: true,
			Rows:    maint,
		}, nil

	case strings.Contains(q, "emergency") || strings.Contains(q, "critical"):
		critical, err := s.incidents.GetCriticalIncidents(ctx)
		if err != nil {
			return QueryResult{}, err
		}
		return QueryResult{
			Answer:  fmt.Sprintf("Found %d critical incidents", len(critical)),
			Matched: true,
			Rows:    critical,
		}, nil

	default:
		return QueryResult{
			Answer:  "Try: 'total maintenance hours' or 'show emergency incidents'",
			Matched: false,
		}, nil
	}
}
