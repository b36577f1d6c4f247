package services

import (
	"context"
	"fmt"
	"sort"

	"civicsync/geo"
	"civicsync/logger"
	"civicsync/models"
	"civicsync/store"
)

// DefaultPageLimit is used when a caller passes a non-positive limit.
const DefaultPageLimit = 10

// MapMarker is an issue placed on the map canvas.
type MapMarker struct {
	ID       string               `json:"id"`
	Title    string               `json:"title"`
	Status   models.IssueStatus   `json:"status"`
	Category models.IssueCategory `json:"category"`
	geo.Point
}

// IssueQuery serves read-only views over the issue store.
type IssueQuery struct {
	store  store.IssueStore
	logger *logger.Logger
}

func NewIssueQuery(s store.IssueStore, log *logger.Logger) *IssueQuery {
	return &IssueQuery{store: s, logger: log}
}

// NormalizePage clamps page to at least 1 and replaces a non-positive limit with DefaultPageLimit.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	return page, limit
}

// paginate returns issues[(page-1)*limit : page*limit], empty when past the end.
func paginate(issues []models.Issue, page, limit int) []models.Issue {
	page, limit = NormalizePage(page, limit)
	// Compare page indexes rather than offsets so huge arguments cannot overflow.
	if len(issues) == 0 || page-1 > (len(issues)-1)/limit {
		return []models.Issue{}
	}
	start := (page - 1) * limit
	end := len(issues)
	if limit < end-start {
		end = start + limit
	}
	return issues[start:end]
}

func (q *IssueQuery) all(ctx context.Context) ([]models.Issue, error) {
	issues, err := q.store.All(ctx)
	if err != nil {
		q.logger.Error("Issue query: failed to read store", "error", err.Error())
		return nil, fmt.Errorf("failed to read issues: %w", err)
	}
	return issues, nil
}

// List returns one page of issues in store (creation) order.
func (q *IssueQuery) List(ctx context.Context, page, limit int) ([]models.Issue, error) {
	issues, err := q.all(ctx)
	if err != nil {
		return nil, err
	}
	return paginate(issues, page, limit), nil
}

// ListByReporter returns one page of the issues reported by userID, newest first.
//
// Unlike List, the result is ordered by CreatedAt descending. Equal timestamps keep store order.
func (q *IssueQuery) ListByReporter(ctx context.Context, userID string, page, limit int) ([]models.Issue, error) {
	issues, err := q.all(ctx)
	if err != nil {
		return nil, err
	}

	mine := make([]models.Issue, 0)
	for _, issue := range issues {
		if issue.ReporterID == userID {
			mine = append(mine, issue)
		}
	}

	sort.SliceStable(mine, func(i, j int) bool {
		return mine[i].CreatedAt.After(mine[j].CreatedAt)
	})

	return paginate(mine, page, limit), nil
}

// Statistics aggregates over the whole store.
func (q *IssueQuery) Statistics(ctx context.Context) (models.IssueStatistics, error) {
	issues, err := q.all(ctx)
	if err != nil {
		return models.IssueStatistics{}, err
	}
	return models.NewIssueStatistics(issues), nil
}

// Get returns the issue with the given id.
func (q *IssueQuery) Get(ctx context.Context, id string) (models.Issue, error) {
	issues, err := q.all(ctx)
	if err != nil {
		return models.Issue{}, err
	}
	for _, issue := range issues {
		if issue.ID == id {
			return issue, nil
		}
	}
	return models.Issue{}, models.ErrIssueNotFound
}

// MapMarkers projects every issue onto the canvas, dropping the ones that fall outside it.
func (q *IssueQuery) MapMarkers(ctx context.Context, projection geo.Projection) ([]MapMarker, error) {
	issues, err := q.all(ctx)
	if err != nil {
		return nil, err
	}

	markers := make([]MapMarker, 0, len(issues))
	for _, issue := range issues {
		pt := projection.ToPixel(issue.Location.Latitude, issue.Location.Longitude)
		if !projection.Contains(pt) {
			continue
		}
		markers = append(markers, MapMarker{
			ID:       issue.ID,
			Title:    issue.Title,
			Status:   issue.Status,
			Category: issue.Category,
			Point:    pt,
		})
	}
	return markers, nil
}
