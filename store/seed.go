package store

import (
	"context"
	"fmt"
	"time"

	"civicsync/models"

	"github.com/google/uuid"
)

type seedIssue struct {
	title, description, address, image string
	category                           models.IssueCategory
	status                             models.IssueStatus
	votes                              int
	reporterID, reporterName           string
}

var seedIssues = []seedIssue{
	{"Pothole on Main Street", "A large and dangerous pothole has formed on Main Street, causing a hazard for drivers and cyclists.", "Main Street, Los Angeles, CA", "pothole", models.RoadsAndInfrastructure, models.Pending, 5, "user-1", "John Doe"},
	{"Streetlight Outage", "The streetlight at the corner of Elm and Oak is not working, creating a safety concern at night.", "Elm and Oak, Los Angeles, CA", "streetlight", models.PublicSafety, models.InProgress, 10, "user-2", "Jane Smith"},
	{"Garbage Collection Issue", "Garbage has not been collected for two weeks, leading to unsanitary conditions.", "Residential Area, Los Angeles, CA", "garbage", models.Sanitation, models.Completed, 3, "user-1", "John Doe"},
	{"Illegal Dumping", "Someone has been dumping construction waste in the park after dark.", "City Park, Los Angeles, CA", "dumping", models.Environmental, models.Pending, 7, "user-3", "Alice Johnson"},
	{"Water Leak", "Water has been leaking from a main pipe for several days, flooding the sidewalk.", "4th and Main, Los Angeles, CA", "waterleak", models.PublicServices, models.InProgress, 12, "user-2", "Jane Smith"},
	{"Damaged Signage", "The exit sign on the highway is bent and unreadable to approaching drivers.", "Highway Exit, Los Angeles, CA", "signage", models.RoadsAndInfrastructure, models.Pending, 6, "user-3", "Alice Johnson"},
	{"Vandalism", "Several storefronts and bus shelters downtown have been vandalized with graffiti.", "Downtown, Los Angeles, CA", "vandalism", models.PublicSafety, models.InProgress, 9, "user-1", "John Doe"},
	{"Overflowing Bins", "Public bins around the market overflow every weekend and attract pests.", "Market Area, Los Angeles, CA", "bins", models.Sanitation, models.Completed, 4, "user-2", "Jane Smith"},
	{"Air Pollution", "Factories in the industrial zone release thick smoke during the early morning hours.", "Industrial Zone, Los Angeles, CA", "pollution", models.Environmental, models.Pending, 8, "user-3", "Alice Johnson"},
	{"Broken Water Fountain", "The water fountain near the playground has been broken for a month.", "City Park, Los Angeles, CA", "fountain", models.PublicServices, models.InProgress, 11, "user-1", "John Doe"},
}

// MockIssues returns the demo data set with fresh ids, all created at now.
func MockIssues(now time.Time) []models.Issue {
	issues := make([]models.Issue, 0, len(seedIssues))
	for _, s := range seedIssues {
		address := s.address
		image := "https://example.com/" + s.image + ".jpg"
		issues = append(issues, models.Issue{
			ID:          uuid.NewString(),
			Title:       s.title,
			Description: s.description,
			Category:    s.category,
			Status:      s.status,
			Location: models.Location{
				Latitude:  34.0522,
				Longitude: -118.2437,
				Address:   &address,
			},
			ImageURL:     &image,
			Votes:        s.votes,
			ReporterID:   s.reporterID,
			ReporterName: s.reporterName,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	return issues
}

// Seed appends issues to s in order.
func Seed(ctx context.Context, s IssueStore, issues []models.Issue) error {
	for _, issue := range issues {
		if err := s.Append(ctx, issue); err != nil {
			return fmt.Errorf("failed to seed issue %q: %w", issue.Title, err)
		}
	}
	return nil
}
