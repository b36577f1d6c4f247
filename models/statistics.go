package models

import "sort"

// TopVotedLimit caps IssueStatistics.TopVotedIssues.
const TopVotedLimit = 5

// IssueStatistics aggregates the whole issue collection.
// Statuses and categories with no issues are absent from the maps.
type IssueStatistics struct {
	StatusStats    map[IssueStatus]int   `json:"statusStats"`
	CategoryStats  map[IssueCategory]int `json:"categoryStats"`
	TopVotedIssues []Issue               `json:"topVotedIssues"`
	TotalIssues    int                   `json:"totalIssues"`
}

// NewIssueStatistics computes statistics over issues, which must be in store order.
func NewIssueStatistics(issues []Issue) IssueStatistics {
	stats := IssueStatistics{
		StatusStats:   make(map[IssueStatus]int),
		CategoryStats: make(map[IssueCategory]int),
		TotalIssues:   len(issues),
	}

	for _, issue := range issues {
		stats.StatusStats[issue.Status]++
		stats.CategoryStats[issue.Category]++
	}

	byVotes := make([]Issue, len(issues))
	copy(byVotes, issues)
	// Stable so equal vote counts keep store order.
	sort.SliceStable(byVotes, func(i, j int) bool {
		return byVotes[i].Votes > byVotes[j].Votes
	})
	if len(byVotes) > TopVotedLimit {
		byVotes = byVotes[:TopVotedLimit]
	}
	stats.TopVotedIssues = byVotes

	return stats
}
