package models

import (
	"time"
)

// IssueCategory enum
type IssueCategory string

const (
	RoadsAndInfrastructure IssueCategory = "Roads & Infrastructure"
	PublicSafety           IssueCategory = "Public Safety"
	Sanitation             IssueCategory = "Sanitation"
	Environmental          IssueCategory = "Environmental"
	PublicServices         IssueCategory = "Public Services"
	Other                  IssueCategory = "Other"
)

// IssueCategories lists every category in display order.
var IssueCategories = []IssueCategory{
	RoadsAndInfrastructure,
	PublicSafety,
	Sanitation,
	Environmental,
	PublicServices,
	Other,
}

// Valid reports whether c is one of the known categories.
func (c IssueCategory) Valid() bool {
	for _, known := range IssueCategories {
		if c == known {
			return true
		}
	}
	return false
}

// IssueStatus enum
type IssueStatus string

const (
	Pending    IssueStatus = "Pending"
	InProgress IssueStatus = "In Progress"
	Completed  IssueStatus = "Completed"
	Rejected   IssueStatus = "Rejected"
)

// IssueStatuses lists every status in lifecycle order.
var IssueStatuses = []IssueStatus{Pending, InProgress, Completed, Rejected}

// Valid reports whether s is one of the known statuses.
func (s IssueStatus) Valid() bool {
	for _, known := range IssueStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Location is where an issue was observed.
type Location struct {
	Latitude  float64 `bson:"latitude" json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `bson:"longitude" json:"longitude" validate:"gte=-180,lte=180"`
	Address   *string `bson:"address,omitempty" json:"address,omitempty"`
}

// Issue represents a civic issue reported by a user
type Issue struct {
	ID           string        `bson:"_id" json:"id"`
	Title        string        `bson:"title" json:"title"`
	Description  string        `bson:"description" json:"description"`
	Category     IssueCategory `bson:"category" json:"category"`
	Status       IssueStatus   `bson:"status" json:"status"`
	Location     Location      `bson:"location" json:"location"`
	ImageURL     *string       `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Votes        int           `bson:"votes" json:"votes"`
	HasUserVoted bool          `bson:"hasUserVoted" json:"hasUserVoted"`
	ReporterID   string        `bson:"reporterId" json:"reporterId"`
	ReporterName string        `bson:"reporterName" json:"reporterName"`
	CreatedAt    time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// IssueFormData is the user-supplied part of a new issue.
type IssueFormData struct {
	Title       string        `json:"title" validate:"required,min=5,max=100"`
	Description string        `json:"description" validate:"required,min=20,max=1000"`
	Category    IssueCategory `json:"category" validate:"required,issuecategory"`
	Location    Location      `json:"location"`
	ImageURL    *string       `json:"imageUrl,omitempty"`
}
