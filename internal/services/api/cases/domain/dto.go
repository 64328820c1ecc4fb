// Package domain holds DTOs for cases http and service contracts
package domain

import "labqc/internal/core/analytics"

// Case is the stored inspection record
type Case = analytics.Case

// ScoresInput carries the five scores; nil means the score was not selected
type ScoresInput struct {
	Margins   *int `json:"margins" validate:"required,score" example:"2"`
	Contacts  *int `json:"contacts" validate:"required,score" example:"2"`
	Occlusion *int `json:"occlusion" validate:"required,score" example:"1"`
	Color     *int `json:"color" validate:"required,score" example:"2"`
	Contour   *int `json:"contour" validate:"required,score" example:"0"`
}

// CaseInput is the body for create and update
type CaseInput struct {
	DateRecorded string      `json:"dateRecorded" validate:"required,datetime=2006-01-02" example:"2026-10-14"`
	FirstName    string      `json:"firstName" validate:"required,max=100" example:"Maria"`
	LastName     string      `json:"lastName" validate:"required" example:"S"`
	Scores       ScoresInput `json:"scores" validate:"required"`
}

// SearchInput filters the case browser
// names match case insensitively as substrings, dates are inclusive
type SearchInput struct {
	FirstName string `json:"firstName,omitempty" validate:"omitempty,max=100" example:"mar"`
	LastName  string `json:"lastName,omitempty" validate:"omitempty,max=1" example:"s"`
	DateFrom  string `json:"dateFrom,omitempty" validate:"omitempty,datetime=2006-01-02" example:"2026-01-01"`
	DateTo    string `json:"dateTo,omitempty" validate:"omitempty,datetime=2006-01-02" example:"2026-12-31"`
	Page      int    `json:"page,omitempty" validate:"omitempty,min=1" example:"1"`
	PageSize  int    `json:"pageSize,omitempty" validate:"omitempty,min=1,max=200" example:"50"`
}

// CaseList is one page of search results
type CaseList struct {
	Items    []Case `json:"items"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

// Deleted is the acknowledgement body for a delete
type Deleted struct {
	Message string `json:"message" example:"Case deleted successfully"`
}
