package dto

import "github.com/okandemir/schoolhub/internal/app/models"

// ClassListResponse is the payload of GET /classes.
type ClassListResponse struct {
	Classes []models.Class `json:"classes"`
}

// ClassStudentsResponse is the payload of GET /classes/:classId/students.
type ClassStudentsResponse struct {
	Students []models.Student `json:"students"`
}
