package dto

import "idea-feed/models"

// Pagination is a generic pagination envelope for list results
// T is the element type of the Data slice
// Total represents the total number of items matching the filters (without pagination)
// Page is 1-based; PageSize is the page size actually applied
//
// swagger:model Pagination
// (Swagger generators may not fully support generics; handlers use PaginationIdeaDTO in annotations.)
type Pagination[T any] struct {
	Data     []T   `json:"data"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}

// PaginationIdeaDTO is a concrete swagger-friendly type for paginated ideas response
// swagger:model PaginationIdeaDTO
type PaginationIdeaDTO struct {
	Data     []models.Idea `json:"data"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Total    int64         `json:"total"`
}
