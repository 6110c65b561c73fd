package utils

import (
	"medassist-service/internal/pkg/constvars"
	"medassist-service/internal/pkg/dto/requests"
	"net/http"
	"strconv"
)

func BuildPaginationRequest(r *http.Request) *requests.Pagination {
	pageStr := r.URL.Query().Get(constvars.QueryParamPage)
	pageSizeStr := r.URL.Query().Get(constvars.QueryParamPageSize)

	page, err := strconv.Atoi(pageStr)
	if err != nil || page <= 0 {
		page = 1
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize <= 0 {
		pageSize = constvars.DefaultMessagePageSize
	}
	if pageSize > constvars.MaxMessagePageSize {
		pageSize = constvars.MaxMessagePageSize
	}

	return &requests.Pagination{
		Page:     page,
		PageSize: pageSize,
	}
}
