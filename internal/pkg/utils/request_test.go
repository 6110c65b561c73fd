package utils

import (
	"medassist-service/internal/pkg/constvars"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPaginationRequest(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/sessions", nil)

		pagination := BuildPaginationRequest(req)

		assert.Equal(t, 1, pagination.Page)
		assert.Equal(t, constvars.DefaultMessagePageSize, pagination.PageSize)
	})

	t.Run("Clamps Oversized Page Size", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/sessions?page=2&page_size=5000", nil)

		pagination := BuildPaginationRequest(req)

		assert.Equal(t, 2, pagination.Page)
		assert.Equal(t, constvars.MaxMessagePageSize, pagination.PageSize)
	})

	t.Run("Rejects Garbage Values", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/sessions?page=-3&page_size=abc", nil)

		pagination := BuildPaginationRequest(req)

		assert.Equal(t, 1, pagination.Page)
		assert.Equal(t, constvars.DefaultMessagePageSize, pagination.PageSize)
	})
}
