package pagination

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, query string) Pagination {
	t.Helper()
	var got Pagination
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		got = ParseFromRequest(c)
		return nil
	})
	_, err := app.Test(httptest.NewRequest("GET", "/"+query, nil), -1)
	require.NoError(t, err)
	return got
}

func TestParseFromRequest(t *testing.T) {
	tests := []struct {
		query string
		want  Pagination
	}{
		{"", Pagination{Page: 1, Limit: 0}},
		{"?page=2&limit=5", Pagination{Page: 2, Limit: 5}},
		{"?page=0&limit=-3", Pagination{Page: 1, Limit: 0}},
		{"?page=x&limit=1000", Pagination{Page: 1, Limit: MaxLimit}},
		{"?page=9223372036854775807&limit=10", Pagination{Page: math.MaxInt64, Limit: 10}},
		{"?page=99999999999999999999", Pagination{Page: 1, Limit: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, parse(t, tt.query))
		})
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name       string
		p          Pagination
		total      int
		start, end int
		pages      int
	}{
		{"all", Pagination{Page: 1}, 7, 0, 7, 1},
		{"all past first page", Pagination{Page: 2}, 7, 7, 7, 1},
		{"first page", Pagination{Page: 1, Limit: 3}, 7, 0, 3, 3},
		{"last partial page", Pagination{Page: 3, Limit: 3}, 7, 6, 7, 3},
		{"beyond end", Pagination{Page: 9, Limit: 3}, 7, 7, 7, 3},
		{"empty", Pagination{Page: 1}, 0, 0, 0, 1},
		{"huge page", Pagination{Page: math.MaxInt64, Limit: 10}, 3, 3, 3, 1},
		{"huge page no limit", Pagination{Page: math.MaxInt64}, 3, 3, 3, 1},
		{"huge limit", Pagination{Page: 2, Limit: math.MaxInt64}, 3, 3, 3, 1},
		{"zero page", Pagination{Page: 0, Limit: 2}, 3, 0, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.p.Window(tt.total)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
			assert.Equal(t, tt.pages, tt.p.Meta()["total_pages"])
			assert.Equal(t, tt.total, tt.p.Meta()["total_items"])
		})
	}
}
