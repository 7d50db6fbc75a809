package pagination

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// MaxLimit caps the page size a caller may ask for.
const MaxLimit = 200

type Pagination struct {
	Page  int
	Limit int
	Total int
}

// ParseFromRequest reads ?page= and ?limit= from the request. A request
// without a limit gets a single page holding everything.
func ParseFromRequest(c *fiber.Ctx) Pagination {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "0"))
	if err != nil || limit < 0 {
		limit = 0
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Pagination{Page: page, Limit: limit}
}

// Window returns the [start, end) slice bounds of the current page over
// total items and records the total. Pages past the end are empty.
func (p *Pagination) Window(total int) (int, int) {
	p.Total = total
	page := p.Page
	if page < 1 {
		page = 1
	}
	if p.Limit <= 0 {
		if page > 1 {
			return total, total
		}
		return 0, total
	}
	// Compare before multiplying so a huge page cannot overflow.
	if page-1 > total/p.Limit {
		return total, total
	}
	start := (page - 1) * p.Limit
	if start > total {
		start = total
	}
	end := total
	if p.Limit < total-start {
		end = start + p.Limit
	}
	return start, end
}

// Meta describes the page for the response body.
func (p Pagination) Meta() fiber.Map {
	perPage := p.Limit
	if perPage == 0 {
		perPage = p.Total
	}
	totalPages := 1
	if perPage > 0 {
		totalPages = p.Total / perPage
		if p.Total%perPage > 0 {
			totalPages++
		}
	}
	return fiber.Map{
		"current_page": p.Page,
		"per_page":     perPage,
		"total_items":  p.Total,
		"total_pages":  totalPages,
	}
}
