package server

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// DefaultPageSize is the fixed number of items per page on list endpoints.
const DefaultPageSize = 3

// Page holds parsed page-number pagination parameters.
type Page struct {
	Number int
	Size   int
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// parsePage extracts the page query parameter. Pages are one-based.
func parsePage(c *fiber.Ctx) Page {
	number := c.QueryInt("page", 1)
	if number < 1 {
		number = 1
	}
	return Page{Number: number, Size: DefaultPageSize}
}

// pageEnvelope is the wire shape of every paginated list response.
type pageEnvelope struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// respondPage writes a paginated envelope, or a 404 when the requested page
// is past the end of the collection. Page 1 of an empty collection is valid
// and returns an empty result set.
func respondPage(c *fiber.Ctx, page Page, total int64, results any) error {
	if page.Number > 1 && int64(page.Offset()) >= total {
		return models.RespondWithError(c, &models.AppError{
			Kind:    models.KindNotFound,
			Message: "Invalid page",
		})
	}

	var next, previous *string
	if int64(page.Offset()+page.Size) < total {
		u := pageLink(c, page.Number+1)
		next = &u
	}
	if page.Number > 1 {
		u := pageLink(c, page.Number-1)
		previous = &u
	}

	return c.JSON(pageEnvelope{
		Count:    total,
		Next:     next,
		Previous: previous,
		Results:  results,
	})
}

// pageLink rebuilds the request URL pointing at the given page, keeping any
// active filter parameters so that following next on a filtered listing stays
// within the filtered collection. Page 1 omits the page parameter.
func pageLink(c *fiber.Ctx, number int) string {
	params := url.Values{}
	for key, value := range c.Queries() {
		if key != "page" {
			params.Set(key, value)
		}
	}
	if number > 1 {
		params.Set("page", strconv.Itoa(number))
	}

	base := c.BaseURL() + c.Path()
	if encoded := params.Encode(); encoded != "" {
		return base + "?" + encoded
	}
	return base
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "commentId" -> "comment ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		prefix := param[:len(param)-2]
		return strings.ToLower(strings.Join(splitCamel(prefix), " ")) + " ID"
	}
	return param
}

func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// currentUserID returns the authenticated principal. Only valid on routes
// behind AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	return c.Locals("userID").(uint)
}

// optionalUserID returns the principal when present, zero otherwise. Used on
// read paths that allow anonymous access.
func optionalUserID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}
