package pagination

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	MinLimit     = 1
)

// ErrInvalidWindow is returned when skip/limit fall outside the accepted bounds
var ErrInvalidWindow = errors.New("skip must be >= 0 and limit must be between 1 and 100")

// Params holds validated pagination parameters
type Params struct {
	Page   int
	Limit  int
	Offset int
}

// Parse extracts and clamps page/limit from query parameters
func Parse(c *gin.Context) Params {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))

	if page < 1 {
		page = DefaultPage
	}
	if limit < MinLimit {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// ParseOffset reads skip/limit query parameters. Unlike Parse it rejects
// out-of-range values instead of clamping them.
func ParseOffset(c *gin.Context) (Params, error) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil {
		return Params{}, ErrInvalidWindow
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(MaxLimit)))
	if err != nil {
		return Params{}, ErrInvalidWindow
	}
	return NewOffset(skip, limit)
}

// NewOffset validates a skip/limit pair
func NewOffset(skip, limit int) (Params, error) {
	if skip < 0 || limit < MinLimit || limit > MaxLimit {
		return Params{}, ErrInvalidWindow
	}
	return Params{Page: skip/limit + 1, Limit: limit, Offset: skip}, nil
}
