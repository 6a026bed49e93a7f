package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"room-meeting-backend/internal/parse"
)

// pathID parses the named path parameter as an entity id, rejecting the
// request when it is malformed.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := parse.ID(c.Param(name))
	if err != nil {
		badInput(c, err)
		return 0, false
	}
	return id, true
}

// requiredTime parses a mandatory timestamp query parameter.
func (h *Handler) requiredTime(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		badInput(c, fmt.Errorf("query parameter %q is required", name))
		return time.Time{}, false
	}
	t, err := parse.Timestamp(raw, h.loc)
	if err != nil {
		badInput(c, err)
		return time.Time{}, false
	}
	return t, true
}

// optionalTime parses a timestamp query parameter that may be omitted.
func (h *Handler) optionalTime(c *gin.Context, name string) (*time.Time, bool) {
	t, err := parse.OptionalTimestamp(c.Query(name), h.loc)
	if err != nil {
		badInput(c, err)
		return nil, false
	}
	return t, true
}

// topParams parses the :num path parameter and the sort query parameter.
func topParams(c *gin.Context) (n int, desc bool, ok bool) {
	n, err := parse.TopN(c.Param("num"))
	if err != nil {
		badInput(c, err)
		return 0, false, false
	}
	desc, err = parse.Descending(c.Query("sort"))
	if err != nil {
		badInput(c, err)
		return 0, false, false
	}
	return n, desc, true
}
