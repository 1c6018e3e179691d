package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/rdv-service/internal/domain/appointment"
	"github.com/BruksfildServices01/rdv-service/internal/httperr"
	"github.com/BruksfildServices01/rdv-service/internal/timezone"
)

// pathID reads the :id parameter, answering 400 itself when it is not a
// positive integer.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identifiant invalide.")
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return false
	}
	return true
}

// bindOptionalJSON is bindJSON for endpoints where an absent body is a valid
// request. It leaves dst untouched when the body is empty, whatever its framing.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return false
	}
	return true
}

func queryDate(c *gin.Context, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	d, err := timezone.ParseDate(raw)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date", "Date invalide (AAAA-MM-JJ).", key)
	}
	return &d, nil
}

func listFilter(c *gin.Context) (domain.ListFilter, error) {
	f := domain.ListFilter{
		Archived: c.Query("archived") == "true",
		Status:   c.Query("status"),
		Type:     c.Query("type"),
		Query:    strings.TrimSpace(c.Query("query")),
	}

	var err error
	if f.From, err = queryDate(c, "from"); err != nil {
		return f, err
	}
	if f.To, err = queryDate(c, "to"); err != nil {
		return f, err
	}
	return f, nil
}

func queryInt(c *gin.Context, key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return n
}
