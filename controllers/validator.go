package controllers

import (
	"fmt"
	"strings"

	"catalog-service/services"

	"github.com/gin-gonic/gin"
)

// QueryError is a malformed query parameter.
type QueryError struct {
	Param string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("invalid boolean value for '%s'", e.Param)
}

// ParseProductQuery reads the product filters. Empty values mean no filter.
func ParseProductQuery(c *gin.Context) (services.ProductQuery, error) {
	q := services.ProductQuery{
		Category: c.Query("category"),
		Brand:    c.Query("brand"),
	}

	var err error
	if q.Featured, err = parseOptionalBool(c, "featured"); err != nil {
		return q, err
	}
	if q.InStock, err = parseOptionalBool(c, "in_stock"); err != nil {
		return q, err
	}
	return q, nil
}

func parseOptionalBool(c *gin.Context, param string) (*bool, error) {
	raw := c.Query(param)
	if raw == "" {
		return nil, nil
	}
	v, ok := parseBoolParam(raw)
	if !ok {
		return nil, &QueryError{Param: param}
	}
	return &v, nil
}

var (
	trueSpellings  = map[string]bool{"1": true, "t": true, "true": true, "y": true, "yes": true, "on": true}
	falseSpellings = map[string]bool{"0": true, "f": true, "false": true, "n": true, "no": true, "off": true}
)

// parseBoolParam accepts the usual query-string spellings of a boolean,
// case-insensitively.
func parseBoolParam(raw string) (bool, bool) {
	v := strings.ToLower(raw)
	switch {
	case trueSpellings[v]:
		return true, true
	case falseSpellings[v]:
		return false, true
	default:
		return false, false
	}
}
