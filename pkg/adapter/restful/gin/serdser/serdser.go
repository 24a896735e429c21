// Package serdser provides the request binding and error
// serialization helpers which are shared among the resource packages.
package serdser

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/momeni/libweb/pkg/core/cerr"
	"github.com/momeni/libweb/pkg/core/log"
)

func Bind(c *gin.Context, req any, b binding.Binding) bool {
	switch err := c.ShouldBindWith(req, b).(type) {
	case *validator.InvalidValidationError:
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail": err.Error(),
		})
	case validator.ValidationErrors:
		var nameToErrs map[string][]string
		for _, ferr := range err {
			AddErr(&nameToErrs, ferr.Field(), ferr.Error())
		}
		c.JSON(http.StatusBadRequest, nameToErrs)
	default:
		if err == nil {
			return true
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": err.Error(),
		})
	}
	return false
}

func BindURI(c *gin.Context, req any) bool {
	switch err := c.ShouldBindUri(req).(type) {
	case *validator.InvalidValidationError:
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail": err.Error(),
		})
	case validator.ValidationErrors:
		var nameToErrs map[string][]string
		for _, ferr := range err {
			AddErr(&nameToErrs, ferr.Field(), ferr.Error())
		}
		c.JSON(http.StatusBadRequest, nameToErrs)
	default:
		if err == nil {
			return true
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": err.Error(),
		})
	}
	return false
}

func AddErr(errs *map[string][]string, name string, msgs ...string) {
	if (*errs) == nil {
		*errs = make(map[string][]string)
	}
	if elist, ok := (*errs)[name]; !ok {
		(*errs)[name] = msgs
	} else {
		(*errs)[name] = append(elist, msgs...)
	}
}

func Assert(errs *map[string][]string, ok bool, name string, msgs ...string) bool {
	if ok {
		return true
	}
	AddErr(errs, name, msgs...)
	return false
}

// SerErr serializes err as the response of c. A categorized error
// reports its own status, stable code, and metadata; anything else is
// an internal (likely storage) failure which is logged and reported
// without its details, so no query text leaks to the caller.
func SerErr(c *gin.Context, err error) {
	var ce *cerr.Error
	if errors.As(err, &ce) {
		body := gin.H{
			"code":   ce.Code,
			"detail": ce.Err.Error(),
		}
		for k, v := range ce.Meta {
			body[k] = v
		}
		c.JSON(ce.HTTPStatusCode, body)
		return
	}
	log.Error(c, "request failed", log.Err("error", err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"code":   "internal",
		"detail": "operation failed, try again later",
	})
}
