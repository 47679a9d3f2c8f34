// Package handlers adapts HTTP requests to facade calls. Handlers do
// wire-format work only; every rule lives behind the facade.
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/homecove/homecove/pkg/apperr"
	"github.com/homecove/homecove/pkg/response"
)

// writeErr maps a facade error onto the wire: status from the error
// kind, field details when the error carries them.
func writeErr(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	var details any
	if d := apperr.Details(err); len(d) > 0 {
		details = d
	}
	msg := err.Error()
	if apperr.IsUnexpected(err) {
		// internal causes stay in the logs
		msg = "internal error"
	}
	response.Error[any](c, status, msg, details)
}
