package http

import (
	"mime/multipart"
	"net/http"

	"videotube/pkg/apperror"
	"videotube/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	ctxUserID    = "user_id"
	ctxUserEmail = "user_email"
	ctxAccount   = "account"
)

// fail attaches err for the error middleware and stops the chain.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// bind decodes the request into req with gin's content-type dispatch and
// reports binding failures as validation errors.
func bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBind(req); err != nil {
		fail(c, validation.Translate(err))
		return false
	}
	return true
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		fail(c, validation.Translate(err))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		fail(c, validation.Translate(err))
		return false
	}
	return true
}

// idParam reads a path parameter that must hold a UUID.
func idParam(c *gin.Context, name string) (string, bool) {
	raw := c.Param(name)
	if raw == "" {
		fail(c, apperror.Validation(name+" is required"))
		return "", false
	}
	if _, err := uuid.Parse(raw); err != nil {
		fail(c, apperror.Validation(name+" must be a valid id"))
		return "", false
	}
	return raw, true
}

// formFile returns the first file sent under field, or nil when there is none.
func formFile(c *gin.Context, field string) (*multipart.FileHeader, bool) {
	fh, err := c.FormFile(field)
	switch {
	case err == nil:
		return fh, true
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return nil, true
	}
	fail(c, validation.Translate(err))
	return nil, false
}

// typedFile is formFile plus a content check on the file name.
func typedFile(c *gin.Context, field, kind string, accept func(string) bool) (*multipart.FileHeader, bool) {
	fh, ok := formFile(c, field)
	if !ok || fh == nil {
		return fh, ok
	}
	if !accept(fh.Filename) {
		fail(c, apperror.Validation(field+" must be "+kind))
		return nil, false
	}
	return fh, true
}

func currentUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}
