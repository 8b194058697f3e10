package posting

import (
	"net/http"

	"github.com/Ray3n-Hamd1/kariera/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("POSTING")

var (
	CodePostingNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job posting not found")
	CodeInvalidPosting  = ErrRegistry.Register("INVALID_DATA", errx.TypeValidation, http.StatusBadRequest, "Invalid job posting data")
	CodeStorageFailed   = ErrRegistry.Register("STORAGE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Job posting storage operation failed")
)

func ErrPostingNotFound() *errx.Error {
	return ErrRegistry.New(CodePostingNotFound)
}

func ErrInvalidPosting() *errx.Error {
	return ErrRegistry.New(CodeInvalidPosting)
}

func ErrStorageFailed() *errx.Error {
	return ErrRegistry.New(CodeStorageFailed)
}
