package matching

import (
	"net/http"

	"github.com/Ray3n-Hamd1/kariera/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("MATCH")

// Error codes. All are terminal for the current request; the core never
// retries automatically.
var (
	CodeProviderFailed    = ErrRegistry.Register("PROVIDER_FAILED", errx.TypeExternal, http.StatusBadGateway, "Embedding or AI provider call failed")
	CodeStructuringFailed = ErrRegistry.Register("STRUCTURING_FAILED", errx.TypeExternal, http.StatusBadGateway, "AI returned unparseable resume structure")
	CodeFormattingFailed  = ErrRegistry.Register("FORMATTING_FAILED", errx.TypeExternal, http.StatusBadGateway, "AI returned unparseable recommendation output")
	CodeStoreFailed       = ErrRegistry.Register("STORE_FAILED", errx.TypeExternal, http.StatusBadGateway, "Vector store call failed")
	CodeModelMismatch     = ErrRegistry.Register("MODEL_MISMATCH", errx.TypeValidation, http.StatusBadRequest, "Query embedding model differs from the index's model")
	CodeResumeNotFound    = ErrRegistry.Register("RESUME_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "No resume found for user")
	CodeEmptyResume       = ErrRegistry.Register("EMPTY_RESUME", errx.TypeValidation, http.StatusBadRequest, "Resume text is empty")
	CodeEnqueueFailed     = ErrRegistry.Register("ENQUEUE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to enqueue ingestion trigger")
	CodeDequeueFailed     = ErrRegistry.Register("DEQUEUE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to dequeue ingestion trigger")
)

func ErrProviderFailed() *errx.Error {
	return ErrRegistry.New(CodeProviderFailed)
}

func ErrStructuringFailed() *errx.Error {
	return ErrRegistry.New(CodeStructuringFailed)
}

func ErrFormattingFailed() *errx.Error {
	return ErrRegistry.New(CodeFormattingFailed)
}

func ErrStoreFailed() *errx.Error {
	return ErrRegistry.New(CodeStoreFailed)
}

func ErrModelMismatch() *errx.Error {
	return ErrRegistry.New(CodeModelMismatch)
}

func ErrResumeNotFound() *errx.Error {
	return ErrRegistry.New(CodeResumeNotFound)
}

func ErrEmptyResume() *errx.Error {
	return ErrRegistry.New(CodeEmptyResume)
}

func ErrEnqueueFailed() *errx.Error {
	return ErrRegistry.New(CodeEnqueueFailed)
}

func ErrDequeueFailed() *errx.Error {
	return ErrRegistry.New(CodeDequeueFailed)
}
