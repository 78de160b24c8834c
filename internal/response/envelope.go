package response

import (
	"fmt"
	"net/http"

	"github.com/atriumlabs/atrium/backend/internal/apperror"
)

// Success builds a success envelope. An empty message defaults to
// DefaultMessage.
func Success(data interface{}, message string) Envelope {
	if message == "" {
		message = DefaultMessage
	}
	return Envelope{
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	}
}

// Error builds an error envelope. When detail is empty the key is
// omitted from the serialized form entirely, never emitted as null.
func Error(code int, message, detail string) Envelope {
	return Envelope{
		Code:    code,
		Message: message,
		Detail:  detail,
	}
}

// NewPageMeta computes pagination metadata. page and size are validated
// before any arithmetic: page < 1 or size < 1 is a validation error.
// total == 0 yields pages=0, has_next=false, has_prev=false regardless
// of page.
func NewPageMeta(total int64, page, size int) (PageMeta, error) {
	if page < 1 {
		return PageMeta{}, apperror.NewValidation("page must be a positive integer").
			WithDetail(fmt.Sprintf("got page=%d", page))
	}
	if size < 1 {
		return PageMeta{}, apperror.NewValidation("size must be a positive integer").
			WithDetail(fmt.Sprintf("got size=%d", size))
	}
	if total < 0 {
		return PageMeta{}, apperror.NewValidation("total must be non-negative").
			WithDetail(fmt.Sprintf("got total=%d", total))
	}

	pages := int((total + int64(size) - 1) / int64(size))

	return PageMeta{
		Total:   total,
		Page:    page,
		Size:    size,
		Pages:   pages,
		HasNext: int64(page)*int64(size) < total,
		HasPrev: page > 1,
	}, nil
}

// Page builds a paginated success envelope wrapping items and their
// computed metadata.
func Page(items interface{}, total int64, page, size int) (Envelope, error) {
	meta, err := NewPageMeta(total, page, size)
	if err != nil {
		return Envelope{}, err
	}
	return Success(PagedData{Items: items, Meta: meta}, ""), nil
}
