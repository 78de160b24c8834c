package response

// DefaultMessage is the message used for successful responses when the
// caller does not supply one.
const DefaultMessage = "success"

// Envelope represents the uniform API response wrapper. Every response
// the API emits is one of three shapes: success (code, message, data),
// error (code, message, detail) and paginated success, where data holds
// a PagedData value.
type Envelope struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Detail  string      `json:"detail,omitempty"`
}

// PageMeta is the pagination summary attached to list responses.
type PageMeta struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Size    int   `json:"size"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"has_next"`
	HasPrev bool  `json:"has_prev"`
}

// PagedData wraps a page of items together with its metadata.
type PagedData struct {
	Items interface{} `json:"items"`
	Meta  PageMeta    `json:"meta"`
}
