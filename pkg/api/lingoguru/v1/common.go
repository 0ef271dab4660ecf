// Package lingoguruv1 holds the JSON messages and procedure names of the
// lingoguru.v1 Connect services.
package lingoguruv1

// Empty is the message of requests and responses without fields.
type Empty struct{}

type IDRequest struct {
	ID string `json:"id"`
}

type SessionRequest struct {
	SessionID string `json:"session_id"`
}

type PaginationRequest struct {
	PageNo   int32 `json:"page_no"`
	PageSize int32 `json:"page_size"`
}

type PaginationResponse struct {
	Total    int32 `json:"total"`
	PageNo   int32 `json:"page_no"`
	PageSize int32 `json:"page_size"`
}

// Translation is German text with its English and Kannada translations.
type Translation struct {
	Text    string `json:"text"`
	English string `json:"english"`
	Kannada string `json:"kannada"`
}

type Bilingual struct {
	English string `json:"english"`
	Kannada string `json:"kannada"`
}
