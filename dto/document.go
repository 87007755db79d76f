package dto

// CreateDocumentRequest carries the fields a user submits when creating
// a document. Category defaults to "General" when omitted, tags to an
// empty list.
type CreateDocumentRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// UpdateDocumentRequest is a partial update: nil fields are left
// untouched on the stored document.
type UpdateDocumentRequest struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Category *string   `json:"category"`
	Tags     *[]string `json:"tags"`
}
