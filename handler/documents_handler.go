package handler

import (
	"errors"

	"main/dto"
	"main/model"
	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

const snippetLength = 150

// documentSummary is the list-view shape: the document plus a content
// snippet, with title and snippet split into highlight segments when a
// search term is active.
type documentSummary struct {
	*model.Document
	Snippet         string            `json:"snippet"`
	TitleSegments   []usecase.Segment `json:"title_segments,omitempty"`
	SnippetSegments []usecase.Segment `json:"snippet_segments,omitempty"`
}

func makeSnippet(content string) string {
	runes := []rune(content)
	if len(runes) <= snippetLength {
		return content
	}
	return string(runes[:snippetLength]) + "..."
}

func summarize(doc *model.Document, query string) documentSummary {
	summary := documentSummary{
		Document: doc,
		Snippet:  makeSnippet(doc.Content),
	}
	if query != "" {
		summary.TitleSegments = usecase.Highlight(doc.Title, query)
		summary.SnippetSegments = usecase.Highlight(summary.Snippet, query)
	}
	return summary
}

func respondDocumentError(c *gin.Context, err error) {
	var validationErr *usecase.ValidationError
	switch {
	case errors.As(err, &validationErr):
		utils.BadRequest(c, validationErr.Message)
	case errors.Is(err, usecase.ErrUnauthenticated):
		utils.Unauthorized(c, "Not authenticated")
	case errors.Is(err, repository.ErrDocumentNotFound):
		utils.NotFound(c, "Document not found")
	default:
		utils.TrackError("database")
		utils.Sugar.Errorf("document operation failed: %v", err)
		utils.InternalError(c, "Operation failed")
	}
}

// ListDocumentsHandler serves the browse/search view: an optional
// search term and category filter compose with AND, then the result is
// sorted by the requested key.
func ListDocumentsHandler(c *gin.Context, svc *usecase.DocumentService) {
	userID := c.GetString("user_id")
	query := c.Query("q")
	category := c.Query("category")
	sortKey := usecase.ParseSortKey(c.DefaultQuery("sort_by", "updated"))

	docs, err := svc.List(c, userID, query, category)
	if err != nil {
		respondDocumentError(c, err)
		return
	}

	sorted := usecase.SortDocuments(docs, sortKey)

	summaries := make([]documentSummary, 0, len(sorted))
	for _, doc := range sorted {
		summaries = append(summaries, summarize(doc, query))
	}

	utils.Success(c, gin.H{
		"documents": summaries,
		"count":     len(summaries),
	})
}

func GetDocumentHandler(c *gin.Context, svc *usecase.DocumentService) {
	userID := c.GetString("user_id")
	docID := c.Param("id")

	doc, err := svc.Get(c, userID, docID)
	if err != nil {
		respondDocumentError(c, err)
		return
	}
	if doc == nil {
		utils.NotFound(c, "Document not found")
		return
	}

	utils.Success(c, doc)
}

func CreateDocumentHandler(c *gin.Context, svc *usecase.DocumentService) {
	userID := c.GetString("user_id")

	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	doc, err := svc.Create(c, userID, req)
	if err != nil {
		respondDocumentError(c, err)
		return
	}

	utils.Created(c, doc)
}

func UpdateDocumentHandler(c *gin.Context, svc *usecase.DocumentService) {
	userID := c.GetString("user_id")
	docID := c.Param("id")

	var req dto.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	doc, err := svc.Update(c, userID, docID, req)
	if err != nil {
		respondDocumentError(c, err)
		return
	}

	utils.Success(c, doc)
}

func DeleteDocumentHandler(c *gin.Context, svc *usecase.DocumentService) {
	userID := c.GetString("user_id")
	docID := c.Param("id")

	if err := svc.Delete(c, userID, docID); err != nil {
		respondDocumentError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Document deleted successfully"})
}

func ListCategoriesHandler(c *gin.Context, svc *usecase.DocumentService) {
	userID := c.GetString("user_id")

	categories, err := svc.ListCategories(c, userID)
	if err != nil {
		respondDocumentError(c, err)
		return
	}

	utils.Success(c, gin.H{"categories": categories})
}
