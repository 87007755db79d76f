package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"main/dto"
	"main/model"
	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryDocumentStore struct {
	docs []*model.Document
}

func (m *memoryDocumentStore) InsertDocument(_ context.Context, doc *model.Document) error {
	copied := *doc
	m.docs = append(m.docs, &copied)
	return nil
}

func (m *memoryDocumentStore) FindDocuments(_ context.Context, userID, search, category string) ([]*model.Document, error) {
	result := make([]*model.Document, 0)
	for _, doc := range m.docs {
		if doc.UserID != userID {
			continue
		}
		if category != "" && category != model.AllCategories && doc.Category != category {
			continue
		}
		if search != "" {
			needle := strings.ToLower(search)
			if !strings.Contains(strings.ToLower(doc.Title), needle) &&
				!strings.Contains(strings.ToLower(doc.Content), needle) {
				continue
			}
		}
		copied := *doc
		result = append(result, &copied)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	return result, nil
}

func (m *memoryDocumentStore) FindDocument(_ context.Context, id, userID string) (*model.Document, error) {
	for _, doc := range m.docs {
		if doc.ID == id && doc.UserID == userID {
			copied := *doc
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memoryDocumentStore) UpdateDocument(_ context.Context, id, userID string, updated *model.Document) error {
	for i, doc := range m.docs {
		if doc.ID == id && doc.UserID == userID {
			copied := *updated
			m.docs[i] = &copied
			return nil
		}
	}
	return repository.ErrDocumentNotFound
}

func (m *memoryDocumentStore) DeleteDocument(_ context.Context, id, userID string) error {
	for i, doc := range m.docs {
		if doc.ID == id && doc.UserID == userID {
			m.docs = append(m.docs[:i], m.docs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memoryDocumentStore) ListCategoryValues(_ context.Context, userID string) ([]string, error) {
	owned := make([]*model.Document, 0)
	for _, doc := range m.docs {
		if doc.UserID == userID {
			owned = append(owned, doc)
		}
	}
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].CreatedAt.Before(owned[j].CreatedAt)
	})
	values := make([]string, 0, len(owned))
	for _, doc := range owned {
		values = append(values, doc.Category)
	}
	return values, nil
}

func (m *memoryDocumentStore) CountUserDocuments(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, doc := range m.docs {
		if doc.UserID == userID {
			count++
		}
	}
	return count, nil
}

func setupDocumentRouter(userID string) (*gin.Engine, *usecase.DocumentService) {
	gin.SetMode(gin.TestMode)
	svc := &usecase.DocumentService{Store: &memoryDocumentStore{}}

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	})

	router.GET("/documents", func(c *gin.Context) { ListDocumentsHandler(c, svc) })
	router.GET("/documents/categories", func(c *gin.Context) { ListCategoriesHandler(c, svc) })
	router.POST("/documents", func(c *gin.Context) { CreateDocumentHandler(c, svc) })
	router.GET("/documents/:id", func(c *gin.Context) { GetDocumentHandler(c, svc) })
	router.PUT("/documents/:id", func(c *gin.Context) { UpdateDocumentHandler(c, svc) })
	router.DELETE("/documents/:id", func(c *gin.Context) { DeleteDocumentHandler(c, svc) })
	return router, svc
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func mustCreateDoc(t *testing.T, svc *usecase.DocumentService, userID, title, content, category string) *model.Document {
	t.Helper()
	doc, err := svc.Create(context.Background(), userID, dto.CreateDocumentRequest{
		Title:    title,
		Content:  content,
		Category: category,
	})
	require.NoError(t, err)
	return doc
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var resp utils.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestCreateDocumentHandler(t *testing.T) {
	tests := []struct {
		name          string
		inputJSON     string
		expectedCode  int
		expectedError string
	}{
		{
			name:         "Successful Creation",
			inputJSON:    `{"title": "Q1 Notes", "content": "quarterly numbers", "category": "Reports", "tags": ["finance"]}`,
			expectedCode: http.StatusCreated,
		},
		{
			name:         "Defaults Applied",
			inputJSON:    `{"title": "Bare Minimum", "content": "just text"}`,
			expectedCode: http.StatusCreated,
		},
		{
			name:          "Missing Title",
			inputJSON:     `{"content": "orphan body"}`,
			expectedCode:  http.StatusBadRequest,
			expectedError: "Title is required",
		},
		{
			name:          "Title Too Long",
			inputJSON:     `{"title": "` + strings.Repeat("x", 201) + `", "content": "body"}`,
			expectedCode:  http.StatusBadRequest,
			expectedError: "Title must be less than 200 characters",
		},
		{
			name:          "Malformed JSON",
			inputJSON:     `{"title": `,
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := setupDocumentRouter("test-user")
			w := doJSON(t, router, http.MethodPost, "/documents", tt.inputJSON)

			assert.Equal(t, tt.expectedCode, w.Code)
			resp := decodeResponse(t, w)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, resp.Error)
			} else {
				data, ok := resp.Data.(map[string]interface{})
				require.True(t, ok)
				assert.Equal(t, "test-user", data["user_id"])
				assert.NotEmpty(t, data["id"])
			}
		})
	}

	t.Run("Unauthenticated", func(t *testing.T) {
		router, _ := setupDocumentRouter("")
		w := doJSON(t, router, http.MethodPost, "/documents", `{"title": "T", "content": "C"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestListDocumentsHandler(t *testing.T) {
	seed := func(t *testing.T, svc *usecase.DocumentService) {
		docs := []struct{ title, content, category string }{
			{"Meeting Notes", "sync about the quarterly roadmap", "Work"},
			{"Bread Recipe", "flour, water, salt and patience", "Cooking"},
			{"Tax (draft)", "deductions and the (tax) form", "Finance"},
		}
		for _, d := range docs {
			mustCreateDoc(t, svc, "test-user", d.title, d.content, d.category)
		}
		mustCreateDoc(t, svc, "other-user", "Not Yours", "secret", "Work")
	}

	t.Run("returns only the caller's documents", func(t *testing.T) {
		router, svc := setupDocumentRouter("test-user")
		seed(t, svc)

		w := doJSON(t, router, http.MethodGet, "/documents", "")
		assert.Equal(t, http.StatusOK, w.Code)

		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, float64(3), data["count"])
	})

	t.Run("search and category compose", func(t *testing.T) {
		router, svc := setupDocumentRouter("test-user")
		seed(t, svc)

		w := doJSON(t, router, http.MethodGet, "/documents?q=roadmap&category=Work", "")
		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, float64(1), data["count"])

		w = doJSON(t, router, http.MethodGet, "/documents?q=roadmap&category=Cooking", "")
		resp = decodeResponse(t, w)
		data = resp.Data.(map[string]interface{})
		assert.Equal(t, float64(0), data["count"])
	})

	t.Run("regex metacharacters in the query are literal", func(t *testing.T) {
		router, svc := setupDocumentRouter("test-user")
		seed(t, svc)

		w := doJSON(t, router, http.MethodGet, "/documents?q="+
			"%28tax", "")
		assert.Equal(t, http.StatusOK, w.Code)

		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, float64(1), data["count"])
	})

	t.Run("search term yields highlight segments", func(t *testing.T) {
		router, svc := setupDocumentRouter("test-user")
		seed(t, svc)

		w := doJSON(t, router, http.MethodGet, "/documents?q=meeting", "")
		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		documents := data["documents"].([]interface{})
		require.Len(t, documents, 1)

		doc := documents[0].(map[string]interface{})
		segments := doc["title_segments"].([]interface{})
		require.NotEmpty(t, segments)
		first := segments[0].(map[string]interface{})
		assert.Equal(t, "Meeting", first["text"])
		assert.Equal(t, true, first["matched"])
	})

	t.Run("title sort is requestable", func(t *testing.T) {
		router, svc := setupDocumentRouter("test-user")
		seed(t, svc)

		w := doJSON(t, router, http.MethodGet, "/documents?sort_by=title", "")
		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		documents := data["documents"].([]interface{})
		require.Len(t, documents, 3)
		first := documents[0].(map[string]interface{})
		assert.Equal(t, "Bread Recipe", first["title"])
	})

	t.Run("unauthenticated sees an empty list", func(t *testing.T) {
		router, _ := setupDocumentRouter("")
		w := doJSON(t, router, http.MethodGet, "/documents", "")
		assert.Equal(t, http.StatusOK, w.Code)

		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, float64(0), data["count"])
	})
}

func TestGetDocumentHandler(t *testing.T) {
	router, svc := setupDocumentRouter("test-user")
	doc := mustCreateDoc(t, svc, "test-user", "Mine", "body", "")

	t.Run("found", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/documents/"+doc.ID, "")
		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "Mine", data["title"])
	})

	t.Run("missing", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/documents/no-such-id", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, "Document not found", resp.Error)
	})

	t.Run("foreign document reads as missing", func(t *testing.T) {
		_, otherSvc := setupDocumentRouter("other-user")
		foreign := mustCreateDoc(t, otherSvc, "other-user", "Theirs", "body", "")

		w := doJSON(t, router, http.MethodGet, "/documents/"+foreign.ID, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUpdateDocumentHandler(t *testing.T) {
	router, svc := setupDocumentRouter("test-user")
	doc := mustCreateDoc(t, svc, "test-user", "Before", "unchanged body", "Notes")

	t.Run("partial update", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut, "/documents/"+doc.ID, `{"title": "After"}`)
		assert.Equal(t, http.StatusOK, w.Code)

		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "After", data["title"])
		assert.Equal(t, "unchanged body", data["content"])
		assert.Equal(t, "Notes", data["category"])
	})

	t.Run("validation of the merged result", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut, "/documents/"+doc.ID, `{"title": "  "}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, "Title is required", resp.Error)
	})

	t.Run("missing document", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut, "/documents/no-such-id", `{"title": "X"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteDocumentHandler(t *testing.T) {
	router, svc := setupDocumentRouter("test-user")
	doc := mustCreateDoc(t, svc, "test-user", "Disposable", "body", "")

	w := doJSON(t, router, http.MethodDelete, "/documents/"+doc.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)

	// A second delete of the same id still succeeds
	w = doJSON(t, router, http.MethodDelete, "/documents/"+doc.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/documents/"+doc.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListCategoriesHandler(t *testing.T) {
	t.Run("default pair without documents", func(t *testing.T) {
		router, _ := setupDocumentRouter("test-user")
		w := doJSON(t, router, http.MethodGet, "/documents/categories", "")
		assert.Equal(t, http.StatusOK, w.Code)

		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, []interface{}{"All", "General"}, data["categories"])
	})

	t.Run("distinct categories after All", func(t *testing.T) {
		router, svc := setupDocumentRouter("test-user")
		mustCreateDoc(t, svc, "test-user", "A", "body", "Work")
		mustCreateDoc(t, svc, "test-user", "B", "body", "Work")
		mustCreateDoc(t, svc, "test-user", "C", "body", "Ideas")

		w := doJSON(t, router, http.MethodGet, "/documents/categories", "")
		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, []interface{}{"All", "Work", "Ideas"}, data["categories"])
	})
}

func TestMakeSnippet(t *testing.T) {
	assert.Equal(t, "short", makeSnippet("short"))

	long := strings.Repeat("a", 151)
	snippet := makeSnippet(long)
	assert.Equal(t, strings.Repeat("a", 150)+"...", snippet)

	// Truncation counts runes, not bytes
	wide := strings.Repeat("ü", 151)
	assert.Equal(t, strings.Repeat("ü", 150)+"...", makeSnippet(wide))
}
