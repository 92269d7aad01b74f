package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klass-lk/markpost/internal/model"
	"github.com/klass-lk/markpost/internal/service"
	"github.com/klass-lk/markpost/internal/store/mock"
)

type stubHasher struct{}

func (stubHasher) GetPasswordHash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (stubHasher) IsMatching(hash, password string) bool {
	return hash == "hashed:"+password
}

func newRouter(gated bool) (*gin.Engine, *mock.PostStore) {
	gin.SetMode(gin.TestMode)
	posts := mock.NewPostStore()
	svc := service.NewPostService(posts, stubHasher{}, gated)
	controller := NewPostController(svc, zerolog.Nop())

	engine := gin.New()
	controller.Register(engine.Group("/posts"))
	return engine, posts
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func createPost(t *testing.T, engine *gin.Engine, body string) model.Post {
	t.Helper()
	w := doJSON(t, engine, "POST", "/posts", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var post model.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	return post
}

func TestListPosts_Empty(t *testing.T) {
	engine, _ := newRouter(false)

	w := doJSON(t, engine, "GET", "/posts", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestListPosts_NewestFirst(t *testing.T) {
	engine, _ := newRouter(false)
	createPost(t, engine, `{"title":"old","content":"c","author":"a"}`)
	createPost(t, engine, `{"title":"new","content":"c","author":"a"}`)

	w := doJSON(t, engine, "GET", "/posts", "")
	require.Equal(t, http.StatusOK, w.Code)

	var posts []model.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	require.Len(t, posts, 2)
	assert.Equal(t, "new", posts[0].Title)
	assert.Equal(t, "old", posts[1].Title)
}

func TestCreatePost(t *testing.T) {
	engine, _ := newRouter(false)

	post := createPost(t, engine, `{"title":"First","content":"Hello","author":"Ann"}`)
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, "First", post.Title)
	assert.False(t, post.Date.IsZero())
}

func TestCreatePost_MissingFields(t *testing.T) {
	engine, _ := newRouter(false)

	w := doJSON(t, engine, "POST", "/posts", `{"title":"only title"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_FIELDS")
}

func TestCreatePost_PasswordNeverSerialized(t *testing.T) {
	engine, _ := newRouter(true)

	w := doJSON(t, engine, "POST", "/posts", `{"title":"t","content":"c","author":"a","password":"secret"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "secret")

	w = doJSON(t, engine, "GET", "/posts", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")
}

func TestGetPost(t *testing.T) {
	engine, _ := newRouter(false)
	created := createPost(t, engine, `{"title":"t","content":"c","author":"a"}`)

	t.Run("found", func(t *testing.T) {
		w := doJSON(t, engine, "GET", "/posts/"+created.ID, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"title":"t"`)
	})

	t.Run("invalid id", func(t *testing.T) {
		w := doJSON(t, engine, "GET", "/posts/abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_ID")
	})

	t.Run("not found", func(t *testing.T) {
		w := doJSON(t, engine, "GET", "/posts/999", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "NOT_FOUND")
	})
}

func TestUpdatePost(t *testing.T) {
	engine, _ := newRouter(false)
	created := createPost(t, engine, `{"title":"A","content":"B","author":"C"}`)

	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		w := doJSON(t, engine, "PATCH", "/posts/"+created.ID, `{"title":"Z"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var post model.Post
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
		assert.Equal(t, "Z", post.Title)
		assert.Equal(t, "B", post.Content)
		assert.Equal(t, "C", post.Author)
	})

	t.Run("post alias", func(t *testing.T) {
		w := doJSON(t, engine, "POST", "/posts/"+created.ID, `{"author":"D"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("no fields", func(t *testing.T) {
		w := doJSON(t, engine, "PATCH", "/posts/"+created.ID, `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "NO_FIELDS_PROVIDED")
	})

	t.Run("malformed body is a syntax error, not a field error", func(t *testing.T) {
		w := doJSON(t, engine, "PATCH", "/posts/"+created.ID, `{"title":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "BAD_REQUEST")
		assert.NotContains(t, w.Body.String(), "NO_FIELDS_PROVIDED")
	})

	t.Run("not found", func(t *testing.T) {
		w := doJSON(t, engine, "PATCH", "/posts/999", `{"title":"Z"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUpdatePost_Gated(t *testing.T) {
	engine, _ := newRouter(true)
	created := createPost(t, engine, `{"title":"t","content":"c","author":"a","password":"secret"}`)

	w := doJSON(t, engine, "PATCH", "/posts/"+created.ID, `{"title":"X","password":"wrong"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")

	w = doJSON(t, engine, "PATCH", "/posts/"+created.ID, `{"title":"X","password":"secret"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeletePost(t *testing.T) {
	engine, _ := newRouter(false)
	created := createPost(t, engine, `{"title":"t","content":"c","author":"a"}`)

	w := doJSON(t, engine, "DELETE", "/posts/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)

	var deleted model.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &deleted))
	assert.Equal(t, "t", deleted.Title)

	w = doJSON(t, engine, "GET", "/posts/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeletePost_PostAlias(t *testing.T) {
	engine, _ := newRouter(false)
	created := createPost(t, engine, `{"title":"t","content":"c","author":"a"}`)

	w := doJSON(t, engine, "POST", "/posts/"+created.ID+"/delete", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeletePost_Gated(t *testing.T) {
	engine, _ := newRouter(true)
	created := createPost(t, engine, `{"title":"t","content":"c","author":"a","password":"secret"}`)

	w := doJSON(t, engine, "DELETE", "/posts/"+created.ID, `{"password":"wrong"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, engine, "DELETE", "/posts/"+created.ID, `{"password":"secret"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStoreFailure_GenericError(t *testing.T) {
	engine, posts := newRouter(false)
	posts.FailWith = errors.New("connection refused: internal-db-host:5432")

	w := doJSON(t, engine, "GET", "/posts", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	// Driver details must not leak to the caller.
	assert.NotContains(t, w.Body.String(), "internal-db-host")
}
