package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/phonglv-dn/instagram-clone-be/internal/model"
	"github.com/phonglv-dn/instagram-clone-be/internal/repository/interfaces"
	"github.com/phonglv-dn/instagram-clone-be/internal/service"
	"github.com/phonglv-dn/instagram-clone-be/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memUserRepo 是内存中的 UserRepository
type memUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*model.User
}

func (r *memUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return interfaces.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *memUserRepo) find(id string) *model.User {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	return r.users[oid]
}

func (r *memUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u := r.find(id); u != nil {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(ctx context.Context, id string, update model.ProfileUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.find(id)
	if u == nil {
		return interfaces.ErrNotFound
	}
	if update.FullName != nil {
		u.FullName = *update.FullName
	}
	if update.ProfilePicture != nil {
		u.ProfilePicture = *update.ProfilePicture
	}
	if update.Password != nil {
		u.Password = *update.Password
	}
	return nil
}

func (r *memUserRepo) SoftDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.find(id)
	if u == nil {
		return interfaces.ErrNotFound
	}
	u.IsDeleted = true
	return nil
}

func (r *memUserRepo) AddFollow(ctx context.Context, followerID, targetID string) error {
	return nil
}

func (r *memUserRepo) RemoveFollow(ctx context.Context, followerID, targetID string) error {
	return nil
}

// memPostRepo 是内存中的 PostRepository
type memPostRepo struct {
	mu    sync.Mutex
	users *memUserRepo
	posts []*model.Post
	clock time.Time
}

func (r *memPostRepo) Create(ctx context.Context, post *model.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clock = r.clock.Add(time.Second)
	post.ID = primitive.NewObjectID()
	post.CreatedAt = r.clock
	stored := *post
	r.posts = append(r.posts, &stored)
	return nil
}

func (r *memPostRepo) find(id string) *model.Post {
	for _, p := range r.posts {
		if p.ID.Hex() == id {
			return p
		}
	}
	return nil
}

func (r *memPostRepo) detail(p *model.Post) *model.PostDetail {
	d := &model.PostDetail{Post: *p}
	if u, _ := r.users.FindByID(context.Background(), p.CreatorID.Hex()); u != nil {
		d.Creator = &model.Creator{ID: u.ID, Username: u.Username, ProfilePicture: u.ProfilePicture}
	}
	return d
}

func (r *memPostRepo) FindByID(ctx context.Context, id string) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p := r.find(id); p != nil {
		copied := *p
		return &copied, nil
	}
	return nil, nil
}

func (r *memPostRepo) FindDetailByID(ctx context.Context, id string) (*model.PostDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p := r.find(id); p != nil {
		return r.detail(p), nil
	}
	return nil, nil
}

func (r *memPostRepo) active() []*model.Post {
	var active []*model.Post
	for _, p := range r.posts {
		if !p.IsDeleted {
			active = append(active, p)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].CreatedAt.After(active[j].CreatedAt)
	})
	return active
}

func (r *memPostRepo) CountActive(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.active())), nil
}

func (r *memPostRepo) ListActive(ctx context.Context, skip int64, limit int) ([]*model.PostDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	results := []*model.PostDetail{}
	for i, p := range r.active() {
		if int64(i) >= skip && len(results) < limit {
			results = append(results, r.detail(p))
		}
	}
	return results, nil
}

func (r *memPostRepo) UpdateCaption(ctx context.Context, id, caption string) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.find(id)
	if p == nil {
		return nil, nil
	}
	p.Caption = caption
	copied := *p
	return &copied, nil
}

func (r *memPostRepo) SoftDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.find(id)
	if p == nil {
		return interfaces.ErrNotFound
	}
	p.IsDeleted = true
	return nil
}

func (r *memPostRepo) AddLike(ctx context.Context, id, userID string) (*model.Post, error) {
	return nil, nil
}

func (r *memPostRepo) RemoveLike(ctx context.Context, id, userID string) (*model.Post, error) {
	return nil, nil
}

func (r *memPostRepo) AddComment(ctx context.Context, id string, comment model.Comment) (*model.Post, error) {
	return nil, nil
}

type fakeUploader struct{}

func (fakeUploader) Upload(ctx context.Context, file *multipart.FileHeader, kind string) (string, error) {
	return "http://cdn.test/" + kind + "/" + file.Filename, nil
}

type client struct {
	t      *testing.T
	router *gin.Engine
}

func newClient(t *testing.T) *client {
	gin.SetMode(gin.TestMode)
	users := &memUserRepo{users: map[primitive.ObjectID]*model.User{}}
	posts := &memPostRepo{users: users, clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

	router := NewRouter(Deps{
		UserService: service.NewUserService(users, nil),
		PostService: service.NewPostService(posts, users, nil),
		Tokens:      util.NewTokenService("e2e-secret", util.TokenTTL),
		Uploader:    fakeUploader{},
		FrontendURL: "*",
	})
	return &client{t: t, router: router}
}

func (c *client) do(method, path, token string, body *bytes.Buffer, contentType string) (int, map[string]any) {
	c.t.Helper()
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w.Code, resp
}

func (c *client) json(method, path, token, body string) (int, map[string]any) {
	return c.do(method, path, token, bytes.NewBufferString(body), "application/json")
}

func (c *client) register(username string) string {
	c.t.Helper()
	status, resp := c.json(http.MethodPost, "/api/auth/register", "",
		fmt.Sprintf(`{"username":%q,"email":"%s@x.com","password":"pw1","fullName":"%s A"}`, username, username, username))
	require.Equal(c.t, http.StatusCreated, status)
	return resp["token"].(string)
}

func (c *client) createPost(token, caption string) string {
	c.t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(c.t, writer.WriteField("caption", caption))
	part, err := writer.CreateFormFile("image", "photo.jpg")
	require.NoError(c.t, err)
	_, _ = part.Write([]byte("jpeg"))
	require.NoError(c.t, writer.Close())

	status, resp := c.do(http.MethodPost, "/api/posts", token, body, writer.FormDataContentType())
	require.Equal(c.t, http.StatusCreated, status)
	return resp["_id"].(string)
}

func TestRootRoute(t *testing.T) {
	c := newClient(t)
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Instagram Clone API", w.Body.String())
}

func TestAuthFlow(t *testing.T) {
	c := newClient(t)

	token := c.register("alice")
	assert.NotEmpty(t, token)

	status, resp := c.json(http.MethodPost, "/api/auth/register", "",
		`{"username":"alice2","email":"alice@x.com","password":"pw2","fullName":"Other"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "User already exists", resp["message"])

	status, resp = c.json(http.MethodPost, "/api/auth/login", "", `{"email":"alice@x.com","password":"wrong"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid credentials", resp["message"])

	status, resp = c.json(http.MethodPost, "/api/auth/login", "", `{"email":"alice@x.com","password":"pw1"}`)
	require.Equal(t, http.StatusOK, status)
	user := resp["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "alice A", user["fullName"])

	status, resp = c.json(http.MethodGet, "/api/auth/profile", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "No token, authorization denied", resp["message"])

	status, resp = c.json(http.MethodGet, "/api/auth/profile", token, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice@x.com", resp["email"])
	assert.NotContains(t, resp, "password")

	status, resp = c.json(http.MethodPut, "/api/auth/profile", token, `{"fullName":"Alice B"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Profile updated successfully", resp["message"])

	status, _ = c.json(http.MethodDelete, "/api/auth/profile", token, "")
	require.Equal(t, http.StatusOK, status)

	// 注销后无法登录
	status, _ = c.json(http.MethodPost, "/api/auth/login", "", `{"email":"alice@x.com","password":"pw1"}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestPostFlow(t *testing.T) {
	c := newClient(t)
	alice := c.register("alice")
	bob := c.register("bob")

	id := c.createPost(alice, "first")

	status, resp := c.json(http.MethodGet, "/api/posts/"+id, "", "")
	require.Equal(t, http.StatusOK, status)
	creator := resp["creatorId"].(map[string]any)
	assert.Equal(t, "alice", creator["username"])
	assert.Equal(t, "http://cdn.test/posts/photo.jpg", resp["imageUrl"])

	// 非作者不能修改或删除
	status, resp = c.json(http.MethodPut, "/api/posts/"+id, bob, `{"caption":"hacked"}`)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "You are not authorized to update this post", resp["message"])
	status, _ = c.json(http.MethodDelete, "/api/posts/"+id, bob, "")
	assert.Equal(t, http.StatusForbidden, status)

	_, resp = c.json(http.MethodGet, "/api/posts/"+id, "", "")
	assert.Equal(t, "first", resp["caption"])

	status, resp = c.json(http.MethodPut, "/api/posts/"+id, alice, `{"caption":"edited"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "edited", resp["caption"])

	status, resp = c.json(http.MethodDelete, "/api/posts/"+id, alice, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Post deleted successfully", resp["message"])

	// 已删除的帖子不在列表中，但详情仍可查询
	_, resp = c.json(http.MethodGet, "/api/posts", "", "")
	assert.Equal(t, float64(0), resp["count"])
	status, resp = c.json(http.MethodGet, "/api/posts/"+id, "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, resp["isDeleted"])

	status, resp = c.json(http.MethodGet, "/api/posts/"+primitive.NewObjectID().Hex(), "", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Post not found", resp["message"])
}

func TestListPagination(t *testing.T) {
	c := newClient(t)
	alice := c.register("alice")

	var newest string
	for i := 0; i < 25; i++ {
		newest = c.createPost(alice, fmt.Sprintf("post %d", i))
	}

	status, resp := c.json(http.MethodGet, "/api/posts?page=1&limit=10", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(25), resp["count"])
	assert.Equal(t, float64(3), resp["totalPages"])
	assert.Equal(t, "/api/posts?page=2&limit=10", resp["next"])
	assert.Nil(t, resp["prev"])
	results := resp["results"].([]any)
	require.Len(t, results, 10)
	assert.Equal(t, newest, results[0].(map[string]any)["_id"])

	_, resp = c.json(http.MethodGet, "/api/posts?page=3&limit=10", "", "")
	assert.Len(t, resp["results"], 5)
	assert.Nil(t, resp["next"])
	assert.Equal(t, "/api/posts?page=2&limit=10", resp["prev"])

	_, resp = c.json(http.MethodGet, "/api/posts?page=4&limit=10", "", "")
	assert.Empty(t, resp["results"])
	assert.Nil(t, resp["next"])
	assert.Equal(t, "/api/posts?page=3&limit=10", resp["prev"])
}
