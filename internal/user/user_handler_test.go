package user_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"timeclock/internal/user"
	usererrors "timeclock/internal/user/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeUserService struct {
	getAllFn  func(ctx context.Context) ([]user.UserResponse, error)
	getByIDFn func(ctx context.Context, id string) (user.UserResponse, error)
	createFn  func(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error)
	updateFn  func(ctx context.Context, id string, req user.UpdateUserRequest) (user.UserResponse, error)
}

func (f *fakeUserService) GetAll(ctx context.Context) ([]user.UserResponse, error) {
	return f.getAllFn(ctx)
}

func (f *fakeUserService) GetByID(ctx context.Context, id string) (user.UserResponse, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeUserService) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	return f.createFn(ctx, req)
}

func (f *fakeUserService) Update(ctx context.Context, id string, req user.UpdateUserRequest) (user.UserResponse, error) {
	return f.updateFn(ctx, id, req)
}

func TestUserHandler_Create(t *testing.T) {
	svc := &fakeUserService{
		createFn: func(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
			assert.Equal(t, "jdoe", req.Username)
			assert.Equal(t, user.RoleEmployee, req.Role)
			return user.UserResponse{ID: uuid.New().String(), Username: req.Username, Role: req.Role, Active: true}, nil
		},
	}

	h := user.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"username":"jdoe","password":"secret123","role":"employee","department":"Kitchen"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
}

func TestUserHandler_Create_ValidationError(t *testing.T) {
	svc := &fakeUserService{}

	h := user.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	// Role outside admin|employee fails binding.
	body := `{"username":"jdoe","password":"secret123","role":"manager"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
}

func TestUserHandler_Create_UsernameTaken(t *testing.T) {
	svc := &fakeUserService{
		createFn: func(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
			return user.UserResponse{}, usererrors.ErrUsernameTaken
		},
	}

	h := user.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"username":"jdoe","password":"secret123","role":"employee"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUserHandler_Update(t *testing.T) {
	id := uuid.New().String()
	svc := &fakeUserService{
		updateFn: func(ctx context.Context, uid string, req user.UpdateUserRequest) (user.UserResponse, error) {
			assert.Equal(t, id, uid)
			assert.NotNil(t, req.StaffHouse)
			assert.True(t, *req.StaffHouse)
			return user.UserResponse{ID: uid, StaffHouse: true}, nil
		},
	}

	h := user.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/users/"+id, strings.NewReader(`{"staff_house":true}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: id}}

	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserHandler_GetAll(t *testing.T) {
	svc := &fakeUserService{
		getAllFn: func(ctx context.Context) ([]user.UserResponse, error) {
			return []user.UserResponse{{ID: uuid.New().String(), Username: "alice"}}, nil
		},
	}

	h := user.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/users", nil)

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
}
