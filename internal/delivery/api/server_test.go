package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"scribe/config"
	apimiddleware "scribe/internal/delivery/api/middleware"
	"scribe/internal/delivery/api/router"
	"scribe/internal/delivery/api/router/handler"
	"scribe/internal/domain/entity"
	"scribe/internal/domain/result"
	"scribe/internal/domain/service"
	"scribe/internal/infra/auth"
	"scribe/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuthUsecase struct{ mock.Mock }

func (m *mockAuthUsecase) Authenticate(ctx context.Context, input usecase.AuthenticateInput) *result.Result {
	return m.Called(ctx, input).Get(0).(*result.Result)
}

type mockUserUsecase struct{ mock.Mock }

func (m *mockUserUsecase) CreateUser(ctx context.Context, input usecase.CreateUserInput) *result.Result {
	return m.Called(ctx, input).Get(0).(*result.Result)
}

func (m *mockUserUsecase) ListUsers(ctx context.Context, requester *entity.Identity) *result.Result {
	return m.Called(ctx, requester).Get(0).(*result.Result)
}

func (m *mockUserUsecase) GetUser(ctx context.Context, requester *entity.Identity, name string) *result.Result {
	return m.Called(ctx, requester, name).Get(0).(*result.Result)
}

func (m *mockUserUsecase) UpdateUser(ctx context.Context, requester *entity.Identity, name string, input usecase.UpdateUserInput) *result.Result {
	return m.Called(ctx, requester, name, input).Get(0).(*result.Result)
}

func (m *mockUserUsecase) DeleteUser(ctx context.Context, requester *entity.Identity, name string) *result.Result {
	return m.Called(ctx, requester, name).Get(0).(*result.Result)
}

type mockBlogPostUsecase struct{ mock.Mock }

func (m *mockBlogPostUsecase) ListBlogPosts(ctx context.Context) *result.Result {
	return m.Called(ctx).Get(0).(*result.Result)
}

func (m *mockBlogPostUsecase) GetBlogPost(ctx context.Context, id string) *result.Result {
	return m.Called(ctx, id).Get(0).(*result.Result)
}

func (m *mockBlogPostUsecase) CreateBlogPost(ctx context.Context, requester *entity.Identity, input usecase.CreateBlogPostInput) *result.Result {
	return m.Called(ctx, requester, input).Get(0).(*result.Result)
}

func (m *mockBlogPostUsecase) UpdateBlogPost(ctx context.Context, requester *entity.Identity, id string, input usecase.UpdateBlogPostInput) *result.Result {
	return m.Called(ctx, requester, id, input).Get(0).(*result.Result)
}

func (m *mockBlogPostUsecase) DeleteBlogPost(ctx context.Context, requester *entity.Identity, id string) *result.Result {
	return m.Called(ctx, requester, id).Get(0).(*result.Result)
}

func (m *mockBlogPostUsecase) ShareCode(ctx context.Context, id string) ([]byte, *result.Result) {
	args := m.Called(ctx, id)
	png, _ := args.Get(0).([]byte)

	return png, args.Get(1).(*result.Result)
}

type mockTagUsecase struct{ mock.Mock }

func (m *mockTagUsecase) ListTags(ctx context.Context) *result.Result {
	return m.Called(ctx).Get(0).(*result.Result)
}

func (m *mockTagUsecase) GetTag(ctx context.Context, name string) *result.Result {
	return m.Called(ctx, name).Get(0).(*result.Result)
}

func (m *mockTagUsecase) CreateTag(ctx context.Context, requester *entity.Identity, name string) *result.Result {
	return m.Called(ctx, requester, name).Get(0).(*result.Result)
}

func (m *mockTagUsecase) RenameTag(ctx context.Context, requester *entity.Identity, name, newName string) *result.Result {
	return m.Called(ctx, requester, name, newName).Get(0).(*result.Result)
}

func (m *mockTagUsecase) DeleteTag(ctx context.Context, requester *entity.Identity, name string) *result.Result {
	return m.Called(ctx, requester, name).Get(0).(*result.Result)
}

type apiFixtures struct {
	echo     *echo.Echo
	tokens   service.TokenService
	authUC   *mockAuthUsecase
	userUC   *mockUserUsecase
	postUC   *mockBlogPostUsecase
	tagUC    *mockTagUsecase
	adaToken string
}

func createTestAPI(t *testing.T) apiFixtures {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{Auth: config.AuthConfig{TokenSecret: "api-test-secret", TokenTTL: time.Minute}}
	cfg.HTTP.MaxRequestBodySize = "100KB"

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	adaToken, err := tokens.Issue(entity.Identity{Name: "Ada Lovelace", Role: entity.RoleContributor})
	require.NoError(t, err)

	f := apiFixtures{
		tokens:   tokens,
		authUC:   &mockAuthUsecase{},
		userUC:   &mockUserUsecase{},
		postUC:   &mockBlogPostUsecase{},
		tagUC:    &mockTagUsecase{},
		adaToken: adaToken,
	}
	t.Cleanup(func() {
		f.authUC.AssertExpectations(t)
		f.userUC.AssertExpectations(t)
		f.postUC.AssertExpectations(t)
		f.tagUC.AssertExpectations(t)
	})

	routerParams := router.RouterParams{
		AuthHandler:     handler.NewAuthHandler(handler.AuthHandlerParams{AuthUC: f.authUC, Logger: logger}),
		UserHandler:     handler.NewUserHandler(handler.UserHandlerParams{UserUC: f.userUC, Logger: logger}),
		BlogPostHandler: handler.NewBlogPostHandler(handler.BlogPostHandlerParams{BlogPostUC: f.postUC, Logger: logger}),
		TagHandler:      handler.NewTagHandler(handler.TagHandlerParams{TagUC: f.tagUC, Logger: logger}),
		AuthMiddleware:  apimiddleware.NewAuthMiddleware(tokens, logger),
	}
	f.echo = newEcho(cfg, logger, apimiddleware.NewErrorMiddleware(logger), routerParams)

	return f
}

func (f apiFixtures) do(method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)

	return rec
}

var ada = &entity.Identity{Name: "Ada Lovelace", Role: entity.RoleContributor}

func TestHealth(t *testing.T) {
	f := createTestAPI(t)

	rec := f.do(http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestAuthenticateRoute(t *testing.T) {
	f := createTestAPI(t)
	f.authUC.On("Authenticate", mock.Anything, usecase.AuthenticateInput{Name: "Ada Lovelace", Password: "Pattycakes"}).
		Return(result.Success(usecase.KeyToken, "t0k3n")).Once()

	rec := f.do(http.MethodPost, "/api/authenticate", `{"name":"Ada Lovelace","password":"Pattycakes"}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success","data":{"token":"t0k3n"}}`, rec.Body.String())
}

func TestProtectedRouteTokenErrors(t *testing.T) {
	f := createTestAPI(t)

	tests := []struct {
		name   string
		header map[string]string
		want   string
	}{
		{name: "missing", want: `{"status":"fail","data":{"token":"An access token is required."}}`},
		{name: "garbage", header: map[string]string{echo.HeaderAuthorization: "Bearer nope"},
			want: `{"status":"fail","data":{"token":"Your access token is invalid or expired."}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(http.MethodGet, "/api/users", "", tt.header)

			assert.Equal(t, http.StatusForbidden, rec.Code)
			assert.JSONEq(t, tt.want, rec.Body.String())
		})
	}
}

func TestAuthenticatedButDeniedIsOK(t *testing.T) {
	f := createTestAPI(t)
	f.userUC.On("ListUsers", mock.Anything, ada).
		Return(result.FailField("role", "You do not have access to this resource.")).Once()

	rec := f.do(http.MethodGet, "/api/users", "", map[string]string{echo.HeaderAuthorization: "Bearer " + f.adaToken})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"fail","data":{"role":"You do not have access to this resource."}}`, rec.Body.String())
}

func TestTokenInBodyFallback(t *testing.T) {
	f := createTestAPI(t)
	newName := "Ada King"
	f.userUC.On("UpdateUser", mock.Anything, ada, "Ada Lovelace", usecase.UpdateUserInput{Name: &newName}).
		Return(result.Success(usecase.KeyUser, usecase.UserView{Name: "Ada King", Role: "contributor"})).Once()

	rec := f.do(http.MethodPut, "/api/users/Ada%20Lovelace", `{"token":"`+f.adaToken+`","name":"Ada King"}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success","data":{"user":{"name":"Ada King","role":"contributor"}}}`, rec.Body.String())
}

func TestErrorOutcomeIs500(t *testing.T) {
	f := createTestAPI(t)
	f.postUC.On("CreateBlogPost", mock.Anything, ada, usecase.CreateBlogPostInput{Title: "Hi", Tags: []string{"go"}}).
		Return(result.Error(usecase.ErrMsgCreatingBlogPost)).Once()

	rec := f.do(http.MethodPost, "/api/blog-posts", `{"title":"Hi","tags":["go"]}`,
		map[string]string{echo.HeaderAuthorization: "Bearer " + f.adaToken})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"status":"error","message":"Error creating blog post."}`, rec.Body.String())
}

func TestMalformedBodyIs400(t *testing.T) {
	f := createTestAPI(t)

	rec := f.do(http.MethodPost, "/api/users", `{"name":`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"status":"error","message":"The request body could not be parsed."}`, rec.Body.String())
}

func TestShareCodeRoute(t *testing.T) {
	f := createTestAPI(t)
	png := []byte("\x89PNG")
	f.postUC.On("ShareCode", mock.Anything, "7").Return(png, result.Success(usecase.KeyShareURL, "https://x/blog-posts/7")).Once()
	f.postUC.On("ShareCode", mock.Anything, "nope").Return(nil, result.FailField(usecase.FieldID, usecase.MsgIDNotInteger)).Once()

	rec := f.do(http.MethodGet, "/api/blog-posts/7/qr", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, png, rec.Body.Bytes())

	rec = f.do(http.MethodGet, "/api/blog-posts/nope/qr", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"fail","data":{"id":"ID must be an integer."}}`, rec.Body.String())
}

func TestTagRoutes(t *testing.T) {
	f := createTestAPI(t)
	f.tagUC.On("ListTags", mock.Anything).Return(result.Success(usecase.KeyTags, []usecase.TagView{{Name: "go"}})).Once()
	f.tagUC.On("RenameTag", mock.Anything, ada, "go", "golang").
		Return(result.FailField("admin", "You must be an admin to perform this action.")).Once()

	rec := f.do(http.MethodGet, "/api/tags", "", nil)
	assert.JSONEq(t, `{"status":"success","data":{"tags":[{"name":"go"}]}}`, rec.Body.String())

	rec = f.do(http.MethodPut, "/api/tags/go", `{"name":"golang"}`, map[string]string{echo.HeaderAuthorization: "Bearer " + f.adaToken})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"fail","data":{"admin":"You must be an admin to perform this action."}}`, rec.Body.String())
}

func TestUnknownRouteIs404(t *testing.T) {
	f := createTestAPI(t)

	rec := f.do(http.MethodGet, "/api/nothing", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"status":"error","message":"Not Found"}`, rec.Body.String())
}
