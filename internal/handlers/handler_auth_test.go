package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shelfpub/shelfpub_backend/internal/apperrors"
	"github.com/shelfpub/shelfpub_backend/internal/core/domain"
	portssvc "github.com/shelfpub/shelfpub_backend/internal/core/ports/services"
	"github.com/shelfpub/shelfpub_backend/internal/dto"
	"github.com/shelfpub/shelfpub_backend/internal/handlers"
	"github.com/shelfpub/shelfpub_backend/internal/platform/config"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Mock GoogleAuthService ---
type MockGoogleAuthService struct {
	mock.Mock
}

func (m *MockGoogleAuthService) VerifyIDToken(ctx context.Context, credential string) (*idtoken.Payload, error) {
	args := m.Called(ctx, credential)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*idtoken.Payload), args.Error(1)
}

func (m *MockGoogleAuthService) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}

func (m *MockGoogleAuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

var _ portssvc.GoogleAuthSvcFacade = (*MockGoogleAuthService)(nil)

// --- Mock SessionService ---
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Create(ctx context.Context, subjectID string) (string, error) {
	args := m.Called(ctx, subjectID)
	return args.String(0), args.Error(1)
}

func (m *MockSessionService) Lookup(ctx context.Context, handle string) (string, error) {
	args := m.Called(ctx, handle)
	return args.String(0), args.Error(1)
}

func (m *MockSessionService) Destroy(ctx context.Context, handle string) error {
	args := m.Called(ctx, handle)
	return args.Error(0)
}

var _ portssvc.SessionSvcFacade = (*MockSessionService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GetToken(ctx context.Context, subjectID string, kind domain.TokenKind) (string, error) {
	args := m.Called(ctx, subjectID, kind)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) StoreTokens(ctx context.Context, subjectID, accessToken, refreshToken string) error {
	args := m.Called(ctx, subjectID, accessToken, refreshToken)
	return args.Error(0)
}

func (m *MockTokenService) ClearTokens(ctx context.Context, subjectID string) error {
	args := m.Called(ctx, subjectID)
	return args.Error(0)
}

func (m *MockTokenService) GetParam(ctx context.Context, subjectID, param string) (string, error) {
	args := m.Called(ctx, subjectID, param)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) StoreParam(ctx context.Context, subjectID, param, value string) error {
	args := m.Called(ctx, subjectID, param, value)
	return args.Error(0)
}

func (m *MockTokenService) Refresh(ctx context.Context, subjectID string) error {
	args := m.Called(ctx, subjectID)
	return args.Error(0)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Mock PublishService ---
type MockPublishService struct {
	mock.Mock
}

func (m *MockPublishService) Publish(ctx context.Context, subjectID, sheetID, externalPath string) error {
	args := m.Called(ctx, subjectID, sheetID, externalPath)
	return args.Error(0)
}

func (m *MockPublishService) PublishAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ portssvc.PublishSvcFacade = (*MockPublishService)(nil)

// --- Mock FeedService ---
type MockFeedService struct {
	mock.Mock
}

func (m *MockFeedService) GetFeed(ctx context.Context, externalPath string) ([]domain.BookEntry, error) {
	args := m.Called(ctx, externalPath)
	var entries []domain.BookEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.BookEntry)
	}
	return entries, args.Error(1)
}

var _ portssvc.FeedSvcFacade = (*MockFeedService)(nil)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockAuth    *MockGoogleAuthService
	mockSession *MockSessionService
	mockToken   *MockTokenService
	mockPublish *MockPublishService
	mockFeed    *MockFeedService
}

func (s *HandlerTestSuite) SetupTest() {
	s.mockAuth = new(MockGoogleAuthService)
	s.mockSession = new(MockSessionService)
	s.mockToken = new(MockTokenService)
	s.mockPublish = new(MockPublishService)
	s.mockFeed = new(MockFeedService)

	cfg := &config.Config{
		IsProduction:      true, // keeps swagger out of the test router
		SessionSecret:     "test-secret",
		SessionTTL:        time.Hour,
		SessionCookieName: "session",
		SessionIssuer:     "shelfpub-backend",
		StaticDir:         s.T().TempDir(),
	}

	services := &portssvc.ServiceContainer{
		GoogleAuth: s.mockAuth,
		Session:    s.mockSession,
		Token:      s.mockToken,
		Publish:    s.mockPublish,
		Feed:       s.mockFeed,
	}

	s.router = gin.New()
	handlers.RegisterRoutes(s.router, cfg, services)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

// serve runs a request through the router and returns the recorder.
func (s *HandlerTestSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// apiRequest builds a request carrying the header the frontend sends on every
// API call.
func apiRequest(method, target string, body string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("X-Requested-With", "XmlHttpRequest")
	return req
}

// withSession attaches a session cookie that the mock resolves to subjectID.
func (s *HandlerTestSuite) withSession(req *http.Request, subjectID string) {
	req.AddCookie(&http.Cookie{Name: "session", Value: "handle-" + subjectID})
	s.mockSession.On("Lookup", mock.Anything, "handle-"+subjectID).Return(subjectID, nil)
}

// expectAuthParams wires the three reads behind the common response body.
func (s *HandlerTestSuite) expectAuthParams(subjectID, token, sheetID, externalPath string) {
	s.mockToken.On("GetToken", mock.Anything, subjectID, domain.TokenAccess).Return(token, nil)
	s.mockToken.On("GetParam", mock.Anything, subjectID, domain.ParamSheetID).Return(sheetID, nil)
	s.mockToken.On("GetParam", mock.Anything, subjectID, domain.ParamExternalPath).Return(externalPath, nil)
}

func (s *HandlerTestSuite) decodeParams(w *httptest.ResponseRecorder) dto.AuthParamsResponse {
	var resp dto.AuthParamsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// --- /login ---

func (s *HandlerTestSuite) TestLoginRequiresHeader() {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"credential":"cred"}`))
	req.Header.Set("Content-Type", "application/json")

	w := s.serve(req)
	s.Equal(http.StatusBadRequest, w.Code)
	s.mockAuth.AssertNotCalled(s.T(), "VerifyIDToken", mock.Anything, mock.Anything)
}

func (s *HandlerTestSuite) TestLoginRejectsMissingCredential() {
	w := s.serve(apiRequest(http.MethodPost, "/login", `{}`))
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestLoginRejectsInvalidCredential() {
	s.mockAuth.On("VerifyIDToken", mock.Anything, "bad-cred").
		Return(nil, apperrors.ErrInvalidCredential)

	w := s.serve(apiRequest(http.MethodPost, "/login", `{"credential":"bad-cred"}`))
	s.Equal(http.StatusUnauthorized, w.Code)
	s.mockSession.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *HandlerTestSuite) TestLoginOpensSession() {
	s.mockAuth.On("VerifyIDToken", mock.Anything, "good-cred").
		Return(&idtoken.Payload{Subject: "sub-1"}, nil)
	s.mockSession.On("Create", mock.Anything, "sub-1").Return("signed-handle", nil)
	s.expectAuthParams("sub-1", "access-1", "sheet-1", "alice")

	w := s.serve(apiRequest(http.MethodPost, "/login", `{"credential":"good-cred"}`))
	s.Require().Equal(http.StatusOK, w.Code)

	resp := s.decodeParams(w)
	s.Equal("access-1", resp.Token)
	s.Equal("sheet-1", resp.SheetID)
	s.Equal("alice", resp.ExternalPath)

	cookies := w.Result().Cookies()
	s.Require().Len(cookies, 1)
	s.Equal("session", cookies[0].Name)
	s.Equal("signed-handle", cookies[0].Value)
	s.True(cookies[0].HttpOnly)
}

// --- /auth ---

func (s *HandlerTestSuite) TestAuthorizeStoresTokenPair() {
	req := httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader("code=auth-code"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Requested-With", "XmlHttpRequest")
	s.withSession(req, "sub-1")

	s.mockAuth.On("ExchangeCode", mock.Anything, "auth-code").
		Return(&oauth2.Token{AccessToken: "access-new", RefreshToken: "refresh-new"}, nil)
	s.mockToken.On("StoreTokens", mock.Anything, "sub-1", "access-new", "refresh-new").Return(nil)
	s.expectAuthParams("sub-1", "access-new", "", "")

	w := s.serve(req)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("access-new", s.decodeParams(w).Token)
	s.mockToken.AssertExpectations(s.T())
}

func (s *HandlerTestSuite) TestAuthorizeRequiresCode() {
	req := apiRequest(http.MethodPost, "/auth", "")
	s.withSession(req, "sub-1")

	w := s.serve(req)
	s.Equal(http.StatusBadRequest, w.Code)
	s.mockAuth.AssertNotCalled(s.T(), "ExchangeCode", mock.Anything, mock.Anything)
}

// --- /token ---

func (s *HandlerTestSuite) TestTokenRequiresSession() {
	w := s.serve(apiRequest(http.MethodGet, "/token", ""))
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlerTestSuite) TestTokenRejectsDeadSession() {
	req := apiRequest(http.MethodGet, "/token", "")
	req.AddCookie(&http.Cookie{Name: "session", Value: "stale-handle"})
	s.mockSession.On("Lookup", mock.Anything, "stale-handle").
		Return("", apperrors.ErrNotFound)

	w := s.serve(req)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlerTestSuite) TestTokenReturnsStoredToken() {
	req := apiRequest(http.MethodGet, "/token", "")
	s.withSession(req, "sub-1")
	s.expectAuthParams("sub-1", "access-1", "sheet-1", "alice")

	w := s.serve(req)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("access-1", s.decodeParams(w).Token)
}

func (s *HandlerTestSuite) TestTokenWithoutStoredToken() {
	req := apiRequest(http.MethodGet, "/token", "")
	s.withSession(req, "sub-1")
	s.expectAuthParams("sub-1", "", "sheet-1", "alice")

	w := s.serve(req)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *HandlerTestSuite) TestTokenRefreshFailure() {
	req := apiRequest(http.MethodGet, "/token?refresh=1", "")
	s.withSession(req, "sub-1")
	s.mockToken.On("Refresh", mock.Anything, "sub-1").Return(apperrors.ErrRefreshRejected)

	w := s.serve(req)
	s.Equal(http.StatusForbidden, w.Code)
	s.mockToken.AssertNotCalled(s.T(), "GetToken", mock.Anything, mock.Anything, mock.Anything)
}

func (s *HandlerTestSuite) TestTokenRefreshSuccess() {
	req := apiRequest(http.MethodGet, "/token?refresh=1", "")
	s.withSession(req, "sub-1")
	s.mockToken.On("Refresh", mock.Anything, "sub-1").Return(nil)
	s.expectAuthParams("sub-1", "access-fresh", "sheet-1", "alice")

	w := s.serve(req)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("access-fresh", s.decodeParams(w).Token)
}

// --- /logout ---

func (s *HandlerTestSuite) TestLogoutDestroysSession() {
	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	s.withSession(req, "sub-1")
	s.mockSession.On("Destroy", mock.Anything, "handle-sub-1").Return(nil)

	w := s.serve(req)
	s.Require().Equal(http.StatusOK, w.Code)
	s.mockSession.AssertCalled(s.T(), "Destroy", mock.Anything, "handle-sub-1")

	cookies := w.Result().Cookies()
	s.Require().Len(cookies, 1)
	s.Equal("session", cookies[0].Name)
	s.Equal("", cookies[0].Value)
	s.Less(cookies[0].MaxAge, 0)
}

func (s *HandlerTestSuite) TestLogoutRequiresSession() {
	w := s.serve(httptest.NewRequest(http.MethodGet, "/logout", nil))
	s.Equal(http.StatusUnauthorized, w.Code)
}
