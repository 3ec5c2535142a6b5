package api

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/labstack/echo/v4"
	"github.com/limchewyew/CompanyDirectory/internal/auth"
	"github.com/limchewyew/CompanyDirectory/internal/db"
	"github.com/limchewyew/CompanyDirectory/internal/model"
	"github.com/limchewyew/CompanyDirectory/internal/repository"
	"github.com/limchewyew/CompanyDirectory/internal/service"
	"github.com/limchewyew/CompanyDirectory/internal/sheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const (
	ada = "ada@example.com"
	bob = "bob@example.com"
)

type fakeSender struct {
	sent []*model.Enquiry
	err  error
}

func (f *fakeSender) SendEnquiry(_ context.Context, enquiry *model.Enquiry) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, enquiry)
	return nil
}

type fakeProvider struct {
	session *auth.Session
	err     error
}

func (f *fakeProvider) Begin() *auth.Challenge {
	return &auth.Challenge{State: "state-1", Verifier: "verifier-1", URL: "https://accounts.example.com/consent?state=state-1"}
}

func (f *fakeProvider) Complete(_ context.Context, code, verifier string) (*auth.Session, error) {
	if code != "good-code" || verifier != "verifier-1" {
		return nil, errors.New("bad code")
	}
	return f.session, f.err
}

type testServer struct {
	e      *echo.Echo
	values *sheet.MemoryValues
	sender *fakeSender
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	auth.TokenSecretKey = "handler-test-secret"

	values := sheet.NewMemoryValues()
	values.Seed(repository.TabDatabase, [][]string{
		{"Name", "Description", "Country", "Industry", "Sub-Industry", "History", "Brand", "Moat", "Size", "Innovation", "Total", "Website", "Logo"},
		{"Acme", "Anvils", "US", "Industrials", "Tools", "10", "10", "10", "10", "18", "58", "https://acme.test", "acme.png"},
		{"Globex", "Everything", "UK", "Tech", "Software", "20", "20", "15", "15", "11", "81", "https://globex.test", ""},
		{"Initech", "TPS reports", "US", "Tech", "", "5", "5", "5", "5", "20", "40", "", ""},
	})

	tables := repository.NewSheetTables(values)
	tx := db.NewLockTransactor()
	companies := repository.NewSheetsCompanyRepository(values)
	sender := &fakeSender{}

	h := NewHandler(zap.NewNop()).
		WithMetrics(NewMetrics()).
		WithCompanyService(service.NewCompanyService().WithCompanyRepo(companies)).
		WithAnalyticsService(service.NewAnalyticsService().WithCompanyRepo(companies)).
		WithListService(service.NewListService(tx).
			WithListRepo(repository.NewSheetsListRepository(tables)).
			WithListItemRepo(repository.NewSheetsListItemRepository(tables)).
			WithCompanyRepo(companies)).
		WithUserService(service.NewUserService(tx).WithUserRepo(repository.NewSheetsUserRepository(tables))).
		WithCollectionService(service.NewCollectionService(tx).
			WithCompanyRepo(companies).
			WithUnlockRepo(repository.NewSheetsUnlockRepository(tables)).
			WithPackSize(2)).
		WithEnquiryService(service.NewEnquiryService().WithSender(sender)).
		WithOAuth(&fakeProvider{session: &auth.Session{Email: "Ada@Example.com", Name: "Ada"}}, time.Hour, false)

	e := echo.New()
	h.RegisterRoutes(e)

	return &testServer{e: e, values: values, sender: sender}
}

func (s *testServer) do(t *testing.T, method, target, email, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	if email != "" {
		token, err := auth.GenerateToken(&auth.Session{Email: email}, time.Hour)
		require.NoError(t, err)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) service.ErrorCode {
	t.Helper()
	body := decode[struct {
		Error service.Error `json:"error"`
	}](t, rec)
	return body.Error.Code
}

func TestCompanyRoutes(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		check      func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:       "all companies",
			target:     "/api/companies",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				companies := decode[[]model.Company](t, rec)
				require.Len(t, companies, 3)
				assert.Equal(t, "acme.png", companies[0].Logo)
			},
		},
		{
			name:       "browse with filters",
			target:     "/api/companies/browse?country=US&country=UK&industry=Tech&sortBy=name&order=asc&pageSize=1",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				page := decode[model.CompanyPage](t, rec)
				assert.Equal(t, 2, page.Total)
				assert.Equal(t, 2, page.TotalPages)
				require.Len(t, page.Companies, 1)
				assert.Equal(t, "Globex", page.Companies[0].Name)
			},
		},
		{
			name:       "browse by total range",
			target:     "/api/companies/browse?totalMin=50&totalMax=60",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				page := decode[model.CompanyPage](t, rec)
				require.Len(t, page.Companies, 1)
				assert.Equal(t, "Acme", page.Companies[0].Name)
			},
		},
		{
			name:       "browse with unknown sort",
			target:     "/api/companies/browse?sortBy=revenue",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "browse with bad total",
			target:     "/api/companies/browse?totalMin=lots",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "facets",
			target:     "/api/companies/facets?industrySearch=te",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				facets := decode[model.Facets](t, rec)
				assert.Equal(t, []string{"UK", "US"}, facets.Countries)
				assert.Equal(t, []string{"Tech"}, facets.Industries)
				assert.Equal(t, []string{"Software", "Tools"}, facets.SubIndustries)
			},
		},
		{
			name:       "quick search",
			target:     "/api/companies/search?q=glo&limit=abc",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				res := decode[[]model.CompanySummary](t, rec)
				assert.Equal(t, []model.CompanySummary{{ID: 2, Name: "Globex", Industry: "Tech"}}, res)
			},
		},
		{
			name:       "one company",
			target:     "/api/companies/3",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "Initech", decode[model.Company](t, rec).Name)
			},
		},
		{
			name:       "unknown company",
			target:     "/api/companies/99",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "non-numeric company id",
			target:     "/api/companies/acme",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "analytics",
			target:     "/api/analytics",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				summary := decode[map[string]any](t, rec)
				assert.EqualValues(t, 3, summary["totalCompanies"])
				assert.EqualValues(t, 2, summary["distinctIndustries"])
			},
		},
		{
			name:       "bubbles skip companies without a sub-industry",
			target:     "/api/analytics/bubbles",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Len(t, decode[[]map[string]any](t, rec), 2)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, tt.target, "", "")
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.check != nil {
				tt.check(t, rec)
			}
		})
	}
}

func TestEnquiry(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/analytics", "", `{"name":"Ada","email":"not-an-email","query":"hi"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, service.ErrorCodeInvalidBody, errorCode(t, rec))

	rec = s.do(t, http.MethodPost, "/api/enquiry", "", `{"name":"Ada","email":"ada@example.com","query":"How are totals computed?"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[enquiryResponse](t, rec).Success)
	require.Len(t, s.sender.sent, 1)
	assert.Equal(t, "How are totals computed?", s.sender.sent[0].Query)

	s.sender.err = errors.New("smtp down")
	rec = s.do(t, http.MethodPost, "/api/analytics", "", `{"name":"Ada","email":"ada@example.com","query":"again"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, decode[enquiryResponse](t, rec).Success)
}

func TestListRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/lists", "", `{"name":"Favourites"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, service.ErrorCodeUnauthorized, errorCode(t, rec))

	rec = s.do(t, http.MethodPost, "/api/lists", ada, `{"name":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/lists", ada, `{"name":"Favourites","isPublic":false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	listID := decode[struct {
		ID string `json:"id"`
	}](t, rec).ID
	require.NotEmpty(t, listID)

	rec = s.do(t, http.MethodPost, "/api/lists/"+listID+"/items", ada, `{"companyId":2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = s.do(t, http.MethodPost, "/api/lists/"+listID+"/items", ada, `{"companyId":"2"}`)
	require.Equal(t, http.StatusOK, rec.Code, "adding twice is a no-op")
	rec = s.do(t, http.MethodPost, "/api/lists/"+listID+"/items", ada, `{"companyId":"1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/lists/"+listID+"/items", ada, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = s.do(t, http.MethodPost, "/api/lists/"+listID+"/items", bob, `{"companyId":3}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = s.do(t, http.MethodPost, "/api/lists/list_missing/items", ada, `{"companyId":3}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/lists/"+listID, ada, "")
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode[model.ListDetail](t, rec)
	assert.Equal(t, "Favourites", detail.Name)
	require.Len(t, detail.Items, 2)
	require.NotNil(t, detail.Items[0].Company)
	assert.Equal(t, "Globex", detail.Items[0].Company.Name)

	rec = s.do(t, http.MethodGet, "/api/lists/"+listID, bob, "")
	assert.Equal(t, http.StatusNotFound, rec.Code, "private lists are hidden from others")

	rec = s.do(t, http.MethodGet, "/api/lists", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]model.List](t, rec))

	rec = s.do(t, http.MethodGet, "/api/lists", ada, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.List](t, rec), 1)

	rec = s.do(t, http.MethodDelete, "/api/lists/"+listID+"/items/2", ada, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodDelete, "/api/lists/"+listID+"/items/2", ada, "")
	require.Equal(t, http.StatusOK, rec.Code, "removing a missing item is a no-op")

	rec = s.do(t, http.MethodGet, "/api/lists/"+listID, ada, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[model.ListDetail](t, rec).Items, 1)

	rec = s.do(t, http.MethodDelete, "/api/lists/"+listID, bob, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = s.do(t, http.MethodDelete, "/api/lists/list_missing", ada, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/lists/"+listID, ada, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[okResponse](t, rec).OK)

	rec = s.do(t, http.MethodGet, "/api/lists/"+listID, ada, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/lists", ada, "")
	assert.Empty(t, decode[[]model.List](t, rec))
}

func TestCollectionRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/unlock", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/unlock", ada, `{"companyId":1}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = s.do(t, http.MethodPost, "/api/unlock", ada, `{"companyId":"1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodPost, "/api/unlock", ada, `{"companyId":42}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(t, http.MethodPost, "/api/unlock", ada, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/unlock", "ADA@example.com", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"1"}, decode[struct {
		UnlockedCompanies []string `json:"unlockedCompanies"`
	}](t, rec).UnlockedCompanies)

	rec = s.do(t, http.MethodPost, "/api/packs/open", ada, "")
	require.Equal(t, http.StatusOK, rec.Code)
	pack := decode[model.PackResult](t, rec)
	require.Len(t, pack.Companies, 2)
	assert.ElementsMatch(t, []string{"2", "3"}, pack.New, "locked companies are drawn first")

	rec = s.do(t, http.MethodGet, "/api/collection", ada, "")
	require.Equal(t, http.StatusOK, rec.Code)
	collection := decode[struct {
		Success bool            `json:"success"`
		Data    []model.Company `json:"data"`
	}](t, rec)
	assert.True(t, collection.Success)
	assert.Len(t, collection.Data, 3)

	rec = s.do(t, http.MethodPost, "/api/collection", ada, `{}`)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/scrapbook", bob, "")
	require.Equal(t, http.StatusOK, rec.Code)
	book := decode[model.Scrapbook](t, rec)
	assert.Equal(t, 0, book.Unlocked)
	assert.Equal(t, 3, book.Total)
}

func TestAuthRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/auth/session", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/auth/login", "", "")
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "https://accounts.example.com/consent?state=state-1", rec.Header().Get(echo.HeaderLocation))

	cookies := make(map[string]*http.Cookie)
	for _, c := range rec.Result().Cookies() {
		cookies[c.Name] = c
	}
	require.Contains(t, cookies, stateCookie)
	require.Contains(t, cookies, verifierCookie)
	assert.True(t, cookies[stateCookie].HttpOnly)

	callback := func(query string, withCookies bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/auth/callback?"+query, nil)
		if withCookies {
			req.AddCookie(&http.Cookie{Name: stateCookie, Value: "state-1"})
			req.AddCookie(&http.Cookie{Name: verifierCookie, Value: "verifier-1"})
		}
		rec := httptest.NewRecorder()
		s.e.ServeHTTP(rec, req)
		return rec
	}

	rec = callback("state=other&code=good-code", true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = callback("state=state-1&code=good-code", false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = callback("state=state-1&code=bad-code", true)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = callback("state=state-1&code=good-code", true)
	require.Equal(t, http.StatusFound, rec.Code)

	var session *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)

	rows, err := s.values.Get(context.Background(), "Users!A2:D")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ada@Example.com", rows[0][1])

	rec = callback("state=state-1&code=good-code", true)
	require.Equal(t, http.StatusFound, rec.Code)
	rows, err = s.values.Get(context.Background(), "Users!A2:D")
	require.NoError(t, err)
	assert.Len(t, rows, 1, "signing in twice keeps one user row")

	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	req.AddCookie(session)
	rec = httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, auth.Session{Email: "Ada@Example.com", Name: "Ada"}, decode[auth.Session](t, rec))

	rec = s.do(t, http.MethodPost, "/auth/logout", ada, "")
	require.Equal(t, http.StatusOK, rec.Code)
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, SessionCookie, cleared[0].Name)
	assert.Equal(t, "", cleared[0].Value)
}

func TestMetricsRoute(t *testing.T) {
	s := newTestServer(t)

	s.do(t, http.MethodGet, "/api/companies", "", "")

	rec := s.do(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `company_directory_http_requests_total{method="GET",route="/api/companies",status="200"} 1`)
}
