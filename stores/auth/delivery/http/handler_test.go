package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/phoenix-escrow/goapi/base/ctx"
	auth_usecase "github.com/phoenix-escrow/goapi/stores/auth/usecase"
)

type authHandlerSuite struct {
	suite.Suite

	e *echo.Echo
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(authHandlerSuite))
}

func (s *authHandlerSuite) SetupTest() {
	s.e = echo.New()
	s.e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", bCtx.Background())
			return next(c)
		}
	})
	New(s.e, auth_usecase.New("test-secret"))
}

func (s *authHandlerSuite) postSign(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/sign", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *authHandlerSuite) TestSignIssuesToken() {
	rec := s.postSign(`{"address":"phoenix1seller"}`)
	s.Equal(http.StatusCreated, rec.Code)
	s.Contains(rec.Body.String(), ".")
}

func (s *authHandlerSuite) TestSignRejectsMalformedAddress() {
	cases := []string{
		`{"address":""}`,
		`{"address":"PHOENIX1SELLER"}`,
		`{"address":"phoenix1$eller"}`,
		`{"address":"` + strings.Repeat("a", 91) + `"}`,
	}
	for _, body := range cases {
		rec := s.postSign(body)
		s.Equal(http.StatusBadRequest, rec.Code, body)
	}
}
