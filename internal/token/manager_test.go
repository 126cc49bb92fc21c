package token_test

//go:generate mockgen -source=manager.go -destination=mocks/mocks.go -package=mocks Store,Issuer,ErrorSink

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/alirk24/sejam-porfiling/internal/token"
	"github.com/alirk24/sejam-porfiling/internal/token/mocks"
	dErrors "github.com/alirk24/sejam-porfiling/pkg/domain-errors"
)

type ManagerSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockStore  *mocks.MockStore
	mockIssuer *mocks.MockIssuer
	mockSink   *mocks.MockErrorSink
	manager    *token.Manager
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockStore = mocks.NewMockStore(s.ctrl)
	s.mockIssuer = mocks.NewMockIssuer(s.ctrl)
	s.mockSink = mocks.NewMockErrorSink(s.ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.manager = token.NewManager(s.mockStore, s.mockIssuer, s.mockSink, token.WithLogger(logger))
}

func (s *ManagerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ManagerSuite) TestReusesUnexpiredToken() {
	valid := &token.AccessToken{Token: "cached-token", ExpiresAt: time.Now().Add(time.Hour)}
	s.mockStore.EXPECT().Current(gomock.Any()).Return(valid, nil).Times(2)
	// Issuer must not be called at all.

	first, err := s.manager.GetValidToken(context.Background())
	s.Require().NoError(err)
	second, err := s.manager.GetValidToken(context.Background())
	s.Require().NoError(err)
	s.Equal("cached-token", first)
	s.Equal(first, second)
}

func (s *ManagerSuite) TestRefreshesExpiredToken() {
	stale := &token.AccessToken{Token: "stale", ExpiresAt: time.Now().Add(-time.Minute)}
	s.mockStore.EXPECT().Current(gomock.Any()).Return(stale, nil)
	s.mockIssuer.EXPECT().IssueToken(gomock.Any()).Return("fresh", "01:00:00", nil)

	var replaced *token.AccessToken
	s.mockStore.EXPECT().Replace(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, tok *token.AccessToken) error {
			replaced = tok
			return nil
		})

	got, err := s.manager.GetValidToken(context.Background())
	s.Require().NoError(err)
	s.Equal("fresh", got)
	s.Require().NotNil(replaced)
	s.Equal("fresh", replaced.Token)
	s.WithinDuration(time.Now().Add(time.Hour), replaced.ExpiresAt, 5*time.Second)
}

func (s *ManagerSuite) TestRefreshesWhenNoTokenStored() {
	s.mockStore.EXPECT().Current(gomock.Any()).Return(nil, token.ErrNotFound)
	s.mockIssuer.EXPECT().IssueToken(gomock.Any()).Return("first-ever", "00:30:00", nil)
	s.mockStore.EXPECT().Replace(gomock.Any(), gomock.Any()).Return(nil)

	got, err := s.manager.GetValidToken(context.Background())
	s.Require().NoError(err)
	s.Equal("first-ever", got)
}

func (s *ManagerSuite) TestRefreshFailureIsLoggedAndPropagated() {
	s.mockStore.EXPECT().Current(gomock.Any()).Return(nil, token.ErrNotFound)
	upstreamErr := dErrors.New(dErrors.CodeUpstreamOutage, "connection refused")
	s.mockIssuer.EXPECT().IssueToken(gomock.Any()).Return("", "", upstreamErr)
	s.mockSink.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)

	_, err := s.manager.GetValidToken(context.Background())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUpstreamOutage), "no silent fallback token")
}

func (s *ManagerSuite) TestMalformedTTLIsLoggedAndPropagated() {
	s.mockStore.EXPECT().Current(gomock.Any()).Return(nil, token.ErrNotFound)
	s.mockIssuer.EXPECT().IssueToken(gomock.Any()).Return("tok", "soon", nil)
	s.mockSink.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)

	_, err := s.manager.GetValidToken(context.Background())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUpstream))
}

func (s *ManagerSuite) TestStoreReplaceFailureIsLoggedAndPropagated() {
	s.mockStore.EXPECT().Current(gomock.Any()).Return(nil, token.ErrNotFound)
	s.mockIssuer.EXPECT().IssueToken(gomock.Any()).Return("tok", "01:00:00", nil)
	s.mockStore.EXPECT().Replace(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
	s.mockSink.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)

	_, err := s.manager.GetValidToken(context.Background())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ManagerSuite) TestStoreReadFailurePropagates() {
	s.mockStore.EXPECT().Current(gomock.Any()).Return(nil, errors.New("connection reset"))

	_, err := s.manager.GetValidToken(context.Background())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}
