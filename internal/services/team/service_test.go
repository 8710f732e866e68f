package team

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/eytgaming/eytgaming/internal/dependencies/mocks"
	"github.com/eytgaming/eytgaming/internal/model"
	"github.com/eytgaming/eytgaming/internal/storage/memory"
	"github.com/eytgaming/eytgaming/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.service = New(s.storage, s.clock, s.random, testutil.NopLogger())
	s.ctx = context.Background()

	for _, u := range []struct {
		id       model.UserID
		username string
	}{
		{"user-1", "alice"},
		{"user-2", "bob"},
		{"user-3", "carol"},
	} {
		err := s.storage.SaveUser(s.ctx, &model.User{ID: u.id, Username: u.username})
		s.Require().NoError(err)
	}
}

func (s *ServiceSuite) TestCreate() {
	s.random.QueueString("ABC234")

	team, err := s.service.Create(s.ctx, "user-1", "Night Watch", "NW")
	s.Require().NoError(err)

	s.Equal("Night Watch", team.Name)
	s.Equal("ABC234", team.JoinCode)
	s.Equal(model.UserID("user-1"), team.OwnerID)
	s.Equal([]model.UserID{"user-1"}, team.Members)
}

func (s *ServiceSuite) TestCreateUnknownUser() {
	_, err := s.service.Create(s.ctx, "nobody", "Night Watch", "NW")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *ServiceSuite) TestJoinByCode() {
	s.random.QueueString("ABC234")
	team, err := s.service.Create(s.ctx, "user-1", "Night Watch", "NW")
	s.Require().NoError(err)

	joined, err := s.service.Join(s.ctx, "user-2", "ABC234")
	s.Require().NoError(err)
	s.Equal(team.ID, joined.ID)
	s.True(joined.HasMember("user-2"))

	entries, err := s.storage.ListActivity(s.ctx, "user-2", 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal("team_joined", entries[0].Kind)
}

func (s *ServiceSuite) TestJoinBadCode() {
	_, err := s.service.Join(s.ctx, "user-2", "NOPE99")
	s.ErrorIs(err, model.ErrInvalidJoinCode)
}

func (s *ServiceSuite) TestJoinTwice() {
	s.random.QueueString("ABC234")
	_, err := s.service.Create(s.ctx, "user-1", "Night Watch", "NW")
	s.Require().NoError(err)

	_, err = s.service.Join(s.ctx, "user-2", "ABC234")
	s.Require().NoError(err)
	_, err = s.service.Join(s.ctx, "user-2", "ABC234")
	s.ErrorIs(err, model.ErrAlreadyInTeam)
}

func (s *ServiceSuite) TestLeave() {
	s.random.QueueString("ABC234")
	team, err := s.service.Create(s.ctx, "user-1", "Night Watch", "NW")
	s.Require().NoError(err)
	_, err = s.service.Join(s.ctx, "user-2", "ABC234")
	s.Require().NoError(err)

	s.Require().NoError(s.service.Leave(s.ctx, "user-2", team.ID))

	got, err := s.service.Get(s.ctx, team.ID)
	s.Require().NoError(err)
	s.False(got.HasMember("user-2"))
}

func (s *ServiceSuite) TestLeaveNotMember() {
	s.random.QueueString("ABC234")
	team, err := s.service.Create(s.ctx, "user-1", "Night Watch", "NW")
	s.Require().NoError(err)

	err = s.service.Leave(s.ctx, "user-3", team.ID)
	s.ErrorIs(err, model.ErrNotInTeam)
}

func (s *ServiceSuite) TestLastMemberLeavingDeletesTeam() {
	s.random.QueueString("ABC234")
	team, err := s.service.Create(s.ctx, "user-1", "Night Watch", "NW")
	s.Require().NoError(err)

	s.Require().NoError(s.service.Leave(s.ctx, "user-1", team.ID))

	_, err = s.service.Get(s.ctx, team.ID)
	s.ErrorIs(err, model.ErrTeamNotFound)
}

func (s *ServiceSuite) TestOwnerLeavingTransfersOwnership() {
	s.random.QueueString("ABC234")
	team, err := s.service.Create(s.ctx, "user-1", "Night Watch", "NW")
	s.Require().NoError(err)
	_, err = s.service.Join(s.ctx, "user-2", "ABC234")
	s.Require().NoError(err)

	s.Require().NoError(s.service.Leave(s.ctx, "user-1", team.ID))

	got, err := s.service.Get(s.ctx, team.ID)
	s.Require().NoError(err)
	s.Equal(model.UserID("user-2"), got.OwnerID)
}

func (s *ServiceSuite) TestMutualTeams() {
	s.random.QueueString("AAAA11", "BBBB22", "CCCC33")

	shared, err := s.service.Create(s.ctx, "user-1", "Night Watch", "NW")
	s.Require().NoError(err)
	_, err = s.service.Join(s.ctx, "user-2", "AAAA11")
	s.Require().NoError(err)

	// user-1 only
	_, err = s.service.Create(s.ctx, "user-1", "Solo Squad", "SS")
	s.Require().NoError(err)
	// user-2 only
	_, err = s.service.Create(s.ctx, "user-2", "Bob's Team", "BT")
	s.Require().NoError(err)

	mutual, err := s.service.Mutual(s.ctx, "user-1", "user-2")
	s.Require().NoError(err)
	s.Require().Len(mutual, 1)
	s.Equal(shared.ID, mutual[0].ID)

	none, err := s.service.Mutual(s.ctx, "user-1", "user-3")
	s.Require().NoError(err)
	s.Empty(none)
}
