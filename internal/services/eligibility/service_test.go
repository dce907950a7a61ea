package eligibility

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/draftnight/auction-go/internal/model"
)

type EligibilitySuite struct {
	suite.Suite
	caps model.Caps
}

func TestEligibilitySuite(t *testing.T) {
	suite.Run(t, new(EligibilitySuite))
}

func (s *EligibilitySuite) SetupTest() {
	s.caps = model.Caps{
		PoolCaps: map[model.Pool]int{"A": 2, "B": 1, model.PoolDuos: 1},
		TeamCap:  4,
	}
}

func (s *EligibilitySuite) TestEmptyRosterIsEligible() {
	captain := &model.Captain{}

	s.True(CanBid(captain, model.Player{Pool: "A"}, s.caps))
}

func (s *EligibilitySuite) TestPoolCapBlocksBid() {
	captain := &model.Captain{
		Roster: []model.Player{{Pool: "B"}},
	}

	s.False(CanBid(captain, model.Player{Pool: "B"}, s.caps))
	s.True(CanBid(captain, model.Player{Pool: "A"}, s.caps))
}

func (s *EligibilitySuite) TestPoolCapAllowsUpToCap() {
	captain := &model.Captain{
		Roster: []model.Player{{Pool: "A"}},
	}

	s.True(CanBid(captain, model.Player{Pool: "A"}, s.caps))
}

func (s *EligibilitySuite) TestTeamCapBlocksBid() {
	captain := &model.Captain{
		Roster: []model.Player{{Pool: "A"}, {Pool: "A"}, {Pool: "B"}, {Pool: model.PoolDuos}},
	}
	// 5 slots used already exceeds anything further
	s.False(CanBid(captain, model.Player{Pool: "A"}, s.caps))
}

func (s *EligibilitySuite) TestDuoSlotsCountDouble() {
	// 3 of 4 slots used; a duo needs 2 more
	captain := &model.Captain{
		Roster: []model.Player{{Pool: "A"}, {Pool: "A"}, {Pool: "B"}},
	}

	s.False(CanBid(captain, model.Player{Pool: model.PoolDuos}, s.caps))
}

func (s *EligibilitySuite) TestDuoFitsWhenTwoSlotsFree() {
	captain := &model.Captain{
		Roster: []model.Player{{Pool: "A"}, {Pool: "A"}},
	}

	s.True(CanBid(captain, model.Player{Pool: model.PoolDuos}, s.caps))
}

func (s *EligibilitySuite) TestUnknownPoolHasZeroCap() {
	captain := &model.Captain{}

	s.False(CanBid(captain, model.Player{Pool: "unknown"}, s.caps))
}
