package room

import (
	"github.com/draftnight/auction-go/internal/model"
)

// Actions are the messages the room worker consumes, one at a time. Every
// reply channel is buffered (size 1) so the worker never blocks on a caller.
type action interface {
	isAction()
}

type joinAuctioneerAction struct {
	conn  model.ConnectionID
	reply chan joinAuctioneerReply
}

type joinAuctioneerReply struct {
	snapshot model.RoomSnapshot
}

type joinCaptainAction struct {
	conn  model.ConnectionID
	name  string
	reply chan joinCaptainReply
}

type joinCaptainReply struct {
	captain  model.Captain
	snapshot model.RoomSnapshot
}

type disconnectAction struct {
	conn model.ConnectionID
}

type startBiddingAction struct {
	conn        model.ConnectionID
	playerIndex int
	reply       chan error
}

type submitBidAction struct {
	conn   model.ConnectionID
	amount int
	reply  chan submitBidReply
}

type submitBidReply struct {
	receipt BidReceipt
	err     error
}

type revealAction struct {
	conn  model.ConnectionID
	reply chan error
}

type resetBudgetsAction struct {
	conn  model.ConnectionID
	reply chan error
}

type snapshotAction struct {
	reply chan model.RoomSnapshot
}

type closeAction struct {
	conn  model.ConnectionID
	force bool
	reply chan error
}

func (joinAuctioneerAction) isAction() {}
func (joinCaptainAction) isAction()    {}
func (disconnectAction) isAction()     {}
func (startBiddingAction) isAction()   {}
func (submitBidAction) isAction()      {}
func (revealAction) isAction()         {}
func (resetBudgetsAction) isAction()   {}
func (snapshotAction) isAction()       {}
func (closeAction) isAction()          {}
