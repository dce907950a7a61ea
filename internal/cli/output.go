package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case RoomResult:
		o.printRoom(v)
	case CaptainJoinResult:
		o.printCaptainJoin(v)
	case BidResult:
		o.printBidResult(v)
	case PoolListResult:
		o.printPoolList(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Captain response type (matches API)
type Captain struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Color           string   `json:"color"`
	Budget          int      `json:"budget"`
	RemainingBudget int      `json:"remaining_budget"`
	Roster          []Player `json:"roster"`
	Connected       bool     `json:"connected"`
}

// Player response type
type Player struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Pool         string `json:"pool"`
	RevealedName string `json:"revealed_name,omitempty"`
}

// Room response type
type Room struct {
	Code               string    `json:"code"`
	State              string    `json:"state"`
	Captains           []Captain `json:"captains"`
	Players            []Player  `json:"players"`
	CompletedPlayers   []int     `json:"completed_players"`
	CurrentPlayerIndex int       `json:"current_player_index"`
}

// RoomResult wraps a room view with the caller's connection handle
type RoomResult struct {
	ConnectionID string `json:"connection_id,omitempty"`
	Room         Room   `json:"room"`
}

// CaptainJoinResult is the captain join response
type CaptainJoinResult struct {
	ConnectionID string  `json:"connection_id"`
	Captain      Captain `json:"captain"`
	Room         Room    `json:"room"`
}

// BidResult is the private bid acknowledgement
type BidResult struct {
	Amount           int `json:"amount"`
	SubmittedBids    int `json:"submitted_bids"`
	EligibleCaptains int `json:"eligible_captains"`
}

// PoolListResult lists stored pools
type PoolListResult struct {
	Pools []string `json:"pools"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printRoom(r RoomResult) {
	fmt.Printf("Room: %s\n", r.Room.Code)
	fmt.Printf("State: %s\n", r.Room.State)
	if r.ConnectionID != "" {
		fmt.Printf("Connection: %s\n", r.ConnectionID)
	}
	fmt.Printf("Players: %d (%d auctioned)\n", len(r.Room.Players), len(r.Room.CompletedPlayers))
	if r.Room.CurrentPlayerIndex >= 0 && r.Room.CurrentPlayerIndex < len(r.Room.Players) {
		fmt.Printf("On the block: %s\n", r.Room.Players[r.Room.CurrentPlayerIndex].Name)
	}
	fmt.Printf("Captains (%d):\n", len(r.Room.Captains))
	for _, c := range r.Room.Captains {
		connStr := ""
		if !c.Connected {
			connStr = " [disconnected]"
		}
		fmt.Printf("  - %s: %d/%d budget, %d drafted%s\n",
			c.Name, c.RemainingBudget, c.Budget, len(c.Roster), connStr)
	}
}

func (o *Output) printCaptainJoin(c CaptainJoinResult) {
	fmt.Printf("Joined as: %s (%s)\n", c.Captain.Name, c.Captain.Color)
	fmt.Printf("Connection: %s\n", c.ConnectionID)
	fmt.Printf("Budget: %d/%d\n", c.Captain.RemainingBudget, c.Captain.Budget)
	if len(c.Captain.Roster) > 0 {
		fmt.Println("Roster:")
		for _, p := range c.Captain.Roster {
			fmt.Printf("  - %s (%s)\n", p.Name, p.Pool)
		}
	}
}

func (o *Output) printBidResult(b BidResult) {
	fmt.Printf("Bid placed: %d\n", b.Amount)
	fmt.Printf("Submitted: %d/%d captains\n", b.SubmittedBids, b.EligibleCaptains)
}

func (o *Output) printPoolList(p PoolListResult) {
	if len(p.Pools) == 0 {
		fmt.Println("No pools stored")
		return
	}
	pools := append([]string(nil), p.Pools...)
	sort.Strings(pools)
	fmt.Printf("Pools (%d):\n", len(pools))
	for _, name := range pools {
		fmt.Printf("  - %s\n", name)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
