// internal/session/types.go
//
// Identifiers, rejection reasons and operation receipts for the session
// registry. Receipts are plain values: registry operations commit state and
// return one, and notification happens afterwards, outside the lock.

package session

import "github.com/robalobadob/wordbot/internal/game"

// ChannelID identifies a chat channel on the platform.
type ChannelID string

// PlayerID identifies a platform user.
type PlayerID string

// Key addresses one game instance: the channel it lives on and the player
// who started it. A group's shared instance is keyed by its initiator.
type Key struct {
	Channel ChannelID
	Player  PlayerID
}

// Reason is a stable machine-readable rejection code. The dispatcher maps
// these to display text.
type Reason string

const (
	ReasonGroupBusy         Reason = "group_busy"          // a group is forming or playing
	ReasonSoloBusy          Reason = "solo_busy"           // solo games block a group start
	ReasonBadPlayerCount    Reason = "bad_player_count"    // group size must be at least two
	ReasonNoGroupForming    Reason = "no_group_forming"    // join without a forming group
	ReasonGroupFull         Reason = "group_full"          // roster already complete
	ReasonWrongChannel      Reason = "wrong_channel"       // game lives on another channel
	ReasonAlreadyJoined     Reason = "already_joined"      // player is on the roster
	ReasonNotInGroup        Reason = "not_in_group"        // player never joined the group
	ReasonWaitingForPlayers Reason = "waiting_for_players" // roster not yet full
	ReasonBadGuessFormat    Reason = "bad_guess_format"    // wrong length or non-alphabetic
	ReasonNotInWordList     Reason = "not_in_word_list"    // valid shape, unknown word
	ReasonNoGame            Reason = "no_game"             // no instance for this key
)

// Rejection is an expected, user-facing refusal of an operation. It is an
// error so callers can thread it through normal error returns, but it is
// not exceptional: the registry state is untouched.
type Rejection struct {
	Reason  Reason
	Waiting int // players still needed, set with ReasonWaitingForPlayers
}

func (r *Rejection) Error() string { return string(r.Reason) }

// Outcome classifies an accepted guess.
type Outcome string

const (
	OutcomeContinue  Outcome = "continue"
	OutcomeWon       Outcome = "won"
	OutcomeExhausted Outcome = "exhausted"
)

// StartReceipt describes a successfully created game.
type StartReceipt struct {
	Key      Key
	Group    bool
	Capacity int // required roster size, 1 for solo
}

// JoinReceipt describes a successful group join.
type JoinReceipt struct {
	Started   bool // true when this join completed the roster
	Remaining int  // players still needed, 0 when Started
}

// GuessReceipt describes an accepted guess. Target is revealed only on
// terminal outcomes. Players lists everyone the result concerns (the roster
// for group games, the solo player otherwise).
type GuessReceipt struct {
	Key        Key
	Outcome    Outcome
	GuessCount int
	Board      []game.Round
	Target     string
	Players    []PlayerID
}

// Concession describes a terminated game after a give-up, with the target
// revealed and the board as it stood.
type Concession struct {
	Key     Key
	Target  string
	Guesses int
	Board   []game.Round
	Players []PlayerID
}
