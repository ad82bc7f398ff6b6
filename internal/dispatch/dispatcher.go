// internal/dispatch/dispatcher.go
//
// The command dispatcher: translates inbound chat commands and reaction
// signals into registry operations and semantic replies.
//
// The dispatcher never holds the registry lock itself; each registry call
// is one atomic operation. Whatever the operation committed stays
// committed: notification happens afterwards, and a failed send is logged
// and swallowed. Definition lookups likewise run after the lock is gone.

package dispatch

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordbot/internal/game"
	"github.com/robalobadob/wordbot/internal/history"
	"github.com/robalobadob/wordbot/internal/session"
)

// SurrenderEmoji is the reaction that concedes a game when attached to the
// latest board broadcast.
const SurrenderEmoji = "🏳"

// ReplyKind classifies outbound replies.
type ReplyKind string

const (
	ReplyInfo     ReplyKind = "info"
	ReplyRejected ReplyKind = "rejected"
	ReplyBoard    ReplyKind = "board"
	ReplyWon      ReplyKind = "won"
	ReplyLost     ReplyKind = "lost"
	ReplyConceded ReplyKind = "conceded"
)

// Reply is a semantic outbound result. It carries no platform markup; the
// collaborator renders it however it likes.
type Reply struct {
	Kind       ReplyKind          `json:"kind"`
	Text       string             `json:"text,omitempty"`
	Reason     session.Reason     `json:"reason,omitempty"`
	Waiting    int                `json:"waiting,omitempty"`
	Board      []game.Round       `json:"board,omitempty"`
	GuessCount int                `json:"guessCount,omitempty"`
	Target     string             `json:"target,omitempty"`
	Definition string             `json:"definition,omitempty"`
	Players    []session.PlayerID `json:"players,omitempty"`
	// Surrenderable marks board broadcasts the collaborator should decorate
	// with the surrender reaction.
	Surrenderable bool `json:"surrenderable,omitempty"`
}

// Notifier delivers a reply to a channel and returns an opaque ref
// identifying the delivered message.
type Notifier interface {
	Send(ctx context.Context, channel session.ChannelID, reply Reply) (ref string, err error)
}

// Definer looks up a short definition for a word, "" when unavailable.
type Definer interface {
	Define(ctx context.Context, word string) string
}

// Recorder persists finished games.
type Recorder interface {
	Record(ctx context.Context, r history.Result) error
}

// Dispatcher wires commands to the registry and results back out.
type Dispatcher struct {
	reg    *session.Registry
	notify Notifier
	defs   Definer
	hist   Recorder // optional
	prefix string
	now    func() time.Time
}

// New constructs a Dispatcher. hist may be nil to skip history recording.
func New(reg *session.Registry, notify Notifier, defs Definer, hist Recorder, prefix string) *Dispatcher {
	return &Dispatcher{
		reg:    reg,
		notify: notify,
		defs:   defs,
		hist:   hist,
		prefix: prefix,
		now:    time.Now,
	}
}

// HandleMessage processes one inbound chat message. Messages without the
// command prefix, and unknown commands, are ignored.
func (d *Dispatcher) HandleMessage(ctx context.Context, ch session.ChannelID, player session.PlayerID, content string) {
	body, ok := strings.CutPrefix(strings.TrimSpace(content), d.prefix)
	if !ok {
		return
	}
	fields := strings.Fields(body)
	if len(fields) == 0 {
		return
	}
	switch strings.ToLower(fields[0]) {
	case "help":
		d.send(ctx, ch, Reply{Kind: ReplyInfo, Text: helpText(d.prefix)})
	case "start":
		d.handleStart(ctx, ch, player, fields[1:])
	case "guess":
		d.handleGuess(ctx, ch, player, fields[1:])
	case "join":
		d.handleJoin(ctx, ch, player)
	case "giveup":
		d.handleGiveUp(ctx, ch, player)
	}
}

// HandleReaction processes a reaction attached to a previously broadcast
// message. Only the surrender emoji on a live board does anything.
func (d *Dispatcher) HandleReaction(ctx context.Context, player session.PlayerID, ref, emoji string) {
	if emoji != SurrenderEmoji {
		return
	}
	c, ok := d.reg.ResolveSurrender(ref, player)
	if !ok {
		return
	}
	d.record(ctx, c.Key, "conceded", c.Guesses, c.Target)
	d.reveal(ctx, c.Key, ReplyConceded, msgConceded, c.Target, c.Guesses, c.Board, c.Players)
}

func (d *Dispatcher) handleStart(ctx context.Context, ch session.ChannelID, player session.PlayerID, args []string) {
	if len(args) == 0 {
		_, err := d.reg.StartSolo(ch, player)
		if err != nil {
			d.sendRejection(ctx, ch, err, false)
			return
		}
		d.send(ctx, ch, Reply{Kind: ReplyInfo, Text: msgGameStarted(d.prefix)})
		return
	}

	size, convErr := strconv.Atoi(args[0])
	if convErr != nil {
		d.send(ctx, ch, Reply{
			Kind:   ReplyRejected,
			Reason: session.ReasonBadPlayerCount,
			Text:   msgWrongPlayersNumber,
		})
		return
	}
	if _, err := d.reg.StartGroup(ch, player, size); err != nil {
		d.sendRejection(ctx, ch, err, false)
		return
	}
	d.send(ctx, ch, Reply{Kind: ReplyInfo, Text: msgWaitForPlayers})
}

func (d *Dispatcher) handleJoin(ctx context.Context, ch session.ChannelID, player session.PlayerID) {
	j, err := d.reg.JoinGroup(ch, player)
	if err != nil {
		d.sendRejection(ctx, ch, err, true)
		return
	}
	if j.Started {
		d.send(ctx, ch, Reply{Kind: ReplyInfo, Text: msgGameStarted(d.prefix)})
		return
	}
	d.send(ctx, ch, Reply{Kind: ReplyInfo, Text: msgJoined(j.Remaining), Waiting: j.Remaining})
}

func (d *Dispatcher) handleGuess(ctx context.Context, ch session.ChannelID, player session.PlayerID, args []string) {
	if len(args) == 0 {
		d.send(ctx, ch, Reply{
			Kind:   ReplyRejected,
			Reason: session.ReasonBadGuessFormat,
			Text:   msgIncorrectGuess,
		})
		return
	}
	rec, err := d.reg.SubmitGuess(ch, player, args[0])
	if err != nil {
		d.sendRejection(ctx, ch, err, false)
		return
	}

	switch rec.Outcome {
	case session.OutcomeWon:
		d.record(ctx, rec.Key, "won", rec.GuessCount, rec.Target)
		d.reveal(ctx, rec.Key, ReplyWon, msgWon, rec.Target, rec.GuessCount, rec.Board, rec.Players)
	case session.OutcomeExhausted:
		d.record(ctx, rec.Key, "lost", rec.GuessCount, rec.Target)
		d.reveal(ctx, rec.Key, ReplyLost, msgTooManyGuesses, rec.Target, rec.GuessCount, rec.Board, rec.Players)
	default:
		ref := d.send(ctx, ch, Reply{
			Kind:          ReplyBoard,
			Board:         rec.Board,
			GuessCount:    rec.GuessCount,
			Players:       rec.Players,
			Surrenderable: true,
		})
		if ref != "" {
			d.reg.AttachBroadcastRef(rec.Key, ref)
		}
	}
}

func (d *Dispatcher) handleGiveUp(ctx context.Context, ch session.ChannelID, player session.PlayerID) {
	c, err := d.reg.GiveUp(ch, player)
	if err != nil {
		d.sendRejection(ctx, ch, err, false)
		return
	}
	d.record(ctx, c.Key, "conceded", c.Guesses, c.Target)
	d.reveal(ctx, c.Key, ReplyConceded, msgConceded, c.Target, c.Guesses, c.Board, c.Players)
}

// reveal broadcasts a terminal result, fetching the definition first. The
// game is already gone from the registry by the time this runs.
func (d *Dispatcher) reveal(ctx context.Context, key session.Key, kind ReplyKind, text, target string, guesses int, board []game.Round, players []session.PlayerID) {
	d.send(ctx, key.Channel, Reply{
		Kind:       kind,
		Text:       text,
		Target:     target,
		Definition: d.defs.Define(ctx, target),
		GuessCount: guesses,
		Board:      board,
		Players:    players,
	})
}

// send performs commit-then-notify's notify half. Failures are logged and
// swallowed; the registry state is already consistent.
func (d *Dispatcher) send(ctx context.Context, ch session.ChannelID, reply Reply) string {
	ref, err := d.notify.Send(ctx, ch, reply)
	if err != nil {
		log.Warn().Err(err).Str("channel", string(ch)).Str("kind", string(reply.Kind)).Msg("sending reply")
		return ""
	}
	return ref
}

func (d *Dispatcher) sendRejection(ctx context.Context, ch session.ChannelID, err error, join bool) {
	var rej *session.Rejection
	if !errors.As(err, &rej) {
		log.Error().Err(err).Msg("unexpected registry error")
		return
	}
	d.send(ctx, ch, Reply{
		Kind:    ReplyRejected,
		Reason:  rej.Reason,
		Waiting: rej.Waiting,
		Text:    rejectionText(rej, join),
	})
}

func (d *Dispatcher) record(ctx context.Context, key session.Key, outcome string, guesses int, target string) {
	if d.hist == nil {
		return
	}
	err := d.hist.Record(ctx, history.Result{
		Channel:    string(key.Channel),
		Player:     string(key.Player),
		Target:     target,
		Guesses:    guesses,
		Outcome:    outcome,
		FinishedAt: d.now(),
	})
	if err != nil {
		log.Warn().Err(err).Str("outcome", outcome).Msg("recording finished game")
	}
}
