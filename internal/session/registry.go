// internal/session/registry.go
//
// The session registry: the single shared map of live game instances plus
// the group-coordination state, guarded by one mutex.
//
// Every public operation takes the lock for its whole duration and starts
// with the expiry sweep, so staleness is handled without a background
// timer. Group membership, author resolution and the one-group-at-a-time
// rule are registry-wide invariants, which is why locking is this coarse.
//
// Invariants held between operations:
//   - at most one instance per (channel, player) key;
//   - capacity > 1 implies the map holds at most one instance, keyed by the
//     group initiator, and the roster is non-empty;
//   - capacity == 1 implies the roster is empty.

package session

import (
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordbot/internal/game"
)

// Wordlist is the slice of the lexicon the registry needs: membership and
// target selection. Satisfied by *words.Lexicon.
type Wordlist interface {
	IsValid(candidate string) bool
	PickTarget() string
}

// DefaultTimeout is how long an instance may sit without activity before
// the sweep removes it. Solo players have this long to finish; groups have
// it once to gather and again to play.
const DefaultTimeout = 5 * time.Minute

// Registry tracks every live game instance in the process.
type Registry struct {
	mu       sync.Mutex
	games    map[Key]*game.Game
	capacity int        // 1 unless a group is forming or playing
	roster   []PlayerID // joined group players, in join order
	lex      Wordlist
	timeout  time.Duration
	now      func() time.Time
}

// Option configures a Registry.
type Option func(*Registry)

// WithTimeout overrides the inactivity window.
func WithTimeout(d time.Duration) Option {
	return func(r *Registry) { r.timeout = d }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// New constructs an empty registry over the given lexicon.
func New(lex Wordlist, opts ...Option) *Registry {
	r := &Registry{
		games:    make(map[Key]*game.Game),
		capacity: 1,
		lex:      lex,
		timeout:  DefaultTimeout,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// sweepExpired removes every instance idle for at least the timeout. When
// the group's instance goes, the group coordination state goes with it.
// Callers must hold the lock.
func (r *Registry) sweepExpired(now time.Time) {
	for key, g := range r.games {
		if now.Sub(g.LastActivity) < r.timeout {
			continue
		}
		delete(r.games, key)
		log.Info().
			Str("channel", string(key.Channel)).
			Str("player", string(key.Player)).
			Msg("expired idle game")
		if r.capacity > 1 {
			r.resetGroup()
		}
	}
}

// resetGroup clears the group-coordination fields. Callers must hold the
// lock.
func (r *Registry) resetGroup() {
	r.capacity = 1
	r.roster = nil
}

// groupForming reports whether a group is still gathering players.
// Callers must hold the lock.
func (r *Registry) groupForming() bool {
	return r.capacity > 1 && len(r.roster) < r.capacity
}

// channelHasGame reports whether any instance lives on the channel.
// Callers must hold the lock.
func (r *Registry) channelHasGame(ch ChannelID) bool {
	for key := range r.games {
		if key.Channel == ch {
			return true
		}
	}
	return false
}

// onRoster reports group membership. Callers must hold the lock.
func (r *Registry) onRoster(p PlayerID) bool {
	for _, m := range r.roster {
		if m == p {
			return true
		}
	}
	return false
}

// participants returns who a result concerns: the roster during group play,
// otherwise just the given player. Callers must hold the lock.
func (r *Registry) participants(p PlayerID) []PlayerID {
	if r.capacity > 1 {
		out := make([]PlayerID, len(r.roster))
		copy(out, r.roster)
		return out
	}
	return []PlayerID{p}
}

// StartSolo creates a solo instance for (channel, player). Starting again
// on the same key silently replaces the previous instance. Rejected while
// a group is forming or playing.
func (r *Registry) StartSolo(ch ChannelID, p PlayerID) (*StartReceipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	r.sweepExpired(now)

	if r.capacity > 1 {
		return nil, &Rejection{Reason: ReasonGroupBusy}
	}
	key := Key{Channel: ch, Player: p}
	r.games[key] = game.New(r.lex.PickTarget(), now)
	return &StartReceipt{Key: key, Capacity: 1}, nil
}

// StartGroup creates the shared instance for a group of size players,
// keyed by the initiator, and opens the roster with them on it. Rejected
// while another group exists, for sizes below two, and while any solo game
// is live anywhere.
func (r *Registry) StartGroup(ch ChannelID, p PlayerID, size int) (*StartReceipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	r.sweepExpired(now)

	if r.capacity > 1 {
		return nil, &Rejection{Reason: ReasonGroupBusy}
	}
	if size <= 1 {
		return nil, &Rejection{Reason: ReasonBadPlayerCount}
	}
	if len(r.games) > 0 {
		return nil, &Rejection{Reason: ReasonSoloBusy}
	}
	key := Key{Channel: ch, Player: p}
	r.games[key] = game.New(r.lex.PickTarget(), now)
	r.capacity = size
	r.roster = []PlayerID{p}
	return &StartReceipt{Key: key, Group: true, Capacity: size}, nil
}

// JoinGroup adds a player to the forming group. The join that completes the
// roster restarts the play-phase inactivity window and reports Started.
func (r *Registry) JoinGroup(ch ChannelID, p PlayerID) (*JoinReceipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	r.sweepExpired(now)

	if r.capacity == 1 {
		return nil, &Rejection{Reason: ReasonNoGroupForming}
	}
	if len(r.roster) == r.capacity {
		return nil, &Rejection{Reason: ReasonGroupFull}
	}
	if !r.channelHasGame(ch) {
		return nil, &Rejection{Reason: ReasonWrongChannel}
	}
	if r.onRoster(p) {
		return nil, &Rejection{Reason: ReasonAlreadyJoined}
	}

	r.roster = append(r.roster, p)
	if remaining := r.capacity - len(r.roster); remaining > 0 {
		return &JoinReceipt{Remaining: remaining}, nil
	}
	// Roster complete: the gathering window rolls over into the play window.
	for _, g := range r.games {
		g.LastActivity = now
	}
	return &JoinReceipt{Started: true}, nil
}

// SubmitGuess validates and applies one guess. Checks run in a fixed order
// so the first failure decides the reply: group phase, channel, membership,
// guess shape, word list, instance lookup. Accepted guesses are graded and
// recorded, and terminal outcomes remove the instance before returning.
func (r *Registry) SubmitGuess(ch ChannelID, p PlayerID, rawGuess string) (*GuessReceipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	r.sweepExpired(now)

	author := p
	if r.capacity > 1 {
		if r.groupForming() {
			return nil, &Rejection{Reason: ReasonWaitingForPlayers, Waiting: r.capacity - len(r.roster)}
		}
		if !r.channelHasGame(ch) {
			return nil, &Rejection{Reason: ReasonWrongChannel}
		}
		if !r.onRoster(p) {
			return nil, &Rejection{Reason: ReasonNotInGroup}
		}
		// Group guesses all land on the initiator's instance.
		author = r.roster[0]
	}

	guess := strings.ToUpper(strings.TrimSpace(rawGuess))
	if len(guess) != game.WordLength || !isUpperAlpha(guess) {
		return nil, &Rejection{Reason: ReasonBadGuessFormat}
	}
	if !r.lex.IsValid(guess) {
		return nil, &Rejection{Reason: ReasonNotInWordList}
	}

	key := Key{Channel: ch, Player: author}
	g, ok := r.games[key]
	if !ok {
		return nil, &Rejection{Reason: ReasonNoGame}
	}

	g.RecordGuess(game.Grade(guess, g.Target), now)

	receipt := &GuessReceipt{
		Key:        key,
		GuessCount: g.GuessCount,
		Board:      g.RenderState(),
		Players:    r.participants(p),
	}
	switch {
	case g.IsWon(guess):
		receipt.Outcome = OutcomeWon
		receipt.Target = g.Target
		delete(r.games, key)
		r.resetGroup()
	case g.IsExhausted():
		receipt.Outcome = OutcomeExhausted
		receipt.Target = g.Target
		delete(r.games, key)
		r.resetGroup()
	default:
		receipt.Outcome = OutcomeContinue
	}
	return receipt, nil
}

// GiveUp concedes the caller's game (the group's shared game during group
// play), removes it and reveals the target.
func (r *Registry) GiveUp(ch ChannelID, p PlayerID) (*Concession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	r.sweepExpired(now)

	author := p
	if r.capacity > 1 {
		if !r.channelHasGame(ch) {
			return nil, &Rejection{Reason: ReasonWrongChannel}
		}
		if !r.onRoster(p) {
			return nil, &Rejection{Reason: ReasonNotInGroup}
		}
		author = r.roster[0]
	}

	key := Key{Channel: ch, Player: author}
	g, ok := r.games[key]
	if !ok {
		return nil, &Rejection{Reason: ReasonNoGame}
	}

	c := &Concession{
		Key:     key,
		Target:  g.Target,
		Guesses: g.GuessCount,
		Board:   g.RenderState(),
		Players: r.participants(p),
	}
	delete(r.games, key)
	r.resetGroup()
	return c, nil
}

// ResolveSurrender handles a surrender signal attached to a previously
// broadcast board. The signal is ignored (false) unless ref matches some
// instance's latest broadcast and the signaling player is that game's solo
// player or a roster member. On a match the game ends as a concession.
func (r *Registry) ResolveSurrender(ref string, p PlayerID) (*Concession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	r.sweepExpired(now)

	if r.capacity > 1 && !r.onRoster(p) {
		return nil, false
	}
	for key, g := range r.games {
		if g.BroadcastRef != ref || ref == "" {
			continue
		}
		if r.capacity == 1 && key.Player != p {
			return nil, false
		}
		c := &Concession{
			Key:     key,
			Target:  g.Target,
			Guesses: g.GuessCount,
			Board:   g.RenderState(),
			Players: r.participants(p),
		}
		delete(r.games, key)
		r.resetGroup()
		return c, true
	}
	return nil, false
}

// AttachBroadcastRef records the ref of the latest board broadcast for a
// game, so a later surrender reaction can find it. A no-op when the game
// has already terminated or expired.
func (r *Registry) AttachBroadcastRef(key Key, ref string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepExpired(r.now())

	if g, ok := r.games[key]; ok {
		g.BroadcastRef = ref
	}
}

// Stats reports the live game count and group state for diagnostics.
func (r *Registry) Stats() (games, capacity, joined int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.games), r.capacity, len(r.roster)
}

// isUpperAlpha reports whether s is all uppercase ASCII letters.
func isUpperAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
