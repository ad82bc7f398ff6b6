// internal/dispatch/messages.go
//
// Display text for every reply the bot can make. The registry hands back
// reason codes; this file is the one place they become words.

package dispatch

import (
	"fmt"

	"github.com/robalobadob/wordbot/internal/game"
	"github.com/robalobadob/wordbot/internal/session"
)

const (
	msgGroupPlaying       = "A group is playing, wait for the game to finish!"
	msgSoloPlaying        = "Someone is playing, wait for the game(s) to finish!"
	msgWrongPlayersNumber = "If you want to play alone type \"start\"! If you want to play in a group, you need at least two players!"
	msgWaitForPlayers     = "Wait for other players to start the game! To join a game type \"join\"."
	msgAlreadyJoined      = "You already joined a group!"
	msgJoinWrongChannel   = "If you want to join your friends type \"join\" on the channel where the game was initiated!"
	msgStartGroup         = "To start playing with friends type \"start <number_of_players>\""
	msgGuessWrongChannel  = "Type your guess on the channel where the game started!"
	msgNotInGroup         = "You can't guess the word as you are not in a group!"
	msgIncorrectGuess     = "Guess word must contain 5 letters without numbers"
	msgNotInList          = "Guess word is not in word list"
	msgStartPlaying       = "If you want to play alone type \"start\"! To start playing with friends, type \"start <number_of_players>\"!"
	msgWon                = "You won! 🎉"
	msgTooManyGuesses     = "You ran out of guesses!"
	msgConceded           = "Your word was:"
)

func msgGameStarted(prefix string) string {
	return fmt.Sprintf("Game started! Take a guess using \"%sguess [Your guess]\".", prefix)
}

func msgWaitingFor(n int) string {
	return fmt.Sprintf("To start the game wait for %d other people", n)
}

func msgJoined(n int) string {
	return fmt.Sprintf("You successfully joined the group! To start the game wait for %d other people", n)
}

func helpText(prefix string) string {
	return fmt.Sprintf(
		"Type \"%[1]sstart\" to start the game.\n"+
			"Rules:\n"+
			"You have %[2]d tries to guess a %[3]d-letter word in 5 minutes.\n"+
			"To guess type \"%[1]sguess [Your guess]\".\n"+
			"After each guess the letters will show how close your guess was to the word.\n"+
			"If the letter is marked correct, it is in the word and in the correct spot.\n"+
			"If the letter is marked present, it is in the word but in the wrong spot.\n"+
			"If the letter is marked absent, it is not in the word in any spot.\n\n"+
			"Type \"%[1]sstart <number_of_players>\" to start a game with friends.\n"+
			"Additional rules for groups:\n"+
			"You have 5 minutes to gather the specified number of players.\n"+
			"To join a group type \"%[1]sjoin\".\n"+
			"A group can only play if there are no solo games and no other groups playing.",
		prefix, game.GuessBudget, game.WordLength)
}

// rejectionText maps a reason code to display text. The wrong-channel code
// reads differently for joins, which pass join=true.
func rejectionText(rej *session.Rejection, join bool) string {
	switch rej.Reason {
	case session.ReasonGroupBusy, session.ReasonGroupFull:
		return msgGroupPlaying
	case session.ReasonSoloBusy:
		return msgSoloPlaying
	case session.ReasonBadPlayerCount:
		return msgWrongPlayersNumber
	case session.ReasonNoGroupForming:
		return msgStartGroup
	case session.ReasonWrongChannel:
		if join {
			return msgJoinWrongChannel
		}
		return msgGuessWrongChannel
	case session.ReasonAlreadyJoined:
		return msgAlreadyJoined
	case session.ReasonNotInGroup:
		return msgNotInGroup
	case session.ReasonWaitingForPlayers:
		return msgWaitingFor(rej.Waiting)
	case session.ReasonBadGuessFormat:
		return msgIncorrectGuess
	case session.ReasonNotInWordList:
		return msgNotInList
	case session.ReasonNoGame:
		return msgStartPlaying
	}
	return string(rej.Reason)
}
