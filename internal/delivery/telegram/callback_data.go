package telegram

import (
	"strconv"
	"strings"

	"github.com/aliskhannn/recall-bot/internal/domain/entities"
)

// Telegram rejects callback data longer than this many bytes.
const maxCallbackDataLen = 64

// Callback action constants.
const (
	actionStart  = "start"  // start a session, optional category
	actionReveal = "reveal" // show the answer of a card
	actionSkip   = "skip"   // move a card to the end of the queue
	actionGrade  = "grade"  // grade a card
	actionRetry  = "retry"  // retry a failed save
	actionStop   = "stop"   // end the session
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// param returns the i-th parameter or an empty string.
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// buildStartCallback starts a session over category, or over every due item
// when category is empty. Categories too long for callback data yield "".
func buildStartCallback(category string) string {
	if category == "" {
		return actionStart
	}

	data := callbackData{Action: actionStart, Params: []string{category}}.encode()
	if len(data) > maxCallbackDataLen {
		return ""
	}
	return data
}

// startCategory extracts the category of a start callback. Categories may
// contain the separator, so every parameter belongs to it.
func startCategory(cd callbackData) string {
	return strings.Join(cd.Params, ":")
}

// Card callbacks carry the item id so presses on a stale card are detected.
// Ids that do not fit are left out and the press applies to the current card.
func buildCardCallback(action, itemID string, extra ...string) string {
	params := append([]string{itemID}, extra...)

	data := callbackData{Action: action, Params: params}.encode()
	if len(data) > maxCallbackDataLen || strings.Contains(itemID, ":") {
		params[0] = ""
		data = callbackData{Action: action, Params: params}.encode()
	}

	return data
}

func buildRevealCallback(itemID string) string {
	return buildCardCallback(actionReveal, itemID)
}

func buildSkipCallback(itemID string) string {
	return buildCardCallback(actionSkip, itemID)
}

func buildGradeCallback(itemID string, q entities.Quality) string {
	return buildCardCallback(actionGrade, itemID, strconv.Itoa(int(q)))
}

func buildRetryCallback() string {
	return actionRetry
}

func buildStopCallback() string {
	return actionStop
}
