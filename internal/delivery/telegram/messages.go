// messages.go contains message templates and formatting helpers for Telegram.

package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Error and status messages.
const (
	msgInternalError    = "Something went wrong. Please try again later."
	msgNotOwner         = "This is a private study bot."
	msgUnknownCommand   = "Unknown command. Send /help to see what I can do."
	msgStoreUnavailable = "⚠️ Your review items could not be loaded, so nothing is shown. Check the store and restart the bot."
	msgEmptyCollection  = "Your collection is empty. Import some items with `recall import FILE`."
	msgNothingDue       = "🎉 Nothing is due right now. Come back later!"
	msgNoSession        = "There is no review in progress. Send /review to start one."
	msgCardGone         = "This card is no longer current."
	msgSaveRetried      = "✅ Progress saved."
	msgSaveStillFailing = "Saving still fails. Try again later."
	msgSaveFailed       = "⚠️ Your progress could not be saved. It is kept in memory until a save succeeds."
	msgSessionStopped   = "Session stopped."
)

const msgHelp = `Spaced repetition with the SM-2 algorithm.

/review [category] - review the cards that are due
/due - what is due now
/list [all|due|new|difficult] [category] - browse the collection
/stats - collection and session statistics
/help - this message

While a card is hidden you can type your answer to check it. After the answer is shown, rate how well you remembered it: Forgot, Hard, Good, Easy or Very easy.`

const msgWelcome = `Welcome! 👋

I show you facts right before you are about to forget them.

` + msgHelp

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}
