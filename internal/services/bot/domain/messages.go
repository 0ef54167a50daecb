package domain

// Reply texts
const (
	MsgWelcome = "Hello! I'm your movie bot. 🍿\n\n" +
		"Just send me the name of any movie or web series, and I'll find the details for you!"
	MsgHelp = "Send me a movie or series title to look it up.\n\n" +
		"/watchlist shows the titles you saved\n" +
		"/suggest picks something trending\n" +
		"/help shows this message"
	MsgSearching      = "Searching for '%s'..."
	MsgNoResults      = "Sorry, I couldn't find anything for that title. Please check the spelling."
	MsgNotMedia       = "Sorry, I found a result but it's not a movie or TV show."
	MsgUpstream       = "Sorry, something went wrong while fetching data. Please try again later."
	MsgUnexpected     = "An unexpected error occurred. The developer has been notified."
	MsgStorage        = "Sorry, your watchlist is unavailable right now. Please try again later."
	MsgEmptyWatchlist = "Your watchlist is empty. Look up a title and tap ➕ to save it."
	MsgWatchlistHead  = "🎞 Your watchlist:"
	MsgForbidden      = "Sorry, statistics are only available to the bot admin."
	MsgStats          = "📊 Usage\n\nTotal requests: %d\nUnique users: %d\nLast 24 hours: %d"
	MsgNoSuggestion   = "Nothing is trending right now, try searching for a title instead."

	AckAdded     = "✅ Added to your watchlist."
	AckDuplicate = "ℹ️ Already in your watchlist."
	AckStale     = "This button is no longer valid."
	AckUpstream  = "Sorry, I couldn't load the details right now. Please try again later."
)
