package bot

// User-facing texts. HTML parse mode throughout; <code> makes a value
// tap-to-copy in Telegram clients.
const (
	msgNotAuthorized    = "❌ You are not authorized to use this bot."
	msgUnknownCommand   = "❌ Unknown command. Use /start to see the menu."
	msgUsernameTooShort = "❌ Username must be at least 3 characters long."
	msgCreateFailed     = "❌ Failed to create user. Please try again."
	msgListNotReady     = "❌ List users feature not implemented yet."

	cbNotAllowed    = "❌ Not allowed!"
	cbUnrecognized  = "❓ Unrecognized action"
	cbUsernameReady = "✅ Username ready to copy!"
	cbPasswordReady = "✅ Password ready to copy!"
)

const msgAccountCreated = `✅ <b>User created successfully!</b>

👤 <b>Username:</b> <code>%s</code>
🔐 <b>Password:</b> <code>%s</code>
🆔 <b>User ID:</b> %d

💡 <b>Tip:</b> Tap the credentials above to copy them.

⚠️ <b>Important:</b> Store these credentials safely, the password cannot be recovered.`

const msgStart = `🤖 <b>Welcome to the Panel Admin Bot!</b>

📋 <b>Main Menu:</b>

🔹 <b>/adddb [username]</b> - Add new user to database
🔹 <b>/adduser [username]</b> - Add new user to database (same as adddb)
🔹 <b>/help</b> - Show detailed help
🔹 <b>/start</b> - Show this menu

💡 <b>Quick Start:</b>
Send <code>/adddb testuser</code> to create a test account

🔒 Only authorized admins can use this bot.`

const msgHelp = `🤖 <b>Panel Admin Bot - Help</b>

<b>Available Commands:</b>
/start - Show main menu
/adddb [username] - Add new user to database
/adduser [username] - Add new user to database (alias)
/listusers - List registered users
/help - Show this detailed help

<b>Command Examples:</b>
/adddb john_doe
/adduser testuser

<b>How it works:</b>
1. Send /adddb with a username
2. Bot creates the user in the database
3. A password is generated automatically
4. Credentials arrive right here in the chat
5. The user can log in at the panel

<b>Password Policy:</b>
• Generated per user, never reused
• Stored only as a salted hash
• Cannot be recovered if lost

🔒 <b>Security:</b> Only authorized admin IDs can use this bot.`
