package contextkeys

// Custom key type to avoid collisions with other context users.
type contextKey string

// DBContextKey is where middleware stores the *gorm.DB handle for a request.
const DBContextKey = contextKey("db")

// SessionContextKey is where middleware stores the decoded session payload.
const SessionContextKey = contextKey("session")
