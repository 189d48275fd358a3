package resettoken

// Error carries a machine-readable reason code. Callers forward the code
// into a translated message and never branch on its value.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return "password reset token error: " + e.Reason
}

var (
	ErrTokenMalformed = &Error{Reason: "invalid"}
	ErrTokenExpired   = &Error{Reason: "expired"}
	ErrTokenUsed      = &Error{Reason: "used"}
)
