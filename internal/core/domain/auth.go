package domain

// AuthPhase is the state of the authentication gate.
type AuthPhase string

const (
	PhaseChecking        AuthPhase = "checking"
	PhaseAuthenticated   AuthPhase = "authenticated"
	PhaseUnauthenticated AuthPhase = "unauthenticated"
)

// AuthResult is the uniform reply of every auth provider.
type AuthResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    *User  `json:"user,omitempty"`
	Token   string `json:"token,omitempty"`
}

// Failure builds an unsuccessful result.
func Failure(msg string) AuthResult {
	return AuthResult{Success: false, Message: msg}
}
