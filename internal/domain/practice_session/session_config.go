package practicesession

// DefaultMaxQuestions caps a session when no explicit limit is configured.
const DefaultMaxQuestions = 10

// SessionConfig holds the constraints for drawing a practice session.
type SessionConfig struct {
	MaxQuestions int // upper bound; the bank size wins when smaller, 0 draws nothing
}

// DefaultConfig returns a config capped at DefaultMaxQuestions.
func DefaultConfig() SessionConfig {
	return SessionConfig{
		MaxQuestions: DefaultMaxQuestions,
	}
}
