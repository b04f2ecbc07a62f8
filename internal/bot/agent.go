package bot

// Agent binds a provisioned bot identity to a strategy. It embeds the Brain so
// an Agent can sit anywhere a decision provider is expected.
type Agent struct {
	ID          string
	DisplayName string
	Brain
}

// NewAgent builds an agent for a pool identity, choosing the strategy from the
// identity's difficulty.
func NewAgent(identity BotIdentity) *Agent {
	return &Agent{
		ID:          identity.UserID,
		DisplayName: identity.DisplayName,
		Brain:       BrainForDifficulty(identity.Difficulty),
	}
}
