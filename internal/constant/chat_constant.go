package constant

// Message roles.
const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
	MessageRoleSystem    = "system"
)

// DefaultConversationTitle is assigned until a title is generated or set.
const DefaultConversationTitle = "New Estimate"

// EnrichmentMessageThreshold is the message count at which conversation
// metadata enrichment (summary, tags, project context) starts running.
const EnrichmentMessageThreshold = 3

// ChatHistoryLimit caps how many recent messages are replayed to the model.
const ChatHistoryLimit = 20

// EnrichConversationTopic is the internal queue topic for metadata
// enrichment jobs.
const EnrichConversationTopic = "ENRICH_CONVERSATION"
