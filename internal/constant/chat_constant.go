package constant

// Message roles. Only these two participate in a consultation.
const (
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

// Timeline entry states for the text message pipeline.
const (
	TimelineStateOptimistic  = "optimistic"
	TimelineStateReconciling = "reconciling"
	TimelineStateSettled     = "settled"
	TimelineStateFailed      = "failed"
)

// Placeholder shown while a translation is in flight.
const TranslatingPlaceholder = "Translating..."

// Sentinels substituted when the model returns null for a field.
const (
	UnintelligibleSentinel = "(Unintelligible)"
	NoTranslationSentinel  = "(No translation available)"
)

// Title assigned to a freshly created conversation.
const NewConversationTitle = "New Consultation"

// DefaultTargetLang is applied when an audio upload omits targetLang.
const DefaultTargetLang = "English"
