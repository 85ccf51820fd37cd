package explorer

const (
	chatSystemPrompt = `You are an AI expert helping users understand and implement LLM use cases. The current use case being discussed is related to the conversation context. Provide helpful, practical advice about LLM implementation, benefits, challenges, and modifications. Keep responses concise but informative.`

	explanationSystemPrompt = `You are an AI expert helping users understand LLM use cases within business value chains. Explain the given use case clearly and practically.`

	explanationUserTemplate = `Explain the "%s" use case for the "%s" step of the %s value chain. Describe in 2-3 sentences what it does and how an LLM enables it, then invite follow-up questions.`

	// Shown while the async explanation request is in flight.
	placeholderExplanation = `Generating an explanation for this use case...`

	// Applied when explanation generation fails.
	fallbackIntroTemplate = `This is the "%s" use case for %s. I can help you understand how this LLM use case works, provide implementation details, or help you modify it for your specific needs. What would you like to know?`

	apologyReply = `I apologize, but I encountered an error processing your request. Please try again.`

	// At most this many trailing messages are folded into the chat context.
	contextWindowSize = 5
)
