package respond

// Canned conversational lines. Greetings open a session, fallbacks answer
// queries nothing in the knowledge base matched, and follow-ups close every
// turn. Each turn picks one line from the relevant set at random.
var (
	defaultGreetings = []string{
		"Hi there! I'm your friendly university assistant, ready to help! What's on your mind?",
		"Hello! Excited to assist you with university questions. What's up?",
		"Hey! I'm here to answer your questions about our university. What's first?",
	}

	defaultFallbacks = []string{
		"I'm not sure I caught that! Could you rephrase or ask something else?",
		"Oops, I didn't get that one. Try asking in a different way or check out support@university.edu!",
		"Hmm, that's a new one for me! Can you clarify or ask about something else, like admissions or campus tours?",
	}

	defaultFollowUps = []string{
		"Anything else I can help with?",
		"Got more questions? I'm all ears!",
		"What's next on your list?",
	}
)
