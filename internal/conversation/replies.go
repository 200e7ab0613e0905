package conversation

// defaultReplies is the fixed pool the simulated counterpart draws from.
var defaultReplies = []string{
	"I love that! I've always thought the same.",
	"That's so cool. We should definitely talk more about that!",
	"Haha, you're funny. I like your vibe.",
	"Tell me more! I'm genuinely curious.",
	"Definitely! When are you free to chat properly?",
}
