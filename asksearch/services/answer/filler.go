package answer

import "asksearch/asksearch/utils/types"

// fillerSet is served whenever the model's output cannot be parsed into
// follow-up pairs. It is an array so callers can never mutate it in place.
var fillerSet = [...]types.AnswerItem{
	{
		Question: "What are the key benefits of this topic?",
		Answer:   "This topic offers several advantages that can be beneficial in various contexts.",
	},
	{
		Question: "How does this compare to alternatives?",
		Answer:   "Each approach has its own strengths and considerations to evaluate.",
	},
	{
		Question: "What are the potential drawbacks?",
		Answer:   "Like any topic, there are some limitations and challenges to be aware of.",
	},
	{
		Question: "What should beginners know about this?",
		Answer:   "Starting with the fundamentals and basic concepts is usually the best approach.",
	},
	{
		Question: "What are the future trends in this area?",
		Answer:   "This field continues to evolve with new developments and innovations.",
	},
}

// FillerSize is the number of follow-ups the prompt asks for.
const FillerSize = len(fillerSet)

// FillerSet returns a fresh copy of the generic follow-up pairs.
func FillerSet() []types.AnswerItem {
	out := make([]types.AnswerItem, len(fillerSet))
	copy(out, fillerSet[:])
	return out
}
