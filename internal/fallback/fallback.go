// Package fallback holds the canned replies used when the generation
// upstream is unavailable. Replies are keyword-matched so the chat
// stays conversational even while the provider is down.
package fallback

import "strings"

type template struct {
	keywords []string
	reply    string
}

// Checked in order; the first keyword hit wins.
var templates = []template{
	{
		keywords: []string{"hello", "hi ", "hey"},
		reply: "Hello! I'm the LearnFlow Assistant. I can help you find notes, assignments and lab manuals, or explain topics from your courses. What are you working on?",
	},
	{
		keywords: []string{"help", "what can you do"},
		reply: "I can explain course topics, point you to notes, assignments, lab manuals and downloads, and help you find your way around LearnFlow. Try asking about a course code like CHB101, or \"where are the 3rd semester notes?\".",
	},
	{
		keywords: []string{"course", "subject", "syllabus"},
		reply: "You can browse all courses and their syllabi from the Courses page. Each course page lists its units, notes and lab material. Ask me about a specific course code (for example CHB101) and I'll pull up its details once I'm back online.",
	},
	{
		keywords: []string{"assignment", "homework", "submission"},
		reply: "Assignment sheets and submission dates are under Resources > Assignments (/resources/assignments). If you tell me the course code I can point you at the exact sheet once I'm back online.",
	},
	{
		keywords: []string{"notes", "resource", "material", "download", "pdf"},
		reply: "Study material lives under Resources: notes at /resources/notes, lab manuals at /resources/lab-manuals and curated downloads at /resources/downloads. Browsing by semester from the home page also works.",
	},
}

const genericReply = "I'm experiencing connection issues right now and can't reach my knowledge service. Please try again in a moment - browsing the Resources section directly may also help in the meantime."

// Reply picks the canned response for a query.
func Reply(query string) string {
	q := " " + strings.ToLower(query) + " "
	for _, t := range templates {
		for _, kw := range t.keywords {
			if strings.Contains(q, kw) {
				return t.reply
			}
		}
	}
	return genericReply
}
