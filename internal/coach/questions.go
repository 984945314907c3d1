package coach

import "strings"

// DefaultQuestions is the fixed recall question sequence asked for every
// photo in a guided session.
var DefaultQuestions = []string{
	"Who is in this photo?",
	"What did you do that day?",
	"How did you feel during this moment?",
	"Do you remember a smell or sound from this memory?",
	"Is there a story behind this photo?",
}

// ReminderPrompts are the canned reflection prompts offered on the
// reminders page. Saving one attaches a photo snapshot to the reminder.
var ReminderPrompts = []string{
	`Hey — do you remember this? This is your old friend from elementary school. You two were best friends but haven't talked for about five years. Maybe text her and say "Hello old friend". Do you have any memory about her?`,
	`Do you remember this place — your mother's school? Do you still recall what it looked like? Any idea you want to share? Maybe it's time to go back and see it. It's been a long time.`,
	`This photo might bring back a familiar smell or a song. Can you recall a sound or smell that makes this moment vivid?`,
	`Think about a small detail here — a color, a gesture, or a phrase someone said. What comes to mind first?`,
	`Who would you like to tell this story to? Imagine telling them now — what do you say?`,
}

var happyWords = []string{"happy", "joy", "love", "fun", "great", "amazing", "smile"}
var sadWords = []string{"sad", "miss", "cry", "lonely"}

// Encouragement returns a short supportive line matched to the tone of an
// answer.
func Encouragement(answer string) string {
	t := strings.ToLower(answer)
	for _, w := range happyWords {
		if strings.Contains(t, w) {
			return "That sounds like a happy memory."
		}
	}
	for _, w := range sadWords {
		if strings.Contains(t, w) {
			return "Thank you for sharing — that was meaningful."
		}
	}
	return "Nice — saved your memory."
}
