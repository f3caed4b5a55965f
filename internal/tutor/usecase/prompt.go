package usecase

import (
	"fmt"
	"strings"

	"video-tutor/internal/lesson"
	"video-tutor/internal/session"
	"video-tutor/pkg/openai"
)

// tutorRules is appended to every system prompt. The scope rules are
// deliberately lenient: any question about the same mathematical object as
// the lesson gets answered; only clearly unrelated topics are declined.
const tutorRules = `FORMATTING RULES:
- Use clean, step-by-step formatting with line breaks between steps
- Use normal symbols (π, ×, ÷, ^, √) or ASCII like r^2; avoid LaTeX
- Show calculations clearly and end with a clear final answer
- Keep answers concise enough for voice delivery

YOUR ROLE:
- Answer questions about the video topic and RELATED concepts
- Be very lenient: if the question concerns the same mathematical object,
  shape, or a closely related idea, always answer
- Include a practical real-life example when it helps understanding
- Only decline questions about a completely different subject, and decline
  in the student's language, offering to return to the lesson topic

CONVERSATION MEMORY:
- You can see the conversation history; build on earlier explanations and
  answer follow-up questions naturally`

// buildMessages assembles the completion request in fixed order: system
// preamble (language + lesson + rules), full turn history, auxiliary
// context, and the current question last.
func buildMessages(catalog *lesson.Catalog, lessonID, language string, history []session.Entry, auxiliary []string, question string) []openai.Message {
	var sys strings.Builder
	sys.WriteString(lesson.SystemPrompt(language))
	sys.WriteString("\n\n")
	sys.WriteString(catalog.Context(lessonID))
	sys.WriteString("\n")
	sys.WriteString(tutorRules)

	messages := make([]openai.Message, 0, len(history)+3)
	messages = append(messages, openai.Message{Role: openai.RoleSystem, Content: sys.String()})

	for _, e := range history {
		messages = append(messages, openai.Message{Role: e.Role, Content: e.Content})
	}

	if len(auxiliary) > 0 {
		messages = append(messages, openai.Message{
			Role:    openai.RoleSystem,
			Content: "Additional context from the student's uploads:\n" + strings.Join(auxiliary, "\n---\n"),
		})
	}

	messages = append(messages, openai.Message{Role: openai.RoleUser, Content: question})
	return messages
}

// fallbackAnswer is returned when the completion service stays unreachable.
// It stays on topic and never exposes the underlying error.
func fallbackAnswer(lessonTitle string) string {
	return fmt.Sprintf(`I'm here to help with %s! However, I encountered a technical issue with the AI service.

Please try asking your question again, and I'll do my best to provide a helpful explanation about the mathematical concepts you're studying.

I'm still here to help you learn!`, lessonTitle)
}
