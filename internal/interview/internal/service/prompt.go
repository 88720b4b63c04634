package service

import (
	"fmt"
	"strings"

	"github.com/ecodeclub/mockly/internal/interview/internal/domain"
)

// 生成失败时的兜底话术。对话阶段宁可说句套话也不要卡死整场面试
const (
	fallbackGreeting = "Hello! I'm your AI interviewer today. Welcome to the session! " +
		"Could you please tell me your name and what role you're targeting for this interview?"
	fallbackGreetingReply = "Thank you! Now, what experience level would you say you're at - Junior, Mid-level, or Senior?"
	fallbackPreliminary   = "That's helpful information. Let's begin the technical interview. " +
		"Are you ready for the first question?"
	fallbackQuestion = "What is your experience with the technologies you mentioned?"
)

const greetingContext = `You are a professional AI interviewer starting a technical interview session.

Generate a warm, professional greeting that:
1. Welcomes the candidate
2. Briefly explains you're an AI interviewer
3. Asks for their name and what role they're targeting
4. Keeps it conversational and friendly
5. Should be spoken aloud, so avoid special characters

Respond with ONLY the greeting message, no additional text.`

func greetingReplyContext(answer string) string {
	return fmt.Sprintf(`The user just responded to your greeting. Extract their name and target role from their response, then ask the next preliminary question.

User response: %q

Generate a response that:
1. Acknowledges their name and role if provided
2. Asks about their experience level (Junior, Mid-level, Senior)
3. Is conversational and natural
4. Will be spoken aloud

Respond with ONLY the next question/response, no additional text.`, answer)
}

func preliminaryContext(history []domain.Message, answer string) string {
	return fmt.Sprintf(`You are conducting preliminary questions before a technical interview.

Conversation so far:
%s

Current candidate response: %q

Based on the conversation, determine what preliminary information you still need:
- Name and target role
- Experience level (Junior/Mid/Senior)
- Preferred tech stack/technologies
- Type of interview they want (technical, behavioral, or mixed)
- How many questions they'd like (suggest 5-7)

If you have all the information needed, say "Let's begin the interview" or "Now let's start with the first question" to transition.
If you need more information, ask the next logical preliminary question.

Generate a natural, conversational response that will be spoken aloud.
Respond with ONLY the response, no additional text.`, renderTranscript(history), answer)
}

func conversationalSystemPrompt(context string, phase domain.Phase) string {
	return fmt.Sprintf(`You are a professional AI interviewer conducting a %s interview.

Context: %s

Guidelines:
- Be professional but friendly
- Keep responses concise (1-2 sentences)
- Don't use bullet points or special characters
- Speak naturally as if in a real conversation
- If in preliminary phase, gather the required information
- If in interview phase, follow the structured question format strictly - NO follow-ups unless explicitly requested
- If in feedback phase, provide encouraging closing remarks`, phase, context)
}

func questionSystemPrompt(role, level string, stack []string,
	previousAnswers []string, number, total int) string {
	var answers strings.Builder
	for i, a := range previousAnswers {
		fmt.Fprintf(&answers, "%d. %s\n", i+1, a)
	}
	techs := strings.Join(stack, ", ")
	return fmt.Sprintf(`You are an expert interviewer for a %s %s position.

Candidate's tech stack: %s

This is question %d of %d total questions.

Previous answers so far:
%s
Your task: Write exactly ONE complete interview question. Critical rules:
1. The question MUST be a full, complete sentence that ends with a question mark.
2. Never cut off mid-sentence. Include the entire question from start to finish.
3. Make it appropriate for %s level and relevant to %s.
4. Keep it conversational and natural for spoken delivery.
5. Do not add multiple questions, intros like "Sure," or explanations - only the one question.

Good examples (output only the question):
- "What aspects of JavaScript do you find most interesting or challenging?"
- "How would you explain the difference between let, const, and var to a beginner?"
- "Can you describe a project where you used JavaScript to solve a real problem?"
- "What is your experience with debugging JavaScript in the browser?"

Reply with ONLY the single question text, nothing else.`, level, role, techs, number, total, answers.String(), level, techs)
}

func questionUserPrompt(role, level string, number, total int) string {
	return fmt.Sprintf("Generate question %d of %d for this %s %s candidate. One complete question only.",
		number, total, level, role)
}

func feedbackSystemPrompt(role, level string, stack []string) string {
	return fmt.Sprintf(`You are an expert interview evaluator. Analyze the interview transcript and provide detailed feedback.

Role: %s
Level: %s
Tech Stack: %s

Evaluate the candidate on these categories:
1. Technical Knowledge (0-100)
2. Communication Skills (0-100)
3. Problem Solving (0-100)
4. Experience Relevance (0-100)
5. Overall Fit (0-100)

Provide specific feedback for each category and overall assessment.`, role, level, strings.Join(stack, ", "))
}

func feedbackUserPrompt(history []domain.Message) string {
	return fmt.Sprintf(`Please analyze this interview transcript and provide detailed feedback:

%s

Return your response in the following JSON format:
{
  "totalScore": number (0-100),
  "categoryScores": [
    {"name": "Technical Knowledge", "score": number (0-100), "comment": "detailed feedback"},
    {"name": "Communication Skills", "score": number (0-100), "comment": "detailed feedback"},
    {"name": "Problem Solving", "score": number (0-100), "comment": "detailed feedback"},
    {"name": "Experience Relevance", "score": number (0-100), "comment": "detailed feedback"},
    {"name": "Overall Fit", "score": number (0-100), "comment": "detailed feedback"}
  ],
  "strengths": ["strength1", "strength2", "strength3"],
  "areasForImprovement": ["area1", "area2", "area3"],
  "finalAssessment": "comprehensive final assessment"
}`, renderTranscript(history))
}

// renderTranscript 把历史记录渲染成 Candidate/Interviewer 口吻的纯文本
func renderTranscript(history []domain.Message) string {
	var sb strings.Builder
	for _, msg := range history {
		speaker := "Interviewer"
		if msg.Role == domain.RoleUser {
			speaker = "Candidate"
		}
		fmt.Fprintf(&sb, "%s: %s\n", speaker, msg.Content)
	}
	return strings.TrimRight(sb.String(), "\n")
}
