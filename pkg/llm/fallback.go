package llm

import "unicode/utf8"

// fallbackResponses are the canned deferral answers used when no model is
// configured or the model call fails. User-facing, hence Russian.
var fallbackResponses = []string{
	"К сожалению, сейчас я не могу обработать ваш вопрос. Пожалуйста, попробуйте позже или обратитесь к ветеринарному врачу напрямую.",
	"Сервис консультаций временно недоступен. Если вопрос срочный, свяжитесь с ближайшей ветеринарной клиникой.",
	"Я пока не могу дать развёрнутый ответ. Рекомендую проконсультироваться с ветеринарным специалистом.",
	"Произошла временная ошибка при обработке запроса. Повторите вопрос чуть позже, пожалуйста.",
}

// FallbackResponse selects a deferral sentence deterministically by the
// message length modulo the number of sentences. The determinism is
// intentional: identical inputs must reproduce identical fallback output.
// Do not replace this with random selection.
func FallbackResponse(userMessage string) string {
	return fallbackResponses[utf8.RuneCountInString(userMessage)%len(fallbackResponses)]
}

// FallbackResponseCount returns the size of the fallback sentence set.
func FallbackResponseCount() int {
	return len(fallbackResponses)
}
