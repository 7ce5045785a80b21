package ai

import (
	"fmt"
	"strings"
)

// ClosingDirective is sent instead of the customer's text when they end the conversation.
const ClosingDirective = "Responda de forma simpática e cordial, agradecendo o interesse e se colocando à disposição para futuras dúvidas."

func buildExtractionPrompt(dealershipName, utterance string) string {
	return fmt.Sprintf(`Você é um assistente de vendas da concessionária '%s'.
Analise a mensagem do cliente e extraia os seguintes parâmetros de busca de veículos, se mencionados:
- marca (string)
- modelo (string)
- ano_min (integer)
- ano_max (integer)
- preco_min (float)
- preco_max (float)
- cor (string)
- quilometragem_max (integer)
- opcionais (lista de strings, somente entre: %s)
IMPORTANTE: Retorne APENAS um objeto JSON válido, sem explicações, sem comentários, sem texto extra.
Se nenhum parâmetro for identificado, retorne um JSON vazio {}.
Se a mensagem for uma saudação ou pergunta genérica, retorne {"intent": "greeting"}.
Se a mensagem não parecer relacionada a busca de carros, retorne {"intent": "other"}.
Mensagem do cliente: "%s"
JSON:`, dealershipName, strings.Join(KnownOptions, ", "), utterance)
}

func buildComposePrompt(dealershipName, directive string) string {
	return fmt.Sprintf(`Você é um assistente de vendas da concessionária '%s' conversando pelo WhatsApp.
Escreva uma única mensagem curta em português, sem markdown.
%s`, dealershipName, directive)
}
