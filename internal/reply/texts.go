package reply

import "fmt"

const (
	NotInformed = "Não informado"

	NoMatchText      = "😕 Não encontrei veículos com essas características. Tente mudar algum filtro ou peça ajuda!"
	RedirectText     = "Entendido! Se precisar de ajuda para buscar um veículo, é só me dizer a marca, modelo, opcionais ou faixa de preço que procura. 😉"
	ClarifyText      = "Não entendi quais características de veículo você procura. Pode me dar mais detalhes como marca, modelo, opcionais ou preço?"
	DeclineText      = "Entendi! Se precisar de mais informações sobre nossos veículos, é só me chamar. Estou à disposição para ajudar você a encontrar o carro ideal! 😊"
	NoDealershipText = "Desculpe, não consegui identificar a concessionária."
	NoPhotosText     = "Não há mais fotos disponíveis para este veículo."
	FallbackText     = "Desculpe, houve um erro ao buscar as informações. Tente novamente mais tarde."
	QuotaText        = "Você atingiu o limite de atendimentos automáticos deste mês. Um de nossos vendedores vai continuar o atendimento em breve."

	DetailPhotoCaption = "Aqui está uma foto do veículo:"
	DetailPromptText   = "O que deseja fazer agora?"

	LabelDetail  = "Quero saber mais"
	LabelGallery = "Ver mais fotos"
	LabelDecline = "Não, obrigado"
)

func Greeting(dealershipName string) string {
	return fmt.Sprintf("Olá! 👋 Bem-vindo à %s. Como posso ajudar você a encontrar seu próximo carro? Me diga o que procura!", dealershipName)
}

func DetailNotFound(model string) string {
	return fmt.Sprintf("Desculpe, não encontrei informações detalhadas sobre o %s. Posso te ajudar com outro modelo?", model)
}

func PhotoCaption(n int, model string) string {
	return fmt.Sprintf("Foto %d do %s", n, model)
}

// Debug appends internal error detail to a customer text. Only used when debug replies are enabled.
func Debug(text string, err error, raw string) string {
	s := text + "\n\n[DEBUG] " + err.Error()
	if raw != "" {
		s += "\nResposta bruta: " + raw
	}
	return s
}
