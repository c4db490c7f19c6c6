package gemini

import "fmt"

// FallbackReflection is shown when no reflection can be generated.
const FallbackReflection = "Que esta oração seja um bálsamo para sua alma e uma ponte direta ao coração de Deus. Reze com fé e confiança."

const (
	appIconPrompt     = "A professional and elegant app icon for a Catholic prayer app. Minimalist design, featuring a golden stylized cross with a soft glowing halo behind it on a deep royal purple background. Material design style, 3D soft lighting, sacred art aesthetic, symmetrical, high resolution, 1024x1024. No text."
	supportIconPrompt = "A small, elegant and minimalist icon representing gratitude and blessing. Two hands gently cupping a glowing warm golden heart. Sacred art style, soft lighting, cream and gold color palette, circular composition, high quality, 512x512. No text."
)

func reflectionPrompt(title string) string {
	return fmt.Sprintf("Explique brevemente e de forma inspiradora o significado espiritual da oração \"%s\" para um fiel católico. Use uma linguagem simples e acolhedora em Português do Brasil. Limite a 3 parágrafos curtos.", title)
}

func speechPrompt(text string) string {
	return "Leia esta oração de forma pausada, solene e devota: " + text
}

func dailyInfoPrompt(date string) string {
	return fmt.Sprintf("Informe qual é o santo do dia e o tempo litúrgico para o dia %s no calendário católico romano oficial.", date)
}
