package ui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/feeoracao/oracao/internal/gemini"
	"github.com/feeoracao/oracao/internal/icons"
)

type aboutModel struct {
	common      *commonModel
	appIcon     string
	supportIcon string
	generating  bool
}

func newAboutModel(common *commonModel) aboutModel {
	return aboutModel{common: common}
}

func (m *aboutModel) setIcons(msg iconsLoadedMsg) {
	if msg.app != "" {
		m.appIcon = msg.app
	}
	if msg.support != "" {
		m.supportIcon = msg.support
	}
}

func (m *aboutModel) setIcon(kind gemini.IconKind, uri string) {
	switch kind {
	case gemini.AppIcon:
		m.appIcon = uri
	case gemini.SupportIcon:
		m.supportIcon = uri
	}
}

// iconStatus describes a stored icon, e.g. "image/png · 1.2 MB".
func iconStatus(uri string) string {
	if uri == "" {
		return "Nenhum Ícone"
	}
	mime, data, err := icons.DecodeDataURI(uri)
	if err != nil {
		return "Ícone inválido"
	}
	return fmt.Sprintf("%s · %s", mime, humanize.Bytes(uint64(len(data))))
}

func (m aboutModel) view(spinner string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Fé e Oração"))
	b.WriteString("\n")
	b.WriteString("A identidade visual sagrada representa a essência de nossa jornada espiritual.")
	b.WriteString("\n")
	b.WriteString(selectedStyle.Render(`Versão 1.0.0 "Gold"`))
	b.WriteString(subtleStyle.Render("  Autor: Tiago Santana"))
	b.WriteString("\n")

	b.WriteString(headingStyle.Render("Ícone do App"))
	b.WriteString("\n")
	if m.generating {
		b.WriteString(spinner + " IA Criando...")
	} else {
		b.WriteString(iconStatus(m.appIcon))
	}
	b.WriteString("\n")

	b.WriteString(headingStyle.Render("Apoie o Projeto"))
	b.WriteString("\n")
	b.WriteString(italicStyle.Render("Ajude Tiago Santana a manter esta obra ativa e gratuita."))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("Ícone de gratidão: " + iconStatus(m.supportIcon)))
	b.WriteString("\n")

	b.WriteString(headingStyle.Render("Mensagem do Dia"))
	b.WriteString("\n")
	b.WriteString(italicStyle.Render(`"A oração é a chave que abre o coração de Deus."`))
	b.WriteString("\n\n")
	b.WriteString(subtleStyle.Render("© 2025 • Tiago Santana Dev"))

	return indent(b.String(), 2)
}
