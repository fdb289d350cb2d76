package ui

import "github.com/charmbracelet/lipgloss"

// Theme is the terminal rendition of one of the app themes.
// Light themes invert the text colors.
type Theme struct {
	ID          string
	Name        string
	Description string

	Background lipgloss.Color
	Accent     lipgloss.Color
	Surface    lipgloss.Color
	Light      bool
}

var Themes = []Theme{
	{"tactical", "Táctico", "Operativo. Estructura rígida, datos puros.", "#0f172a", "#f97316", "#1e293b", false},
	{"classic", "Clásico", "Cálido, madera, esquinas suaves.", "#281412", "#fb923c", "#4a2e2b", false},
	{"minimal", "Minimalista", "Limpio. Sin bordes, solo espacio y luz.", "#f8fafc", "#0f172a", "#ffffff", true},
	{"cyber", "Cyberpunk", "Futuro. Ángulos rectos, neón, cristal.", "#09090b", "#d946ef", "#06b6d4", false},
	{"forest", "Bosque", "Orgánico. Texturas naturales.", "#052e16", "#22c55e", "#14532d", false},
	{"oceanic", "Océano", "Fluido. Cristal líquido, muy redondeado.", "#082f49", "#0ea5e9", "#0c4a6e", false},
	{"nebula", "Nébula", "Etéreo. Flotante, sin gravedad.", "#2e1065", "#a855f7", "#000000", false},
	{"sunset", "Atardecer", "Energía. Bloques sólidos y cálidos.", "#451a03", "#f59e0b", "#7c2d12", false},
}

// ThemeByID falls back to the classic theme
func ThemeByID(id string) Theme {
	for _, t := range Themes {
		if t.ID == id {
			return t
		}
	}
	return Themes[1]
}

func (t Theme) Text() lipgloss.Color {
	if t.Light {
		return lipgloss.Color("#0f172a")
	}
	return Primary
}

func (t Theme) Muted() lipgloss.Color {
	if t.Light {
		return lipgloss.Color("#64748b")
	}
	return Secondary
}

// Swatch renders the three theme colors side by side
func (t Theme) Swatch() string {
	block := func(c lipgloss.Color) string {
		return lipgloss.NewStyle().Background(c).Render("  ")
	}
	return block(t.Background) + block(t.Accent) + block(t.Surface)
}
