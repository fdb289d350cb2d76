package syllabus

type Type string

const (
	Specific    Type = "specific"
	Legislation Type = "legislation"
)

func (t Type) Valid() bool {
	return t == Specific || t == Legislation
}

type ID int64

type Topic struct {
	ID    ID     `json:"id"`
	Title string `json:"title"`
	Color string `json:"color"`
	Type  Type   `json:"type"`
}

const DefaultTitle = "Nuevo Tema"

// Palette is where new topics get their color from
var Palette = []string{
	"#ef4444", "#f97316", "#f59e0b", "#eab308", "#84cc16", "#22c55e",
	"#10b981", "#14b8a6", "#06b6d4", "#0ea5e9", "#3b82f6", "#6366f1",
	"#8b5cf6", "#d946ef", "#ec4899", "#f43f5e",
}

var defaults = []Topic{
	{1, "Teoría del fuego", "#ef4444", Specific},
	{2, "Agentes extintores", "#3b82f6", Specific},
	{3, "Equipos de protección", "#eab308", Specific},
	{4, "Herramientas", "#a855f7", Specific},
	{5, "Construcción", "#f97316", Specific},
	{6, "Sistemas protección", "#ec4899", Specific},
	{7, "Intervenciones Ventilación", "#06b6d4", Specific},
	{8, "Incendios forestales", "#22c55e", Specific},
	{9, "Vehículos", "#6366f1", Specific},
	{10, "Gases", "#14b8a6", Specific},
	{11, "CTE", "#d946ef", Specific},
	{12, "Electricidad", "#facc15", Specific},
	{13, "MMPP", "#f43f5e", Specific},
	{14, "Hidráulica", "#0ea5e9", Specific},
	{15, "Protección civil", "#8b5cf6", Specific},
	{16, "LPRL", "#84cc16", Specific},
	{17, "Física", "#64748b", Specific},
	{18, "Radiocomunicaciones", "#0284c7", Specific},
	{19, "Socorrismo", "#10b981", Specific},
	{20, "Ascensores", "#f59e0b", Specific},
	{21, "Himenópteros", "#a3e635", Specific},

	// light tones, these need to stay readable on dark themes
	{101, "Constitución Española", "#e2e8f0", Legislation},
	{102, "Estatuto de Autonomía", "#cbd5e1", Legislation},
	{103, "Ley de Bases (LBRL)", "#94a3b8", Legislation},
	{104, "TREBEP", "#a5b4fc", Legislation},
	{105, "Ley 39/2015 Procedimiento", "#bae6fd", Legislation},
	{106, "Ley 40/2015 Régimen J.", "#ddd6fe", Legislation},
	{107, "Ley de Igualdad", "#fbcfe8", Legislation},
}

// Defaults returns a fresh copy of the built-in syllabus
func Defaults() []Topic {
	out := make([]Topic, len(defaults))
	copy(out, defaults)
	return out
}
