package plan

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/td0m/semana/pkg/task/date"
)

const DefaultModel = "gemini-2.5-flash"

var ErrNoAPIKey = errors.New("missing API key")

// Gemini generates plans with the Gemini API
type Gemini struct {
	client *genai.Client
	model  string
	log    *zap.Logger
}

func NewGemini(ctx context.Context, apiKey, model string, log *zap.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if model == "" {
		model = DefaultModel
	}
	if log == nil {
		log = zap.NewNop()
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return &Gemini{client: client, model: model, log: log}, nil
}

func Prompt(request string) string {
	return `Actúa como un asistente de productividad experto.
Genera un plan semanal detallado basado en la solicitud del usuario: "` + request + `".
Distribuye las tareas de manera lógica a través de la semana (Lunes a Domingo).
Asegúrate de asignar tiempos realistas.`
}

func schema() *genai.Schema {
	days := make([]string, len(date.Days))
	for i, d := range date.Days {
		days[i] = string(d)
	}
	categories := make([]string, len(Categories))
	for i, c := range Categories {
		categories[i] = string(c)
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"planName": {Type: genai.TypeString, Description: "Un nombre corto y motivador para el plan"},
			"tasks": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title":           {Type: genai.TypeString},
						"description":     {Type: genai.TypeString},
						"day":             {Type: genai.TypeString, Enum: days},
						"startTime":       {Type: genai.TypeString, Description: "Formato HH:MM (24h)"},
						"durationMinutes": {Type: genai.TypeInteger},
						"category":        {Type: genai.TypeString, Enum: categories},
					},
					Required: []string{"title", "day", "startTime", "durationMinutes", "category"},
				},
			},
		},
		Required: []string{"planName", "tasks"},
	}
}

// Generate makes a single request, there are no retries
func (g *Gemini) Generate(ctx context.Context, request string) (*Plan, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(Prompt(request)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema(),
	})
	if err != nil {
		g.log.Warn("plan request failed", zap.String("model", g.model), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrNoPlan, err)
	}
	p, err := Decode(resp.Text())
	if err != nil {
		g.log.Warn("unusable plan", zap.String("model", g.model), zap.Error(err))
		return nil, err
	}
	g.log.Info("plan generated", zap.String("name", p.Name), zap.Int("tasks", len(p.Tasks)))
	return p, nil
}
