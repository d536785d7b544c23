package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lovelys-studio/backoffice/internal/domain/auth"
	"github.com/lovelys-studio/backoffice/internal/domain/report"
	"github.com/lovelys-studio/backoffice/internal/domain/studio"
)

// FallbackAnswer is returned whenever the generator fails.
const FallbackAnswer = "Lo siento, encontré un error al analizar los datos. Por favor, inténtalo de nuevo."

const systemInstruction = `Tu nombre es Asistente Virtual Lovelys. Eres un experto Analista de Estudios Webcam para el Estudio Lovely's.
El usuario gestiona un estudio con salas independientes de modelos, monitoras y aseo.

Contexto del Sistema:
- La medición es por TOKENS.
- Ciclos de quincena: Q1 (del 5 al 19) y Q2 (del 20 al 4 del mes siguiente).

Lineamientos de análisis:
- Identifícate siempre como Asistente Virtual Lovelys.
- Analiza tendencias de tokens por plataforma y por modelo.
- Compara el rendimiento entre las quincenas Q1 y Q2.
- Responde siempre en español de forma directa, elegante y profesional.`

type ReportServiceImpl struct {
	store     studio.StateStore
	generator report.Generator
}

func NewReportService(store studio.StateStore, generator report.Generator) report.ReportService {
	return &ReportServiceImpl{
		store:     store,
		generator: generator,
	}
}

// Ask implements report.ReportService. Generator failures are logged and answered with FallbackAnswer.
func (s *ReportServiceImpl) Ask(ctx context.Context, req report.AssistantRequest) (report.AssistantResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return report.AssistantResponse{}, err
	}
	if !actor.IsAdmin() {
		return report.AssistantResponse{}, auth.ErrForbidden
	}

	prompt, err := BuildPrompt(s.store.Snapshot(), req.Query)
	if err != nil {
		return report.AssistantResponse{}, err
	}

	answer, err := s.generate(ctx, prompt)
	if err != nil {
		slog.Error("Assistant generation failed", "user_id", actor.UserID, "error", err)
		return report.AssistantResponse{Answer: FallbackAnswer, Fallback: true}, nil
	}
	return report.AssistantResponse{Answer: answer}, nil
}

func (s *ReportServiceImpl) generate(ctx context.Context, prompt string) (string, error) {
	if s.generator == nil {
		return "", report.ErrGeneratorUnavailable
	}
	answer, err := s.generator.Generate(ctx, systemInstruction, prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(answer) == "" {
		return "", report.ErrEmptyAnswer
	}
	return answer, nil
}

// BuildPrompt serialises the snapshot without credentials and appends the user query.
func BuildPrompt(st studio.State, query string) (string, error) {
	data, err := json.Marshal(StripCredentials(st))
	if err != nil {
		return "", fmt.Errorf("failed to serialise studio data: %w", err)
	}
	return fmt.Sprintf("Datos del estudio (JSON): %s.\n\nConsulta del Usuario: %s", data, strings.TrimSpace(query)), nil
}

// StripCredentials returns a copy of st with every password field cleared.
func StripCredentials(st studio.State) studio.State {
	accounts := make([]studio.Account, len(st.Rules.Accounts))
	for i, acc := range st.Rules.Accounts {
		acc.Password = ""
		acc.PasswordHash = ""
		accounts[i] = acc
	}
	st.Rules.Accounts = accounts
	return st
}
