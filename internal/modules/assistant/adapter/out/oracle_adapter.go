package out

import (
	"context"

	assistantout "lernova/internal/modules/assistant/port/out"
	oracledto "lernova/internal/modules/oracle/dto"
	oraclein "lernova/internal/modules/oracle/port/in"
)

type OracleAdapter struct {
	oracle oraclein.Usecase
}

func NewOracleAdapter(oracle oraclein.Usecase) assistantout.Completer {
	return &OracleAdapter{oracle: oracle}
}

func (a *OracleAdapter) Complete(ctx context.Context, system, prompt string, temperature float64, maxTokens int) (string, error) {
	out, err := a.oracle.Complete(ctx, oracledto.CompleteInput{
		System:      system,
		Prompt:      prompt,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", err
	}
	return out.Text, nil
}
