package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/vatsavvamsi-hub/autonomous-task-agent/agent"
	"github.com/vatsavvamsi-hub/autonomous-task-agent/internal/utils"
	"github.com/vatsavvamsi-hub/autonomous-task-agent/providers/ai"
)

// LogLevel controls how much detail the logging middleware emits per request.
type LogLevel int

const (
	// LogLevelMinimal logs only the model name, total duration, and token
	// counts. Use this for lightweight audit trails without noise.
	LogLevelMinimal LogLevel = iota

	// LogLevelStandard logs everything in Minimal plus the message count and
	// finish reason. This is the recommended default.
	LogLevelStandard

	// LogLevelVerbose logs everything in Standard plus the last message and
	// the full response content, each truncated to 500 characters.
	//
	// WARNING: verbose output contains raw prompt and reply text, which may
	// include sensitive data. Intended for local debugging only.
	LogLevelVerbose
)

// truncateLen is the maximum content length included in verbose log output.
const truncateLen = 500

// NewLogging returns a middleware that emits structured slog entries before
// and after every provider call. The logger must not be nil; use
// slog.Default() if you have not configured a custom logger.
func NewLogging(logger *slog.Logger, level LogLevel) agent.Middleware {
	return func(next agent.SendFunc) agent.SendFunc {
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			logger.InfoContext(ctx, "llm send", buildRequestAttrs(request, level)...)

			start := time.Now()
			response, err := next(ctx, request)
			elapsed := time.Since(start)

			if err != nil {
				logger.ErrorContext(ctx, "llm send failed",
					slog.String("model", request.Model),
					slog.Duration("duration", elapsed),
					slog.String("error", err.Error()),
				)
				return nil, err
			}

			logger.InfoContext(ctx, "llm send completed", buildResponseAttrs(response, elapsed, level)...)
			return response, nil
		}
	}
}

func buildRequestAttrs(request ai.ChatRequest, level LogLevel) []any {
	attrs := []any{slog.String("model", request.Model)}

	if level >= LogLevelStandard {
		attrs = append(attrs, slog.Int("messages", len(request.Messages)))
	}

	if level >= LogLevelVerbose && len(request.Messages) > 0 {
		last := request.Messages[len(request.Messages)-1]
		attrs = append(attrs,
			slog.String("last_role", string(last.Role)),
			slog.String("last_content", utils.TruncateString(last.Content, truncateLen)),
		)
	}

	return attrs
}

func buildResponseAttrs(response *ai.ChatResponse, elapsed time.Duration, level LogLevel) []any {
	attrs := []any{
		slog.String("model", response.Model),
		slog.Duration("duration", elapsed),
	}

	if response.Usage != nil {
		attrs = append(attrs,
			slog.Int("prompt_tokens", response.Usage.PromptTokens),
			slog.Int("completion_tokens", response.Usage.CompletionTokens),
		)
	}

	if level >= LogLevelStandard {
		attrs = append(attrs, slog.String("finish_reason", response.FinishReason))
	}

	if level >= LogLevelVerbose {
		attrs = append(attrs, slog.String("content", utils.TruncateString(response.Content, truncateLen)))
	}

	return attrs
}
