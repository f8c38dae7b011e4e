// Package openai implements the [ai.Provider] interface against the OpenAI
// chat-completions API, or any compatible endpoint selected via WithBaseURL.
package openai
