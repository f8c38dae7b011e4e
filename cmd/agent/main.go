// Package main provides the interactive CLI for the autonomous task agent.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"

	"github.com/vatsavvamsi-hub/autonomous-task-agent/agent"
	"github.com/vatsavvamsi-hub/autonomous-task-agent/agent/middleware"
	"github.com/vatsavvamsi-hub/autonomous-task-agent/config"
	"github.com/vatsavvamsi-hub/autonomous-task-agent/core/prompt"
	"github.com/vatsavvamsi-hub/autonomous-task-agent/providers/ai/openai"
	"github.com/vatsavvamsi-hub/autonomous-task-agent/providers/tool"
	"github.com/vatsavvamsi-hub/autonomous-task-agent/providers/tool/calculator"
	"github.com/vatsavvamsi-hub/autonomous-task-agent/providers/tool/csvanalyzer"
	"github.com/vatsavvamsi-hub/autonomous-task-agent/providers/tool/filereader"
	"github.com/vatsavvamsi-hub/autonomous-task-agent/providers/tool/textsearch"
	"github.com/vatsavvamsi-hub/autonomous-task-agent/providers/tool/webfetch"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

var exampleTasks = []string{
	"What is the total revenue in the sales data?",
	"Find all employees in the Engineering department and calculate their average salary.",
	"Search for 'expansion' in the company notes and summarize what you find.",
	"Which product category has the highest total sales?",
	"Read the company notes and tell me about the Q3 performance.",
	"How many employees were hired after 2022? What's their average salary?",
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%sError: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	taskAgent, err := buildAgent(cfg, logger)
	if err != nil {
		return err
	}

	printBanner()

	rl, err := readline.New(colorCyan + ">> Enter your task: " + colorReset)
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	for {
		input, err := rl.Readline()
		if err != nil {
			// Ctrl+C and Ctrl+D both end the session.
			fmt.Printf("\n%sGoodbye!%s\n", colorGreen, colorReset)
			return nil
		}

		task := strings.TrimSpace(input)
		if task == "" {
			continue
		}

		switch strings.ToLower(task) {
		case "quit", "exit":
			fmt.Printf("%sGoodbye!%s\n", colorGreen, colorReset)
			return nil
		case "examples":
			printExamples()
			continue
		}

		runTask(taskAgent, task)
	}
}

func buildAgent(cfg *config.Config, logger *slog.Logger) (*agent.Agent, error) {
	provider := openai.New().
		WithAPIKey(cfg.APIKey).
		WithBaseURL(cfg.BaseURL)

	registry, err := tool.NewRegistry(
		calculator.New(),
		csvanalyzer.New(cfg.SampleDataDir),
		filereader.New(cfg.SampleDataDir),
		textsearch.New(cfg.SampleDataDir),
		webfetch.New(nil),
	)
	if err != nil {
		return nil, err
	}

	middlewares := []agent.Middleware{
		middleware.NewLogging(logger, middleware.LogLevelStandard),
		middleware.NewRetry(middleware.RetryConfig{}),
	}

	return agent.New(provider, registry, middlewares,
		agent.WithModel(cfg.Model),
		agent.WithMaxSteps(cfg.MaxSteps),
		agent.WithLogger(logger),
		agent.WithEnvironment(prompt.Facts{
			DataDir: cfg.SampleDataDir,
			Files:   listDataFiles(cfg.SampleDataDir),
		}),
	)
}

// listDataFiles returns the file names in dir, sorted. A missing directory
// just means no environment facts are advertised to the model.
func listDataFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}

func runTask(taskAgent *agent.Agent, task string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			fmt.Printf("\n%sReceived interrupt, cancelling...%s\n", colorYellow, colorReset)
			cancel()
		case <-ctx.Done():
		}
	}()

	start := time.Now()
	result, err := taskAgent.Run(ctx, task)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\n%s[Error] %v%s\n", colorRed, err, colorReset)
		fmt.Fprintf(os.Stderr, "%sMake sure your OPENAI_API_KEY is set correctly.%s\n\n", colorDim, colorReset)
		return
	}

	fmt.Println()
	fmt.Printf("%s%sANSWER%s\n", colorBold, colorGreen, colorReset)
	fmt.Println(result.Answer)
	fmt.Printf("%s(%d step(s), %s, %s)%s\n\n",
		colorDim, result.Steps, result.Outcome, time.Since(start).Round(time.Millisecond), colorReset)
}

func printBanner() {
	line := strings.Repeat("=", 60)
	fmt.Println(line)
	fmt.Printf("%s   AUTONOMOUS TASK AGENT%s\n", colorBold, colorReset)
	fmt.Println("   Powered by the ReAct (Reason + Act) pattern")
	fmt.Println(line)
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  Type a task in plain English to get started.")
	fmt.Println("  Type 'examples' to see sample tasks.")
	fmt.Println("  Type 'quit' or 'exit' to stop.")
	fmt.Println()
}

func printExamples() {
	fmt.Println("\nSample tasks you can try:")
	fmt.Println()
	for i, example := range exampleTasks {
		fmt.Printf("  %s%d.%s %s\n", colorCyan, i+1, colorReset, example)
	}
	fmt.Println()
}
