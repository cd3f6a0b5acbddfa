package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"

	"searchpilot/internal/config"
	"searchpilot/internal/lang"
	"searchpilot/internal/llm"
	"searchpilot/internal/search"
	"searchpilot/internal/session"
	"searchpilot/internal/websearch"
)

const (
	Version = "0.1.0"

	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
)

const chatSystemPrompt = "You are searchpilot, a concise research companion. " +
	"Answer directly from what you know; the user runs /search when live web evidence is needed."

// app bundles the live pieces the REPL works with.
type app struct {
	cfg       *config.Config
	client    *llm.Client
	engine    *search.Engine
	store     session.Store
	sessionID string
}

// Run starts the interactive interface
func Run(cfg *config.Config) error {
	printWelcome()

	if !cfg.IsAPIKeyConfigured() {
		return promptAPIKey(cfg)
	}

	client := llm.New(
		cfg.Model.APIKey,
		cfg.Model.BaseURL,
		cfg.Model.Model,
		cfg.Model.Temperature,
		cfg.Model.MaxTokens,
	)

	store, err := session.NewSQLiteStore(cfg.Session.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}
	defer store.Close()

	provider := websearch.FromConfig(cfg.WebSearch)
	engine := search.New(provider, client, search.Config{
		MaxQueries:    cfg.Search.MaxQueries,
		ResultLimit:   cfg.WebSearch.DefaultLimit,
		EvidenceSize:  cfg.Search.EvidenceSize,
		DisplaySize:   cfg.Search.DisplaySize,
		CacheTTL:      time.Duration(cfg.Search.CacheTTLMinutes) * time.Minute,
		SearchTimeout: time.Duration(cfg.WebSearch.TimeoutSeconds) * time.Second,
	}, search.WithLanguageDetector(lang.NewDetector(client)))

	a := &app{
		cfg:    cfg,
		client: client,
		engine: engine,
		store:  store,
	}
	if err := a.resumeOrCreateSession(); err != nil {
		return err
	}

	return runREPL(a)
}

// resumeOrCreateSession continues the most recent session, or starts one.
func (a *app) resumeOrCreateSession() error {
	latest, err := a.store.GetLatestSession()
	if err == nil && latest != nil {
		a.sessionID = latest.ID
		return nil
	}

	id, err := a.store.CreateSession()
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	a.sessionID = id
	return nil
}

// printWelcome prints welcome message
func printWelcome() {
	fmt.Printf("\n%s🔎 searchpilot v%s%s - Intent-aware research companion\n", colorCyan, Version, colorReset)
	fmt.Printf("%sType /help for help, /search <query> for web research, /exit to quit%s\n\n", colorGray, colorReset)
}

// promptAPIKey prompts user to configure API Key
func promptAPIKey(cfg *config.Config) error {
	fmt.Printf("%s⚠️  API Key not configured%s\n\n", colorYellow, colorReset)

	rl, err := readline.New("Please enter your API Key: ")
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	apiKey, err := rl.Readline()
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return fmt.Errorf("API Key cannot be empty")
	}

	cfg.Model.APIKey = apiKey
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("\n%s✅ API Key saved%s\n\n", colorGreen, colorReset)

	return Run(cfg)
}

// getHistoryFilePath returns the readline history file path
func getHistoryFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	historyDir := filepath.Join(homeDir, ".searchpilot")
	if err := os.MkdirAll(historyDir, 0755); err != nil {
		return ""
	}
	return filepath.Join(historyDir, "history")
}

// runREPL runs the interactive loop with readline support
func runREPL(a *app) error {
	rlConfig := &readline.Config{
		Prompt:          fmt.Sprintf("%sYou: %s", colorGreen, colorReset),
		HistoryFile:     getHistoryFilePath(),
		HistoryLimit:    1000,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold:      true,
		DisableAutoSaveHistory: false,
	}

	rl, err := readline.NewEx(rlConfig)
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Printf("\n\n%sGoodbye! 👋%s\n", colorCyan, colorReset)
		cancel()
		rl.Close()
		os.Exit(0)
	}()

	// Multi-line input mode
	var multiLineBuffer strings.Builder
	inMultiLine := false

	for {
		if inMultiLine {
			rl.SetPrompt(fmt.Sprintf("%s...  %s", colorGray, colorReset))
		} else {
			rl.SetPrompt(fmt.Sprintf("%sYou: %s", colorGreen, colorReset))
		}

		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if inMultiLine {
					multiLineBuffer.Reset()
					inMultiLine = false
					fmt.Println()
					continue
				}
				fmt.Printf("\n%sPress Ctrl+C again or type /exit to quit%s\n", colorYellow, colorReset)
				continue
			}
			if err == io.EOF {
				fmt.Printf("\n%sGoodbye! 👋%s\n", colorCyan, colorReset)
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		if inMultiLine {
			if line == "" {
				// Empty line ends multi-line input
				inMultiLine = false
				input := strings.TrimSpace(multiLineBuffer.String())
				multiLineBuffer.Reset()
				if input == "" {
					continue
				}
				a.chat(ctx, input)
				continue
			}
			multiLineBuffer.WriteString(line)
			multiLineBuffer.WriteString("\n")
			continue
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		// A trailing backslash starts multi-line mode
		if strings.HasSuffix(input, "\\") {
			inMultiLine = true
			multiLineBuffer.WriteString(strings.TrimSuffix(input, "\\"))
			multiLineBuffer.WriteString("\n")
			fmt.Printf("%s(Multi-line mode: press Enter twice to submit, Ctrl+C to cancel)%s\n", colorGray, colorReset)
			continue
		}

		if strings.HasPrefix(input, "/") {
			if a.handleCommand(ctx, input) {
				continue
			}
			return nil // /exit command
		}

		a.chat(ctx, input)
	}
}

// chat handles plain conversational input (no web research)
func (a *app) chat(ctx context.Context, input string) {
	messages := []llm.Message{{Role: "system", Content: chatSystemPrompt}}
	messages = append(messages, a.recentMessages()...)
	messages = append(messages, llm.Message{Role: "user", Content: input})

	fmt.Printf("\n%ssearchpilot: %s", colorBlue, colorReset)

	answer, err := a.client.ChatStream(ctx, messages, func(content string) {
		fmt.Print(content)
	})
	if err != nil {
		fmt.Printf("\n%s❌ Error: %v%s\n\n", colorRed, err, colorReset)
		return
	}

	a.saveExchange(input, answer)
	fmt.Println()
	fmt.Println()
}

// recentMessages loads the conversation window for the current session.
func (a *app) recentMessages() []llm.Message {
	stored, err := a.store.GetMessages(a.sessionID, a.cfg.Session.MaxContextMessages)
	if err != nil {
		return nil
	}

	var messages []llm.Message
	for _, msg := range stored {
		messages = append(messages, llm.Message{Role: msg.Role, Content: msg.Content})
	}
	return messages
}

// priorContext renders recent history into the text block research synthesis
// folds into its prompt.
func (a *app) priorContext() string {
	stored, err := a.store.GetMessages(a.sessionID, 6)
	if err != nil || len(stored) == 0 {
		return ""
	}

	var b strings.Builder
	for _, msg := range stored {
		content := msg.Content
		if len(content) > 300 {
			content = content[:300] + "..."
		}
		switch msg.Role {
		case "user":
			b.WriteString("User: ")
		case "assistant":
			b.WriteString("Assistant: ")
		default:
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func (a *app) saveExchange(userContent, assistantContent string) {
	_ = a.store.SaveMessage(a.sessionID, &session.Message{Role: "user", Content: userContent})
	if assistantContent != "" {
		_ = a.store.SaveMessage(a.sessionID, &session.Message{Role: "assistant", Content: assistantContent})
	}
}
