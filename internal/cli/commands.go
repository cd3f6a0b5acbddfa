package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"searchpilot/internal/config"
	"searchpilot/internal/llm"
)

// handleCommand handles built-in commands, returns true to continue loop,
// false to exit
func (a *app) handleCommand(ctx context.Context, cmd string) bool {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return true
	}

	command := strings.ToLower(parts[0])

	switch command {
	case "/help":
		printHelp()
		return true

	case "/search", "/s":
		query := strings.TrimSpace(strings.TrimPrefix(cmd, parts[0]))
		if query == "" {
			fmt.Printf("%sUsage: /search <query>%s\n", colorYellow, colorReset)
			return true
		}
		a.runSearch(ctx, query)
		return true

	case "/sources":
		a.printSources()
		return true

	case "/model":
		a.handleModelCommand(parts)
		return true

	case "/clear":
		if err := a.store.ClearSession(a.sessionID); err != nil {
			fmt.Printf("%s❌ Failed to clear session: %v%s\n", colorRed, err, colorReset)
		} else {
			fmt.Printf("%s✅ Session cleared%s\n", colorGreen, colorReset)
		}
		return true

	case "/new":
		id, err := a.store.CreateSession()
		if err != nil {
			fmt.Printf("%s❌ Failed to create new session: %v%s\n", colorRed, err, colorReset)
		} else {
			a.sessionID = id
			fmt.Printf("%s✅ New session created%s\n", colorGreen, colorReset)
		}
		return true

	case "/sessions":
		a.printSessions()
		return true

	case "/config":
		cfg, err := config.Load()
		if err != nil {
			fmt.Printf("%s❌ Failed to load config: %v%s\n", colorRed, err, colorReset)
		} else {
			fmt.Println(cfg.String())
		}
		return true

	case "/history":
		if len(parts) > 1 && parts[1] == "clear" {
			historyFile := getHistoryFilePath()
			if historyFile != "" {
				if err := os.WriteFile(historyFile, []byte{}, 0644); err != nil {
					fmt.Printf("%s❌ Failed to clear history: %v%s\n", colorRed, err, colorReset)
				} else {
					fmt.Printf("%s✅ Command history cleared%s\n", colorGreen, colorReset)
				}
			}
		} else {
			fmt.Printf("%sUse Up/Down arrow keys to browse command history%s\n", colorGray, colorReset)
			fmt.Printf("%sUse /history clear to clear history%s\n", colorGray, colorReset)
		}
		return true

	case "/exit", "/quit", "/q":
		fmt.Printf("%sGoodbye! 👋%s\n", colorCyan, colorReset)
		return false

	default:
		fmt.Printf("%s❓ Unknown command: %s%s\n", colorYellow, cmd, colorReset)
		fmt.Println("Type /help for available commands")
		return true
	}
}

// runSearch drives the full research pipeline for one query, streaming the
// answer to the terminal.
func (a *app) runSearch(ctx context.Context, query string) {
	fmt.Println()

	answer, err := a.engine.Run(ctx, query, query, a.priorContext(), func(content string) {
		fmt.Print(content)
	})
	if err != nil {
		fmt.Printf("%s❌ Search aborted: %v%s\n\n", colorRed, err, colorReset)
		return
	}

	a.saveExchange("/search "+query, answer)
	fmt.Println()
	fmt.Println()
}

// printSources shows the ranked result table of the most recent search.
func (a *app) printSources() {
	ranking := a.engine.LastRanking()
	if len(ranking.Display) == 0 {
		fmt.Printf("%sNo search results yet. Run /search <query> first.%s\n", colorGray, colorReset)
		return
	}

	fmt.Printf("\n%sRanked sources from the last search:%s\n\n", colorCyan, colorReset)
	fmt.Printf("%s  #  Final  Rel    Qual   Intent  Domain                         Title%s\n", colorGray, colorReset)
	for i, res := range ranking.Display {
		title := res.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		marker := " "
		if i < len(ranking.Evidence) {
			marker = "*" // part of the evidence handed to synthesis
		}
		fmt.Printf("%s%2d  %.2f   %.2f   %.2f   %+.2f   %-30s %s\n",
			marker, i+1, res.FinalScore, res.RelevanceScore, res.SourceQuality,
			res.IntentMatch, res.Domain, title)
	}
	fmt.Println()
}

// handleModelCommand lists the model catalog or switches the active model.
func (a *app) handleModelCommand(parts []string) {
	if len(parts) < 2 {
		provider, model := a.client.Model()
		fmt.Printf("\n%sCurrent model:%s %s (%s)\n\n", colorCyan, colorReset, model, provider)
		fmt.Printf("%sAvailable models:%s\n", colorYellow, colorReset)
		for _, info := range llm.Models() {
			fmt.Printf("  %d. %-20s %-10s %-10s %s\n",
				info.ID, info.Name, info.Provider, info.Category, info.Description)
		}
		fmt.Printf("\n%sUse /model <number> to switch%s\n\n", colorGray, colorReset)
		return
	}

	id, err := strconv.Atoi(parts[1])
	if err != nil {
		fmt.Printf("%s❌ Invalid model number: %s%s\n", colorRed, parts[1], colorReset)
		return
	}

	info, err := a.client.SetModel(id)
	if err != nil {
		fmt.Printf("%s❌ %v%s\n", colorRed, err, colorReset)
		return
	}
	fmt.Printf("%s✅ Switched to %s (%s)%s\n", colorGreen, info.Name, info.Provider, colorReset)
}

// printSessions lists stored sessions
func (a *app) printSessions() {
	sessions, err := a.store.ListSessions(10)
	if err != nil {
		fmt.Printf("%s❌ Failed to list sessions: %v%s\n", colorRed, err, colorReset)
		return
	}
	if len(sessions) == 0 {
		fmt.Printf("%sNo stored sessions%s\n", colorGray, colorReset)
		return
	}

	fmt.Printf("\n%sRecent sessions:%s\n", colorCyan, colorReset)
	for _, s := range sessions {
		marker := " "
		if s.ID == a.sessionID {
			marker = "*"
		}
		fmt.Printf("%s %s  (last used %s)\n", marker, s.ID, s.UpdatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Println()
}

// printHelp prints help information
func printHelp() {
	fmt.Printf(`
%s📚 searchpilot Help%s

%sBuilt-in Commands:%s
  /search <query> - Research a question on the live web (alias: /s)
  /sources        - Show the ranked sources of the last search
  /model          - List models; /model <number> switches
  /clear          - Clear current session history
  /new            - Create new session
  /sessions       - List stored sessions
  /config         - Show current configuration
  /history        - Show history usage tips
  /history clear  - Clear command history
  /exit           - Exit program

%sInput Tips:%s
  • Plain input chats with the model directly, without web research
  • End line with \ for multi-line input; press Enter twice to submit
  • Use Up/Down arrow keys to browse command history
  • Use Ctrl+A/Ctrl+E to jump to start/end of line
  • Press Ctrl+C to cancel current input

%sExamples:%s
  /search react hooks best practices
  /search bitcoin price today
  /sources

`, colorCyan, colorReset, colorYellow, colorReset, colorYellow, colorReset, colorYellow, colorReset)
}
