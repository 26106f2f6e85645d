package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/interview-prep/internal/db"
	"github.com/jonathan/interview-prep/internal/llm"
	"github.com/jonathan/interview-prep/internal/observability"
	"github.com/jonathan/interview-prep/internal/session"
	"github.com/spf13/cobra"
)

var (
	chatUserID      string
	chatInterviewID string
	chatModel       string
	chatTimeoutSecs int
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Run an interactive interview practice session in the terminal",
	Long: `Open a conversation session for one interview: loads the interview and resume
records, builds the system prompt, and streams model responses to the terminal.
Type your answers at the prompt; an empty line or Ctrl-D ends the session.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatUserID, "user-id", "", "User ID owning the interview (required)")
	chatCmd.Flags().StringVar(&chatInterviewID, "interview-id", "", "Interview to practice for (required)")
	chatCmd.Flags().StringVar(&chatModel, "model", "", "Chat model override")
	chatCmd.Flags().IntVar(&chatTimeoutSecs, "stream-timeout", 0, "Per-exchange timeout in seconds")
	_ = chatCmd.MarkFlagRequired("user-id")
	_ = chatCmd.MarkFlagRequired("interview-id")
	rootCmd.AddCommand(chatCmd)
}

func runChat(_ *cobra.Command, _ []string) error {
	userID, err := uuid.Parse(chatUserID)
	if err != nil {
		return fmt.Errorf("invalid --user-id: %w", err)
	}
	interviewID, err := uuid.Parse(chatInterviewID)
	if err != nil {
		return fmt.Errorf("invalid --interview-id: %w", err)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	ctx := context.Background()

	store, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer store.Close()

	llmConfig := llm.DefaultConfig().
		WithChatModel(chatModel).
		WithStreamTimeout(time.Duration(chatTimeoutSecs) * time.Second)
	client, err := llm.NewClient(ctx, llmConfig, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close() //nolint:errcheck

	printer := observability.NewPrinter(os.Stdout)
	sess := session.New(store, client, userID, interviewID)

	if err := sess.Open(ctx); err != nil {
		// Degraded: chat continues with the default persona.
		printer.PrintDegraded(err.Error())
	} else {
		interview, err := store.GetInterviewByID(ctx, userID, interviewID)
		if err == nil {
			printer.PrintInterview(interview)
		}
		resume, err := store.GetResume(ctx, userID)
		if err == nil {
			printer.PrintResume(resume)
		}
	}

	fmt.Println("Type your message and press Enter. An empty line ends the session.")
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 64*1024)

	for {
		fmt.Print("\nyou> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			break
		}

		exchangeCtx, cancel := context.WithTimeout(ctx, llmConfig.StreamTimeout)
		fmt.Print("\nassistant> ")
		_, err := sess.Send(exchangeCtx, input, func(chunk string) {
			fmt.Print(chunk)
		})
		cancel()
		fmt.Println()

		if err != nil {
			if errors.Is(err, session.ErrEmptyInput) || errors.Is(err, session.ErrBusy) {
				continue
			}
			printer.PrintError(err)
			fmt.Println("The last message was not answered; you can send it again.")
		}
	}

	return scanner.Err()
}
