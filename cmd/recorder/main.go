package main

// Terminal client for taking a mock interview. Answers are typed instead of
// spoken; each line becomes a transcript segment and a blank line ends the
// recording for the current question.
//
//	recorder -token <jwt>   store a session token obtained from the web login
//	recorder -mock <id>     take the interview with the given mock id

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"interview-backend/internal/apiclient"
	"interview-backend/internal/llm"
	gemini "interview-backend/internal/llm/gemini"
	openai "interview-backend/internal/llm/openai"
	"interview-backend/internal/recorder"
	"interview-backend/internal/session"
	"interview-backend/internal/shared/auth"
	"interview-backend/internal/shared/config"
	"interview-backend/internal/speech"
)

func main() {
	cfg := config.Load()

	token := flag.String("token", "", "Session token to store for later runs")
	mockID := flag.String("mock", "", "Mock interview id to take")
	apiURL := flag.String("api", envOr("IB_API_URL", "http://localhost:8080"), "Backend base URL")
	sessionPath := flag.String("session", "", "Session file path (defaults to the user config dir)")
	flag.Parse()

	store, err := session.NewStore(*sessionPath)
	if err != nil {
		exitErr(err.Error())
	}

	if strings.TrimSpace(*token) != "" {
		if err := storeToken(store, *token); err != nil {
			exitErr(err.Error())
		}
		fmt.Println("session saved")
		return
	}

	if strings.TrimSpace(*mockID) == "" {
		exitErr("mock id is required: recorder -mock <id>")
	}

	model, err := buildLLM(cfg)
	if err != nil {
		exitErr(err.Error())
	}

	stdin := bufio.NewReader(os.Stdin)
	api := apiclient.New(*apiURL, store.GetToken)
	capture := speech.NewCapture(speech.NewStreamRecognizer(stdin), speech.DefaultCaptureOptions())
	rec := recorder.New(api, capture, model, store)

	if err := run(context.Background(), rec, stdin, *mockID); err != nil {
		exitErr(err.Error())
	}
}

func run(ctx context.Context, rec *recorder.Recorder, stdin *bufio.Reader, mockID string) error {
	if err := rec.Load(ctx, mockID); err != nil {
		return err
	}

	iv := rec.Interview()
	fmt.Printf("interview: %s (%d questions)\n", iv.JobPosition, len(iv.Questions))

	for {
		question, ok := rec.ActiveQuestion()
		if !ok {
			break
		}
		fmt.Printf("\nQ%d: %s\n", rec.ActiveIndex()+1, question.Question)
		fmt.Println("type your answer; finish with a blank line")

		if err := rec.StartRecording(ctx); err != nil {
			return err
		}
		// The stream recognizer consumes stdin until the blank line; wait
		// for it to finish before collecting what it captured.
		<-rec.Capture.Done()
		outcome, err := rec.StopAndSubmit(ctx)
		if err != nil {
			if err == recorder.ErrAnswerTooShort {
				fmt.Println(speech.UserMessage(speech.ErrNoSpeech))
				continue
			}
			return err
		}

		fmt.Printf("\nrating: %.1f/10\n%s\n", outcome.Feedback.Rating, feedbackSummary(outcome.Feedback.FormattedFeedback, outcome.Feedback.OverallFeedback))
		if outcome.LastQuestion {
			break
		}
		fmt.Print("press enter for the next question")
		if _, err := stdin.ReadString('\n'); err != nil {
			break
		}
	}

	average, err := rec.Finish(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("\ninterview complete, overall score %.1f/10\n", average)
	return nil
}

func storeToken(store *session.Store, token string) error {
	claims, err := auth.DecodeClaims(token)
	if err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}
	return store.Save(token, session.Profile{Email: claims.Email, Name: claims.Name})
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		return openai.NewClient(os.Getenv("OPENAI_API_KEY"), cfg.LLMModel, "")
	default:
		if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required")
		}
		return gemini.NewClient(cfg.GeminiAPIKey, cfg.LLMModel)
	}
}

func feedbackSummary(formatted, overall string) string {
	if formatted != "" {
		return formatted
	}
	return overall
}

func envOr(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func exitErr(msg string) {
	fmt.Fprintln(os.Stderr, "error:", msg)
	os.Exit(1)
}
