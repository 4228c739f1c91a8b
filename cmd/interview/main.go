package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/KeshavMowar711/AI-Interview-App/internal/client"
	"github.com/KeshavMowar711/AI-Interview-App/internal/flow"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using environment values.")
	}

	baseURL := os.Getenv("INTERVIEW_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}

	// The identity normally comes from the auth provider; here it is issued
	// out of band and injected through the environment.
	identity := flow.Identity{
		UserID: os.Getenv("INTERVIEW_USER_ID"),
		Ready:  true,
	}

	backend := client.New(baseURL)
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	ctx := context.Background()

	fmt.Println("AI Interview — practice technical interviews in your terminal")
	if !identity.SignedIn() {
		fmt.Println("⚠️  INTERVIEW_USER_ID is not set; sign in by exporting it before starting a session.")
	}

	for {
		fmt.Print("\n[s]tart interview, [h]istory, [q]uit > ")
		if !scanner.Scan() {
			return
		}

		switch strings.TrimSpace(strings.ToLower(scanner.Text())) {
		case "s", "start":
			runInterview(ctx, backend, identity, scanner)
		case "h", "history":
			showHistory(ctx, backend, identity, scanner)
		case "q", "quit":
			return
		}
	}
}

func runInterview(ctx context.Context, backend flow.Backend, identity flow.Identity, scanner *bufio.Scanner) {
	fmt.Print("Target role (e.g. Senior Node.js Developer): ")
	if !scanner.Scan() {
		return
	}
	role := scanner.Text()

	initiator := flow.NewInitiator(backend)
	handoff, err := initiator.Start(ctx, role, identity)
	if err != nil {
		switch err {
		case flow.ErrIdentityNotReady, flow.ErrSignInRequired:
			fmt.Println("⚠️  Please sign in first (set INTERVIEW_USER_ID).")
		case flow.ErrRoleRequired:
			fmt.Println("⚠️  A job role is required.")
		default:
			fmt.Printf("❌ %v\n", err)
		}
		return
	}

	engine, err := flow.NewEngine(backend, handoff)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}
	defer engine.Abandon()

	fmt.Printf("\nSession %s started for %q.\n", handoff.SessionID, handoff.JobRole)
	fmt.Println("Generating your first question...")
	if err := engine.Begin(ctx); err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}

	for {
		snap := engine.Snapshot()
		if snap.Err != "" {
			fmt.Printf("\n❌ %s\n", snap.Err)
		}

		if snap.Question == "" {
			fmt.Print("No question available. [r]etry, [q]uit > ")
			if !scanner.Scan() {
				return
			}
			if strings.TrimSpace(strings.ToLower(scanner.Text())) != "r" {
				return
			}
			if err := engine.NextPrompt(ctx); err != nil {
				fmt.Printf("❌ %v\n", err)
			}
			continue
		}

		fmt.Printf("\n--- Question ---\n%s\n\n", snap.Question)
		answer := readAnswer(scanner)
		if answer == "" {
			fmt.Println("Session abandoned.")
			return
		}

		if err := engine.SetAnswer(answer); err != nil {
			fmt.Printf("❌ %v\n", err)
			continue
		}

		fmt.Println("Evaluating response...")
		if err := engine.SubmitAnswer(ctx); err != nil {
			if err == flow.ErrAnswerRequired {
				fmt.Println("⚠️  An answer is required.")
			} else {
				fmt.Printf("❌ %v\n", err)
			}
			continue
		}

		snap = engine.Snapshot()
		if snap.Feedback == nil {
			// Grading failed; the banner prints on the next loop pass.
			continue
		}

		fb := snap.Feedback
		fmt.Printf("\n--- Evaluation: %d/10 ---\n%s\n\n--- Suggested improvement ---\n%s\n", fb.Score, fb.Feedback, fb.Improvement)

		fmt.Print("\n[n]ext prompt, [q]uit > ")
		if !scanner.Scan() {
			return
		}
		if strings.TrimSpace(strings.ToLower(scanner.Text())) != "n" {
			return
		}

		fmt.Println("Generating next question...")
		if err := engine.NextPrompt(ctx); err != nil {
			fmt.Printf("❌ %v\n", err)
			return
		}
	}
}

// readAnswer reads lines until a lone "." terminator. An empty answer
// abandons the session.
func readAnswer(scanner *bufio.Scanner) string {
	fmt.Println("Type your answer, end with a single '.' on its own line (empty answer quits):")

	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "." {
			break
		}
		lines = append(lines, line)
	}

	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

func showHistory(ctx context.Context, backend flow.Backend, identity flow.Identity, scanner *bufio.Scanner) {
	history := flow.NewHistory(backend)

	if err := history.Load(ctx, identity); err != nil {
		switch err {
		case flow.ErrIdentityNotReady, flow.ErrSignInRequired:
			fmt.Println("⚠️  Please sign in first (set INTERVIEW_USER_ID).")
		default:
			fmt.Printf("❌ %v\n", err)
		}
		return
	}

	snap := history.Snapshot()
	if snap.Err != "" {
		fmt.Printf("❌ %s\n", snap.Err)
		return
	}

	if len(snap.Sessions) == 0 {
		fmt.Println("No sessions found. Start a new interview to populate your history.")
		return
	}

	fmt.Println("\n--- Session History ---")
	for i, s := range snap.Sessions {
		fmt.Printf("%d. %s — %s — %d prompts\n", i+1, s.JobRole, s.CreatedAt.Format("2006-01-02"), s.PromptCount())
	}

	fmt.Print("Session number to view (enter to go back) > ")
	if !scanner.Scan() {
		return
	}
	choice := strings.TrimSpace(scanner.Text())
	if choice == "" {
		return
	}

	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > len(snap.Sessions) {
		fmt.Println("⚠️  Invalid selection.")
		return
	}

	if !history.Select(snap.Sessions[n-1].ID) {
		fmt.Println("⚠️  Invalid selection.")
		return
	}

	detail := history.Snapshot().Selected
	fmt.Printf("\n=== %s (%s) ===\n", detail.JobRole, detail.CreatedAt.Format("2006-01-02"))
	if len(detail.QAPairs) == 0 {
		fmt.Println("No completed rounds in this session.")
	}
	for i, qa := range detail.QAPairs {
		fmt.Printf("\n--- Prompt %d (score %d/10) ---\n%s\n\nYour response:\n%s\n\nAI analysis:\n%s\n", i+1, qa.Score, qa.Question, qa.UserAnswer, qa.AIFeedback)
	}

	history.Deselect()
}
