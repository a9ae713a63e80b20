package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"docquiz/internal/app"
	"docquiz/internal/client"
	"docquiz/internal/config"
	"docquiz/internal/models"
	"docquiz/internal/quiz"
	"docquiz/internal/session"
)

const help = `Commands:
  1-9      choose an option for the current question
  n, p     next / previous question
  g <k>    go to question k
  o        overview of answered questions
  s        submit
  h        this help`

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}
	cfg := config.FromEnv()

	file := flag.String("file", "", "PDF document to study")
	server := flag.String("server", cfg.ServerURL, "summarization server URL")
	flag.Parse()
	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: quiz -file notes.pdf [-server URL]")
		os.Exit(2)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *file, err)
	}

	flow := app.NewFlow(session.NewStore(), client.New(*server, cfg.RequestTimeout))
	in := bufio.NewScanner(os.Stdin)
	ctx := context.Background()

	fmt.Println("Uploading and summarizing...")
	if err := flow.Upload(ctx, filepath.Base(*file), data); err != nil {
		fail(err)
	}
	fmt.Printf("\nSummary\n-------\n%s\n\n", flow.Store().Summary())

	generate := true
	for {
		if generate {
			fmt.Println("Generating quiz...")
			if err := flow.GenerateQuiz(ctx); err != nil {
				fail(err)
			}
		}
		if !takeQuiz(flow, in) {
			return
		}

		report, err := flow.Report()
		if err != nil {
			fail(err)
		}
		printReport(report)

		switch prompt(in, "\n[r]etake, [n]ew quiz, or [q]uit? ") {
		case "r":
			if err := flow.RestartQuiz(); err != nil {
				fail(err)
			}
			generate = false
		case "n":
			generate = true
		default:
			return
		}
	}
}

// takeQuiz runs the question loop until the attempt is submitted. It returns
// false if input ended first.
func takeQuiz(flow *app.Flow, in *bufio.Scanner) bool {
	c := flow.Controller()
	fmt.Println(help)
	for c.State() != quiz.StateSubmitted {
		printQuestion(c)

		fmt.Print("> ")
		if !in.Scan() {
			return false
		}
		fields := strings.Fields(in.Text())
		if len(fields) == 0 {
			continue
		}

		switch cmd := fields[0]; cmd {
		case "n":
			if !c.CanAdvance() {
				fmt.Println("Choose an answer first.")
			} else if !c.Next() {
				fmt.Println("This is the last question. Use s to submit.")
			}
		case "p":
			if !c.Previous() {
				fmt.Println("This is the first question.")
			}
		case "g":
			k, err := strconv.Atoi(strings.Join(fields[1:], ""))
			if err != nil || c.GoToQuestion(k-1) != nil {
				fmt.Printf("Pick a question between 1 and %d.\n", c.Len())
			}
		case "o":
			printOverview(c)
		case "s":
			if _, err := flow.Submit(); err != nil {
				if errors.Is(err, quiz.ErrIncompleteQuiz) {
					fmt.Printf("%d question(s) still unanswered.\n", c.Remaining())
					continue
				}
				fmt.Println(err)
			}
		case "h":
			fmt.Println(help)
		default:
			option, err := strconv.Atoi(cmd)
			if err != nil {
				fmt.Println("Unknown command. Type h for help.")
				continue
			}
			if err := c.SelectAnswer(c.Current().ID, option-1); err != nil {
				fmt.Printf("Pick an option between 1 and %d.\n", len(c.Current().Options))
			}
		}
	}
	return true
}

func printQuestion(c *quiz.Controller) {
	q := c.Current()
	chosen, ok := c.Answer(q.ID)
	if !ok {
		chosen = models.Unanswered
	}
	fmt.Printf("\nQuestion %d of %d (%d%%)\n%s\n", c.CurrentIndex()+1, c.Len(), c.Progress(), q.Text)
	for i, opt := range q.Options {
		mark := " "
		if i == chosen {
			mark = "*"
		}
		fmt.Printf(" %s %d. %s\n", mark, i+1, opt)
	}
}

func printOverview(c *quiz.Controller) {
	for _, item := range c.Overview() {
		status := "unanswered"
		if item.Answered {
			status = "answered"
		}
		cursor := " "
		if item.Current {
			cursor = ">"
		}
		fmt.Printf("%s %d. %s\n", cursor, item.Index+1, status)
	}
	fmt.Printf("%d of %d answered\n", c.Answered(), c.Len())
}

func printReport(r models.ScoreReport) {
	fmt.Printf("\nScore: %d/%d (%d%%)\n%s\n\n", r.Correct, r.Total, r.Percentage, r.Message())
	for i, q := range r.Questions {
		result := "correct"
		if !q.Correct {
			result = fmt.Sprintf("incorrect, answer was option %d", q.CorrectOption+1)
		}
		fmt.Printf("  %d. %s\n", i+1, result)
	}
}

func prompt(in *bufio.Scanner, msg string) string {
	fmt.Print(msg)
	if !in.Scan() {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(in.Text()))
}

func fail(err error) {
	var genErr *client.GenerationError
	if errors.As(err, &genErr) {
		fmt.Fprintln(os.Stderr, genErr.Message)
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(1)
}
