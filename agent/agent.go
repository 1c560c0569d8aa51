// Package agent provides an interactive AI analyst that answers
// questions about a generated performance report.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

const modelName = "gemini-2.5-flash"

const systemPrompt = `You are the analyst of a student-managed investment
fund. You are given the fund's latest performance report in markdown.
Answer questions about it factually; when a figure is not in the report,
say so instead of guessing.`

// Analyst is a chat session grounded on one performance report.
type Analyst struct {
	w    io.Writer
	r    *bufio.Reader
	chat *genai.Chat
}

// New creates an Analyst reading questions from r and writing to w.
func New(w io.Writer, r io.Reader) *Analyst {
	return &Analyst{w: w, r: bufio.NewReader(r)}
}

// Start opens the chat session and feeds it the report.
func (a *Analyst) Start(ctx context.Context, client *genai.Client, report string) error {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}},
	}
	chat, err := client.Chats.Create(ctx, modelName, config, nil)
	if err != nil {
		return fmt.Errorf("could not create chat: %w", err)
	}
	a.chat = chat

	_, err = chat.Send(ctx, &genai.Part{Text: "Here is the report:\n\n" + report})
	if err != nil {
		return fmt.Errorf("could not send report: %w", err)
	}
	return nil
}

// Ask sends one question and returns the analyst's answer.
func (a *Analyst) Ask(ctx context.Context, question string) (string, error) {
	resp, err := a.chat.Send(ctx, &genai.Part{Text: question})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from analyst")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

const prompt = "assist> "

// Run starts the interactive loop. An optional initial question is asked
// first; the loop ends on EOF or "quit".
func (a *Analyst) Run(ctx context.Context, client *genai.Client, report, initial string) error {
	if err := a.Start(ctx, client, report); err != nil {
		return err
	}

	question := strings.TrimSpace(initial)
	for {
		if question != "" {
			answer, err := a.Ask(ctx, question)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.w, answer)
		}
		fmt.Fprint(a.w, prompt)
		line, err := a.r.ReadString('\n')
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		question = strings.TrimSpace(line)
		if question == "quit" || question == "exit" {
			return nil
		}
	}
}
