// Package gemini wraps the Google generative-model API behind the two call
// shapes the session core consumes: one-shot streaming generation and a
// stateful chat session that streams each reply.
package gemini

import (
	"context"
	"fmt"
	"iter"

	log "github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"promptsmith/config"
	"promptsmith/models"
)

type Client struct {
	client *genai.Client
	model  string
}

// New constructs the backend client from config. Returns (nil, nil) when
// the credential is absent: callers treat a nil client as
// disabled-but-informative, never as a crash.
func New(ctx context.Context) (*Client, error) {
	if !config.Config.Gemini.Enabled {
		log.Warn("Gemini is disabled; generation and chat will be unavailable")
		return nil, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.Config.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{
		client: client,
		model:  config.Config.Gemini.Model,
	}, nil
}

// GenerateStream issues a one-shot generation with a fixed system
// instruction and yields text fragments in arrival order.
func (c *Client) GenerateStream(ctx context.Context, system, prompt string) iter.Seq2[string, error] {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	}
	return func(yield func(string, error) bool) {
		for resp, err := range c.client.Models.GenerateContentStream(ctx, c.model, genai.Text(prompt), cfg) {
			if err != nil {
				yield("", err)
				return
			}
			if !yield(resp.Text(), nil) {
				return
			}
		}
	}
}

// contentRole maps a thread role onto the SDK's role type.
func contentRole(r models.Role) genai.Role {
	if r == models.RoleModel {
		return genai.RoleModel
	}
	return genai.RoleUser
}

// Chat is an opaque handle to one backend conversation. The system
// instruction and seed history are fixed at creation.
type Chat struct {
	chat *genai.Chat
}

// StartChat opens a chat session with the given system instruction, seeded
// with an optional prior transcript.
func (c *Client) StartChat(ctx context.Context, system string, history []models.ChatMessage) (*Chat, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	}

	var seed []*genai.Content
	for _, m := range history {
		seed = append(seed, genai.NewContentFromText(m.Content, contentRole(m.Role)))
	}

	chat, err := c.client.Chats.Create(ctx, c.model, cfg, seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat session: %w", err)
	}
	return &Chat{chat: chat}, nil
}

// SendStream sends one message on the session and yields the reply as text
// fragments in arrival order.
func (c *Chat) SendStream(ctx context.Context, message string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for resp, err := range c.chat.SendMessageStream(ctx, genai.Part{Text: message}) {
			if err != nil {
				yield("", err)
				return
			}
			if !yield(resp.Text(), nil) {
				return
			}
		}
	}
}
