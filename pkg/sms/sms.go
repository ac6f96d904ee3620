package sms

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/oauth2/clientcredentials"
)

var ErrNotConfigured = errors.New("sms provider is not configured")

type ISMSSender interface {
	SendMessage(ctx context.Context, phoneNumber, message string) error
}

type Config struct {
	APIURL       string
	FromNumber   string
	ClientID     string
	ClientSecret string
	TokenURL     string
}

func ConfigFromEnv() Config {
	return Config{
		APIURL:       os.Getenv("SMS_API_URL"),
		FromNumber:   os.Getenv("SMS_FROM_NUMBER"),
		ClientID:     os.Getenv("SMS_CLIENT_ID"),
		ClientSecret: os.Getenv("SMS_CLIENT_SECRET"),
		TokenURL:     os.Getenv("SMS_TOKEN_URL"),
	}
}

func (c Config) complete() bool {
	return c.APIURL != "" && c.FromNumber != "" && c.ClientID != "" && c.ClientSecret != "" && c.TokenURL != ""
}

type smsSender struct {
	config Config
	oauth  *clientcredentials.Config
}

func New(config Config) ISMSSender {
	return &smsSender{
		config: config,
		oauth: &clientcredentials.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			TokenURL:     config.TokenURL,
		},
	}
}

type sendRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
}

func (s *smsSender) SendMessage(ctx context.Context, phoneNumber, message string) error {
	if !s.config.complete() {
		return ErrNotConfigured
	}

	body, err := jsoniter.Marshal(sendRequest{
		From: s.config.FromNumber,
		To:   phoneNumber,
		Text: message,
	})
	if err != nil {
		return fmt.Errorf("failed to encode sms request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.APIURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// The client fetches and refreshes the bearer token on its own.
	resp, err := s.oauth.Client(ctx).Do(req)
	if err != nil {
		return fmt.Errorf("failed to send sms: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sms provider returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	return nil
}
