package tunnel

import (
	"context"
	"fmt"
	"log"
	"os"

	"courtside/internal/config"

	"github.com/joho/godotenv"
	"golang.ngrok.com/ngrok/v2"
)

// Service exposes the gallery server through an ngrok tunnel. A nil
// *Service is a valid disabled service; all methods no-op on it.
type Service struct {
	config *config.TunnelConfig
	agent  ngrok.Agent
	tunnel ngrok.EndpointForwarder
}

// NewService creates a tunnel service, or (nil, nil) when tunneling is
// disabled in the config.
func NewService(cfg *config.TunnelConfig) (*Service, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	// Load .env file if it exists (for auth token)
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			log.Printf("Warning: Could not load .env file: %v", err)
		}
	}

	// Get auth token from environment variable if not set in config
	authToken := cfg.AuthToken
	if authToken == "" {
		authToken = os.Getenv("NGROK_AUTHTOKEN")
	}

	if authToken == "" {
		return nil, fmt.Errorf("ngrok auth token not found. Set NGROK_AUTHTOKEN in .env file or config")
	}

	agent, err := ngrok.NewAgent(ngrok.WithAuthtoken(authToken))
	if err != nil {
		return nil, fmt.Errorf("failed to create ngrok agent: %v", err)
	}

	return &Service{
		config: cfg,
		agent:  agent,
	}, nil
}

// StartTunnel forwards public traffic to the local gallery address.
func (s *Service) StartTunnel(ctx context.Context, localAddress string) error {
	if s == nil {
		return nil // Service is disabled
	}

	log.Println("🌐 Starting ngrok tunnel...")

	var endpointOpts []ngrok.EndpointOption
	if s.config.Domain != "" {
		endpointOpts = append(endpointOpts, ngrok.WithURL(s.config.Domain))
	}

	tunnel, err := s.agent.Forward(ctx, ngrok.WithUpstream(localAddress), endpointOpts...)
	if err != nil {
		return fmt.Errorf("failed to create ngrok tunnel: %v", err)
	}

	s.tunnel = tunnel

	log.Printf("✅ Ngrok tunnel active!")
	log.Printf("🌍 Public URL: %s", tunnel.URL().String())
	log.Printf("🔗 Forwarding to: %s", localAddress)

	return nil
}

// GetPublicURL returns the public URL of the tunnel, or "" when the tunnel
// is disabled or not yet started.
func (s *Service) GetPublicURL() string {
	if s == nil || s.tunnel == nil {
		return ""
	}
	return s.tunnel.URL().String()
}

// Stop closes the tunnel.
func (s *Service) Stop() error {
	if s == nil || s.tunnel == nil {
		return nil
	}

	log.Println("🔌 Stopping ngrok tunnel...")
	return s.tunnel.Close()
}

// Wait blocks until the tunnel closes.
func (s *Service) Wait() {
	if s == nil || s.tunnel == nil {
		return
	}
	<-s.tunnel.Done()
}
