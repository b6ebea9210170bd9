package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"lucid_teaching_agent/agent"
	"lucid_teaching_agent/auth"
	"lucid_teaching_agent/config"
	"lucid_teaching_agent/logger"
	"lucid_teaching_agent/server"
	"lucid_teaching_agent/tts"
)

func main() {
	configPath := flag.String("config", "config/config.json", "path to config.json")
	addr := flag.String("addr", "", "http listen address (overrides config.server_addr)")
	mock := flag.Bool("mock", false, "use canned offline model responses (no API key needed)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	routerLLM, err := buildClient(cfg.LLM, agent.RouterStage, *mock)
	if err != nil {
		log.Fatal("router client", "error", err)
	}
	plannerLLM, err := buildClient(cfg.LLM, agent.PlannerStage, *mock)
	if err != nil {
		log.Fatal("planner client", "error", err)
	}
	coderLLM, err := buildClient(cfg.LLM, agent.CoderStage, *mock)
	if err != nil {
		log.Fatal("coder client", "error", err)
	}

	pipeline := agent.NewPipeline(routerLLM, plannerLLM, coderLLM, log)

	proxy := tts.NewProxy(cfg.TTS.APIKey, cfg.TTS.VoiceID, log)

	var verifier *auth.Verifier
	if cfg.Auth.ClientID != "" {
		verifier = auth.NewVerifier(cfg.Auth.APIBase, cfg.Auth.ClientID)
		log.Info("bearer auth enabled", "client_id", cfg.Auth.ClientID)
	}

	srv, err := server.New(pipeline, proxy.Handle, verifier, log)
	if err != nil {
		log.Fatal("server setup", "error", err)
	}

	listen := cfg.ServerAddr
	if *addr != "" {
		listen = *addr
	}
	if listen == "" {
		listen = ":8000"
	}

	log.Info("starting lucid agent api", "addr", listen, "mock", *mock)
	if err := http.ListenAndServe(listen, srv.Routes()); err != nil {
		log.Fatal("server exited", "error", err)
	}
}

func buildClient(cfg *config.LLMConfig, stage agent.StageConfig, mock bool) (agent.Client, error) {
	if mock {
		return agent.CannedClient{}, nil
	}
	if cfg == nil || cfg.Provider == "" {
		return nil, fmt.Errorf("llm config missing; please set llm.provider/model/api_key in config")
	}
	settings := &agent.Settings{
		Provider: cfg.Provider,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
	}
	switch cfg.Provider {
	case "openai":
		return agent.NewOpenAIClient(settings, stage)
	case "deepseek":
		// DeepSeek exposes an OpenAI-compatible API; base_url is required.
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
		return agent.NewOpenAIClient(settings, stage)
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.Provider)
	}
}
