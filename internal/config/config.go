package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Chat      ChatConfig
	Responder ResponderConfig
	Booking   BookingConfig
	AI        AIConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	chat, err := loadChatConfig()
	if err != nil {
		return nil, err
	}

	responder, err := loadResponderConfig(server)
	if err != nil {
		return nil, err
	}

	booking, err := loadBookingConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:    server,
		Log:       LogConfig{Level: getEnvOrDefault("LOG_LEVEL", "info")},
		Chat:      chat,
		Responder: responder,
		Booking:   booking,
		AI:        ai,
	}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// LogConfig selects the zap level.
type LogConfig struct {
	Level string
}

// ChatConfig 描述聊天组件的节奏与会话生命周期。
type ChatConfig struct {
	PacingDelay   time.Duration
	SessionTTL    time.Duration
	KnowledgeFile string
}

func loadChatConfig() (ChatConfig, error) {
	pacing, err := parseDurationEnv("CHAT_PACING_DELAY", 500*time.Millisecond)
	if err != nil {
		return ChatConfig{}, err
	}
	if pacing < 0 {
		return ChatConfig{}, fmt.Errorf("invalid CHAT_PACING_DELAY value %s: must not be negative", pacing)
	}

	ttl, err := parseDurationEnv("CHAT_SESSION_TTL", 30*time.Minute)
	if err != nil {
		return ChatConfig{}, err
	}

	return ChatConfig{
		PacingDelay:   pacing,
		SessionTTL:    ttl,
		KnowledgeFile: strings.TrimSpace(os.Getenv("KNOWLEDGE_FILE")),
	}, nil
}

// ResponderConfig 描述远程文本应答端点。
type ResponderConfig struct {
	URL     string
	Timeout time.Duration
}

func loadResponderConfig(server ServerConfig) (ResponderConfig, error) {
	timeout, err := parseDurationEnv("RESPONDER_TIMEOUT", 12*time.Second)
	if err != nil {
		return ResponderConfig{}, err
	}
	if timeout <= 0 {
		return ResponderConfig{}, fmt.Errorf("invalid RESPONDER_TIMEOUT value %s: must be positive", timeout)
	}

	return ResponderConfig{
		URL:     getEnvOrDefault("RESPONDER_URL", selfURL(server.Addr)+"/api/chat"),
		Timeout: timeout,
	}, nil
}

// selfURL points at this process, for deployments where /api/chat is served locally.
func selfURL(addr string) string {
	host, port, found := strings.Cut(addr, ":")
	if !found {
		return "http://127.0.0.1:" + addr
	}
	if host == "" || host == "0.0.0.0" {
		host = "127.0.0.1"
	}
	return "http://" + host + ":" + port
}

// BookingConfig 描述预约表单转发配置。
type BookingConfig struct {
	Endpoint  string
	AccessKey string
	Subject   string
	Timeout   time.Duration
}

// Enabled 表示是否配置了表单密钥。
func (c BookingConfig) Enabled() bool {
	return c.AccessKey != ""
}

func loadBookingConfig() (BookingConfig, error) {
	timeout, err := parseDurationEnv("BOOKING_TIMEOUT", 15*time.Second)
	if err != nil {
		return BookingConfig{}, err
	}

	return BookingConfig{
		Endpoint:  getEnvOrDefault("BOOKING_ENDPOINT", "https://api.web3forms.com/submit"),
		AccessKey: strings.TrimSpace(os.Getenv("BOOKING_ACCESS_KEY")),
		Subject:   getEnvOrDefault("BOOKING_SUBJECT", "Новая запись — BAZA Barbershop"),
		Timeout:   timeout,
	}, nil
}

// AIConfig 描述大模型相关配置。
type AIConfig struct {
	APIKey      string
	AccessKey   string
	SecretKey   string
	Model       string
	BaseURL     string
	Region      string
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
}

// Enabled 表示是否提供了必需的密钥。
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel 使用配置创建一个模型实例。
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("Ark 凭证或模型配置缺失，至少提供 ARK_API_KEY + Model 或 AK/SK 组合")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("ARK_TOP_P")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:      strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:   strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:   strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:       strings.TrimSpace(os.Getenv("Model")),
		BaseURL:     getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:      getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// parseDurationEnv accepts Go durations ("750ms") or bare integers as milliseconds.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	if ms, err := strconv.Atoi(raw); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
