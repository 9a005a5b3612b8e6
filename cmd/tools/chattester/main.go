package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/bazabarbershop/baza/backend/pkg/logger"
)

type frame struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId"`
	Data      json.RawMessage `json:"data"`
}

type message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

func main() {
	baseURL := flag.String("url", "http://127.0.0.1:8080", "API 基础地址")
	session := flag.String("session", "", "已有的 sessionID，留空则新建会话")
	timeout := flag.Duration("timeout", 30*time.Second, "单轮等待超时时间")
	flag.Parse()

	_ = logger.Init(os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	sessionID := *session
	if sessionID == "" {
		id, err := createSession(*baseURL)
		if err != nil {
			logger.Fatal("创建会话失败", zap.Error(err))
		}
		sessionID = id
	}

	wsURL := "ws" + strings.TrimPrefix(strings.TrimRight(*baseURL, "/"), "http") + "/api/ws/" + sessionID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		logger.Fatal("连接 WebSocket 失败", zap.String("url", wsURL), zap.Error(err))
	}
	defer conn.Close()

	logger.Info("connected", zap.String("session_id", sessionID))

	if err := readUntil(conn, *timeout, "snapshot"); err != nil {
		logger.Fatal("读取会话快照失败", zap.Error(err))
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		text := scanner.Text()
		if err := conn.WriteJSON(map[string]string{"type": "text", "text": text}); err != nil {
			logger.Fatal("发送消息失败", zap.Error(err))
		}
		if err := readUntil(conn, *timeout, "outcome"); err != nil {
			logger.Fatal("等待回复失败", zap.Error(err))
		}
		fmt.Print("> ")
	}
}

func createSession(baseURL string) (string, error) {
	resp, err := http.Post(strings.TrimRight(baseURL, "/")+"/api/sessions", "application/json", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var snap struct {
		Session struct {
			ID string `json:"id"`
		} `json:"session"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return "", err
	}
	return snap.Session.ID, nil
}

// readUntil prints frames until one of type stop arrives.
func readUntil(conn *websocket.Conn, timeout time.Duration, stop string) error {
	for {
		if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
			return err
		}
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			return err
		}
		printFrame(f)
		if f.Type == stop {
			return nil
		}
	}
}

func printFrame(f frame) {
	switch f.Type {
	case "snapshot":
		var snap struct {
			Messages []message `json:"messages"`
		}
		if err := json.Unmarshal(f.Data, &snap); err == nil {
			for _, m := range snap.Messages {
				fmt.Printf("[%s] %s\n", m.Role, m.Text)
			}
		}
	case "message":
		var m message
		if err := json.Unmarshal(f.Data, &m); err == nil && m.Role != "user" {
			fmt.Printf("[%s] %s\n", m.Role, m.Text)
		}
	case "busy":
		var b struct {
			Busy bool `json:"busy"`
		}
		if err := json.Unmarshal(f.Data, &b); err == nil && b.Busy {
			fmt.Println("...")
		}
	case "outcome":
		var o struct {
			Kind   string `json:"kind"`
			Reason string `json:"reason"`
		}
		if err := json.Unmarshal(f.Data, &o); err == nil {
			fmt.Printf("(%s %s)\n", o.Kind, o.Reason)
		}
	case "error":
		fmt.Printf("error: %s\n", f.Data)
	}
}
