package bot

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

const gatewayURL = "wss://gateway.discord.gg/?v=10&encoding=json"

// ProbeGatewayLatency opens a short-lived gateway connection and measures
// the hello-to-heartbeat-ack round trip. Used by the stats command; the
// real gateway session is discordgo's.
func ProbeGatewayLatency(timeout time.Duration) (time.Duration, error) {
	dialer := &websocket.Dialer{HandshakeTimeout: timeout}
	conn, _, err := dialer.Dial(gatewayURL, nil)
	if err != nil {
		return 0, fmt.Errorf("gateway dial failed: %w", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(timeout)
	_ = conn.SetReadDeadline(deadline)
	_ = conn.SetWriteDeadline(deadline)

	// Hello frame first.
	var hello struct {
		Op int `json:"op"`
	}
	if _, msg, err := conn.ReadMessage(); err != nil {
		return 0, fmt.Errorf("gateway hello read failed: %w", err)
	} else if err := json.Unmarshal(msg, &hello); err != nil || hello.Op != 10 {
		return 0, fmt.Errorf("unexpected gateway hello")
	}

	start := time.Now()
	heartbeat := []byte(`{"op":1,"d":null}`)
	if err := conn.WriteMessage(websocket.TextMessage, heartbeat); err != nil {
		return 0, fmt.Errorf("heartbeat write failed: %w", err)
	}

	for {
		var frame struct {
			Op int `json:"op"`
		}
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return 0, fmt.Errorf("heartbeat ack read failed: %w", err)
		}
		if err := json.Unmarshal(msg, &frame); err != nil {
			continue
		}
		if frame.Op == 11 {
			return time.Since(start), nil
		}
	}
}
