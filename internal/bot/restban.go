package bot

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/JulMan-Dev/discord-anti-spam/internal/logging"
	"github.com/JulMan-Dev/discord-anti-spam/pkg/util"
)

const apiBase = "https://discord.com/api/v10"

// HTTPPool round-robins warmed fasthttp clients so ban requests never wait
// on a cold TLS handshake. Safe for concurrent use by dispatcher workers.
type HTTPPool struct {
	clients []*fasthttp.Client
	index   atomic.Uint32
}

func NewHTTPPool(size int) *HTTPPool {
	if size <= 0 {
		size = 1
	}

	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		ClientSessionCache: tls.NewLRUClientSessionCache(128),
	}

	clients := make([]*fasthttp.Client, size)
	for i := range clients {
		clients[i] = &fasthttp.Client{
			MaxConnsPerHost:           256,
			MaxIdleConnDuration:       180 * time.Second,
			ReadTimeout:               2 * time.Second,
			WriteTimeout:              2 * time.Second,
			MaxIdemponentCallAttempts: 1,
			DialDualStack:             true,
			TLSConfig:                 tlsConfig,
			NoDefaultUserAgentHeader:  true,
		}
	}
	return &HTTPPool{clients: clients}
}

func (hp *HTTPPool) GetClient() *fasthttp.Client {
	n := hp.index.Add(1) - 1
	return hp.clients[n%uint32(len(hp.clients))]
}

// BanRequestExecutor issues bans straight against the REST API.
type BanRequestExecutor struct {
	pool  *HTTPPool
	token string
}

func NewBanRequestExecutor(token string, poolSize int) *BanRequestExecutor {
	return &BanRequestExecutor{
		pool:  NewHTTPPool(poolSize),
		token: token,
	}
}

func (bre *BanRequestExecutor) ExecuteBan(guildID, userID uint64, reason string) error {
	timer := util.NewTimer()

	url := fmt.Sprintf("%s/guilds/%d/bans/%d", apiBase, guildID, userID)
	body, _ := json.Marshal(map[string]any{"delete_message_seconds": 0})

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodPut)
	req.Header.Set("Authorization", "Bot "+bre.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Audit-Log-Reason", reason)
	req.SetBody(body)

	if err := bre.pool.GetClient().DoTimeout(req, resp, 2*time.Second); err != nil {
		return err
	}

	status := resp.StatusCode()
	if status < 200 || status >= 300 {
		return fmt.Errorf("ban failed with status %d", status)
	}

	logging.Info("ban executed for %d in guild %d in %d µs", userID, guildID, timer.ElapsedUs())
	return nil
}
