// Package metadata tracks the static and periodically-refreshed dynamic
// key/value metadata attached to gateway status reports: static values
// come straight from configuration, dynamic values are the stdout of
// configured shell commands, refreshed on a timer.
package metadata

import (
	"context"
	"os/exec"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/loraforward/gateway-bridge/internal/config"
)

var (
	mu     sync.RWMutex
	static map[string]string
	dyn    map[string]string
)

// Setup stores the static metadata and, if dynamic commands are
// configured, starts the periodic refresh loop. It does not block.
func Setup(conf config.Config) error {
	mu.Lock()
	static = conf.MetaData.Static
	dyn = make(map[string]string)
	mu.Unlock()

	if len(conf.MetaData.Dynamic.Commands) == 0 {
		return nil
	}

	interval := conf.MetaData.Dynamic.ExecutionInterval
	if interval == 0 {
		interval = time.Minute
	}
	timeout := conf.MetaData.Dynamic.MaxExecutionDuration
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	go refreshLoop(conf.MetaData.Dynamic.Commands, interval, timeout)
	return nil
}

func refreshLoop(commands map[string]string, interval, timeout time.Duration) {
	refresh(commands, timeout)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		refresh(commands, timeout)
	}
}

func refresh(commands map[string]string, timeout time.Duration) {
	next := make(map[string]string, len(commands))
	for key, cmdline := range commands {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		out, err := exec.CommandContext(ctx, "sh", "-c", cmdline).Output()
		cancel()
		if err != nil {
			log.WithError(err).WithField("key", key).Warn("metadata: dynamic command failed")
			continue
		}
		next[key] = strings.TrimSpace(string(out))
	}

	mu.Lock()
	dyn = next
	mu.Unlock()
}

// Get returns a snapshot of the current static + dynamic metadata,
// merged with dynamic values taking precedence on key collision.
func Get() map[string]string {
	mu.RLock()
	defer mu.RUnlock()

	out := make(map[string]string, len(static)+len(dyn))
	for k, v := range static {
		out[k] = v
	}
	for k, v := range dyn {
		out[k] = v
	}
	return out
}
