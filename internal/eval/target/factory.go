package target

import (
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/rag-bench/internal/eval/spec"
)

func CreateFromSpec(targets map[string]spec.Target) (map[string]Target, func(), error) {
	created := make(map[string]Target, len(targets))

	cleanup := func() {
		for _, t := range created {
			_ = t.Close()
		}
	}

	for name, cfg := range targets {
		switch cfg.Type {
		case "chat":
			timeout := DefaultTimeout
			if cfg.TimeoutSeconds > 0 {
				timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
			}
			created[name] = NewChatTargetWithTimeout(name, cfg.BaseURL, timeout)

		default:
			cleanup()
			return nil, nil, fmt.Errorf("unsupported target type %q for %q", cfg.Type, name)
		}
	}

	return created, cleanup, nil
}
