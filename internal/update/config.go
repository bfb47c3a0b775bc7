package update

import "github.com/sandeepkv93/tasklist/internal/config"

type RuntimeConfig struct {
	// ListID identifies this list as the source of drag gestures.
	ListID       string
	ConfirmClear bool
	CharLimit    int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		ListID:       "todo-list",
		ConfirmClear: true,
		CharLimit:    256,
	}
}

func RuntimeConfigFrom(cfg config.Config) RuntimeConfig {
	rc := DefaultRuntimeConfig()
	rc.ListID = cfg.Store.Slot
	rc.ConfirmClear = cfg.UI.ConfirmClear
	if cfg.UI.CharLimit > 0 {
		rc.CharLimit = cfg.UI.CharLimit
	}
	return rc
}
