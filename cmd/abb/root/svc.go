package root

import (
	"github.com/walexbarnes/accountabillabuddy/internal/config"
	"github.com/walexbarnes/accountabillabuddy/internal/store"
	"github.com/walexbarnes/accountabillabuddy/internal/tracker"
)

func openService() (*tracker.Service, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	sch, err := cfg.Schema()
	if err != nil {
		return nil, err
	}
	st := store.New(cfg.DataDir, sch, cfg.CacheTTL)
	return tracker.NewService(st), nil
}
