// Package main is the entry point for the alphadex application.
package main

import (
	"time"

	"github.com/alphadex-cli/alphadex/cmd"
	"github.com/alphadex-cli/alphadex/config"
	"github.com/alphadex-cli/alphadex/internal/cache"
	"github.com/alphadex-cli/alphadex/key"
	"github.com/alphadex-cli/alphadex/log"
	"github.com/alphadex-cli/alphadex/where"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Expired API responses are removed in the background.
	if viper.GetBool(key.CacheEnable) {
		ttl := time.Duration(viper.GetInt(key.CacheTTLHours)) * time.Hour
		go func() {
			if removed := cache.New(where.Responses(), ttl).CollectGarbage(); removed > 0 {
				log.Infof("removed %d expired responses", removed)
			}
		}()
	}

	cmd.Execute()
}
