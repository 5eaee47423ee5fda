// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"flag"
	"log"

	"github.com/relabs-tech/head_sync/internal/app"
	"github.com/relabs-tech/head_sync/internal/config"
)

func main() {
	configPath := flag.String("config", "head_sync_config.txt", "path to KEY=VALUE config file")
	flag.Parse()

	log.Println("starting head-sync behavior classifier (MQTT subscriber)")

	// Load configuration
	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunBehavior(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
