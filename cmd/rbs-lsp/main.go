// SPDX-License-Identifier: Apache-2.0
package main

import (
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/tliron/glsp/server"

	"rbsparse/internal/config"
	"rbsparse/internal/lsp"
	"rbsparse/internal/workspace"
)

var log = commonlog.GetLogger("rbsparse.main")

func main() {
	cfg := config.Default()
	if dir, err := os.Getwd(); err == nil {
		if loaded, err := config.LoadDefault(dir); err == nil {
			cfg = loaded
		} else {
			log.Errorf("ignoring configuration: %s", err)
		}
	}

	// stdout carries the protocol, so logs go to the configured file or stderr
	commonlog.Configure(cfg.Log.Verbosity, cfg.LogFile())

	loader := workspace.NewLoader(cfg.Workers, cfg.MaxDepth, cfg.Extensions)
	handler := lsp.NewHandler(loader).Protocol()

	s := server.NewServer(&handler, lsp.ServerName, false)

	log.Infof("starting %s language server %s", lsp.ServerName, lsp.Version)

	if err := s.RunStdio(); err != nil {
		log.Errorf("language server stopped: %s", err)
		os.Exit(1)
	}
}
