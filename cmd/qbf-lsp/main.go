// SPDX-License-Identifier: Apache-2.0
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"qbf/internal/lspsupport"
)

const lsName = "qbf"

var version = "0.0.1"

func main() {
	commonlog.Configure(1, nil)

	h := lspsupport.NewHandler()

	handler := protocol.Handler{
		Initialize:            h.Initialize,
		Initialized:           h.Initialized,
		Shutdown:              h.Shutdown,
		SetTrace:              h.SetTrace,
		TextDocumentDidOpen:   h.TextDocumentDidOpen,
		TextDocumentDidChange: h.TextDocumentDidChange,
		TextDocumentDidClose:  h.TextDocumentDidClose,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Println("Starting qbf LSP server...")

	if err := s.RunStdio(); err != nil {
		log.Println("Error starting qbf LSP server:", err)
		os.Exit(1)
	}
}
