package main

import (
	"flag"
	"log"

	"github.com/freelancehub/agency-inbox/cmd"
)

// Set at build time with -ldflags "-X main.apiVersion=... -X main.segmentWriteKey=..."
var (
	apiVersion      = "dev"
	segmentWriteKey = ""
)

func main() {
	shouldRunServer := flag.Bool("server", false, "Run server")
	flag.Parse()

	compiledConfig := cmd.CompiledConfig{
		Version:         apiVersion,
		SegmentWriteKey: segmentWriteKey,
	}

	if *shouldRunServer {
		if err := cmd.RunServer(compiledConfig); err != nil {
			log.Fatal(err)
		}
	}
}
