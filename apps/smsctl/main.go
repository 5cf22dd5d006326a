package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Shivankitsingh3/School-Management-System/core"
	"github.com/Shivankitsingh3/School-Management-System/core/session"
	"github.com/Shivankitsingh3/School-Management-System/services/schoolapi"
	"github.com/Shivankitsingh3/School-Management-System/storage/tokens"
)

func main() {
	defer os.Exit(0)

	logger := log.New(os.Stderr, "SMSCTL : ", log.LstdFlags)

	conf := core.NewConfig()

	store, err := tokens.NewFile(conf.Tokens.File)
	errAndDie(logger, err)

	api, err := schoolapi.NewClient(conf, store)
	errAndDie(logger, err)

	cli := commandLine{
		mgr: session.NewManager(store, api),
		out: os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "smsctl: %v\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(logger *log.Logger, err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
