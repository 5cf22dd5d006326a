package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	webapp "github.com/Shivankitsingh3/School-Management-System/apps/web/echo"
	"github.com/Shivankitsingh3/School-Management-System/core"
	logsvc "github.com/Shivankitsingh3/School-Management-System/services/logger"
	"github.com/Shivankitsingh3/School-Management-System/services/schoolapi"
	"github.com/Shivankitsingh3/School-Management-System/storage/tokens"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "WEB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up the session token store backend
	var stores webapp.SessionStores
	switch conf.Tokens.Backend {
	case "redis":
		rdb := tokens.NewRedis(conf)
		defer func() {
			if err := rdb.Close(); err != nil {
				logger.Error(fmt.Sprintf("closing redis: %v", err), err)
			}
		}()
		stores = rdb
	default:
		stores = tokens.NewMemory()
	}

	api, err := schoolapi.NewClient(conf, nil)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up API client: %v", err), err)
	}

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	// =========================================================================
	// Start Web Service

	server := webapp.NewServer(
		webapp.ServerDeps{
			Conf:       conf,
			Logger:     logger,
			API:        api,
			Stores:     stores,
			Validate:   validate,
			Translator: translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
