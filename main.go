package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"chatcore-backend/internal/email"
	"chatcore-backend/internal/handlers"
	"chatcore-backend/internal/hub"
	"chatcore-backend/internal/models"
	"chatcore-backend/internal/snowflake"
	"chatcore-backend/internal/store"
	"chatcore-backend/internal/token"

	"go.uber.org/zap"
)

func setupLogger() (*zap.SugaredLogger, error) {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"app.log", "stdout"}
	config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	logger, err := config.Build()
	if err != nil {
		return nil, err
	}

	sugar := logger.Sugar()
	defer logger.Sync()

	return sugar, nil
}

func readConfigFile() (models.ConfigFile, error) {
	var cfg models.ConfigFile

	configFile, err := os.Open("config.json")
	if err != nil {
		return cfg, err
	}
	defer configFile.Close()

	bytes, err := io.ReadAll(configFile)
	if err != nil {
		return cfg, err
	}

	err = json.Unmarshal(bytes, &cfg)
	if err != nil {
		return cfg, err
	}
	return cfg, nil
}

func main() {
	fmt.Println("Setting up logger...")
	sugar, err := setupLogger()
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println("Reading config file...")
	cfg, err := readConfigFile()
	if err != nil {
		sugar.Fatal(err)
	}

	token.Setup(cfg.JwtSecret)

	sessionIDs, err := snowflake.New(cfg.SnowflakeWorkerID)
	if err != nil {
		sugar.Fatal(err)
	}

	st := store.New(sugar)
	ws := hub.New(sugar, sessionIDs)

	// fan every appended message out to websocket subscribers,
	// including messages synthesized by standup expiry
	st.SetNotify(func(channelID int64, msg models.MessageSnapshot) {
		if err := ws.Emit(hub.MessageCreated, channelID, msg); err != nil {
			sugar.Error(err)
		}
	})

	email.Setup(&cfg, sugar)

	var httpProtocol string
	if cfg.TlsCert != "" && cfg.TlsKey != "" {
		httpProtocol = "https"
	} else {
		httpProtocol = "http"
	}

	fmt.Printf("Server is running on %s://%s:%s\n", httpProtocol, cfg.Address, cfg.Port)

	err = handlers.Setup(&cfg, sugar, st, ws)
	if err != nil {
		sugar.Fatal(err)
	}
}
