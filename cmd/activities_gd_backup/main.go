package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/2beens/trainerdash/internal"
	"github.com/2beens/trainerdash/internal/backup"
	"github.com/2beens/trainerdash/internal/config"
	"github.com/2beens/trainerdash/internal/logging"
	"github.com/2beens/trainerdash/internal/telemetry/metrics"
	"github.com/2beens/trainerdash/pkg"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// stored activities google drive backup cmd

func main() {
	credentialsFile := flag.String(
		"gd-creds",
		"./trainerdash-drive-credentials.json",
		"google drive service account credentials json",
	)
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	folderName := flag.String("folder", backup.DefaultFolderName, "google drive folder the archives are uploaded to")
	shareWith := flag.String("share-with", "", "email to share the uploaded archive with (optional)")
	logsPath := flag.String("logs-path", "", "backup logs file path (empty for stdout)")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      *logsPath,
		LogToStdout:      *logsPath == "",
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        cfg.SentryDSN,
		SentryServerName: "trainerdash-backup",
	})

	log.Println("starting activities backup ...")

	if *credentialsFile == "" {
		log.Fatalln("google drive credentials json not specified")
	}
	if exists, err := pkg.PathExists(*credentialsFile, false); err != nil || !exists {
		log.Fatalf("google drive credentials file [%s] not found: %v", *credentialsFile, err)
	}
	credentialsFileBytes, err := os.ReadFile(*credentialsFile)
	if err != nil {
		log.Fatalf("unable to read credentials file: %s", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	metricsManager := metrics.NewManager("trainerdash", "backup", prometheus.NewRegistry())
	components, err := internal.NewComponents(ctx, cfg, metricsManager)
	if err != nil {
		log.Fatalf("init components: %s", err)
	}
	defer components.Close()

	session, err := components.Sessions.Load(ctx)
	if err != nil {
		log.Errorf("load strava session: %s", err)
		return
	}

	driveStorage, err := backup.NewDriveStorage(ctx, credentialsFileBytes)
	if err != nil {
		log.Errorf("create google drive storage: %s", err)
		return
	}

	backupService := backup.NewService(components.Store, driveStorage, *folderName, *shareWith)
	fileName, err := backupService.DoBackup(ctx, session.AthleteID)
	if err != nil {
		if errors.Is(err, backup.ErrNothingToBackup) {
			log.Warnf("athlete %d: %s", session.AthleteID, err)
			return
		}
		log.Errorf("backup failed: %+v", err)
		return
	}

	log.Printf("backup done: %s", fileName)
}
