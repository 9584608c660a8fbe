package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang-stock-advisor/internal/repository"
	"golang-stock-advisor/internal/service"

	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run one rating pipeline pass and exit",
	Run:   RunBatch,
}

func RunBatch(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}
	defer func() {
		if err := appDep.Close(); err != nil {
			log.Printf("Failed to close app dependency: %v", err)
		}
	}()

	repo := repository.NewRepository(appDep.cfg, appDep.db.DB, appDep.log)
	services := service.NewService(appDep.cfg, appDep.log, repo, appDep.cache)

	run, err := services.RatingBatchService.Run(ctx)
	if err != nil {
		log.Fatalf("Rating batch failed: %v", err)
	}

	log.Printf("Rating batch %s: %d/%d symbols rated", run.Status, run.SymbolsRated, run.SymbolsTotal)
}
